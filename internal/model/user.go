package model

// User represents a registered customer account.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// UserRequest represents the request payload for creating or updating a user.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyPasswordRequest carries a plaintext password to check against the
// stored hash.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}
