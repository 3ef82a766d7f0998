package model

import "time"

// Product represents a product in the catalogue. Stock is only ever mutated
// through the inventory repository as part of an order transaction, or
// directly by the product CRUD endpoints.
type Product struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	Stock      int       `json:"stock" db:"stock"`
	CategoryID *int64    `json:"category_id,omitempty" db:"category_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ProductRequest represents the request payload for creating or updating a
// product.
type ProductRequest struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	CategoryID *int64  `json:"category_id,omitempty"`
}
