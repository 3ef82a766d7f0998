package service

import (
	"context"
	"fmt"
	"strings"

	"shop-api/internal/model"
	"shop-api/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Create registers a new user with a bcrypt-hashed password.
func (s *userService) Create(ctx context.Context, req *model.UserRequest) (*model.User, error) {
	if err := validateUserRequest(req, true); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("email", req.Email).Msg("email already registered")
		return nil, model.ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")

	return user, nil
}

// GetAll retrieves users with pagination.
func (s *userService) GetAll(ctx context.Context, skip, limit int) ([]model.User, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetAll(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a single user by ID.
func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

// Update writes name and email, re-hashing the password when one is provided.
func (s *userService) Update(ctx context.Context, id int64, req *model.UserRequest) (*model.User, error) {
	if err := validateUserRequest(req, false); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, model.ErrEmailInUse
		}
	}

	user.Name = req.Name
	user.Email = req.Email

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	found, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if !found {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")

	return user, nil
}

// Delete removes a user.
func (s *userService) Delete(ctx context.Context, id int64) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !found {
		return model.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *userService) VerifyPassword(ctx context.Context, id int64, password string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn().Int64("user_id", id).Msg("password verification failed")
		return model.ErrIncorrectPassword
	}

	return nil
}

// validateUserRequest validates a user create/update payload. The password is
// only mandatory on create.
func validateUserRequest(req *model.UserRequest, passwordRequired bool) error {
	if req == nil {
		return model.NewValidationError("user request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewValidationError("a valid email is required")
	}
	if passwordRequired && req.Password == "" {
		return model.NewValidationError("password is required")
	}
	return nil
}
