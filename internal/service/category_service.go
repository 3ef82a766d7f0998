package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-api/internal/model"
	"shop-api/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	now := time.Now().UTC()
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category created")

	return category, nil
}

func (s *categoryService) GetAll(ctx context.Context, skip, limit int) ([]model.Category, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetAll(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UserID = req.UserID
	category.UpdatedAt = time.Now().UTC()

	found, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if !found {
		return nil, model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category updated")

	return category, nil
}

// Delete removes a category unless products still reference it.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	inUse, err := s.categoryRepo.InUse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if inUse {
		s.logger.Warn().Int64("category_id", id).Msg("category still referenced by products")
		return model.ErrCategoryInUse
	}

	found, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !found {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")

	return nil
}

func validateCategoryRequest(req *model.CategoryRequest) error {
	if req == nil {
		return model.NewValidationError("category request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if req.UserID <= 0 {
		return model.NewValidationError("user_id is required")
	}
	return nil
}
