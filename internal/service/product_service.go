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

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product created")

	return product, nil
}

// GetAll retrieves products with pagination.
func (s *productService) GetAll(ctx context.Context, skip, limit int) ([]model.Product, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetAll(ctx, limit, skip)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("skip", skip).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(ctx, req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.UpdatedAt = time.Now().UTC()

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

func (s *productService) validateProductRequest(ctx context.Context, req *model.ProductRequest) error {
	if req == nil {
		return model.NewValidationError("product request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if req.Price <= 0 {
		return model.NewValidationError("price must be positive")
	}
	if req.Stock < 0 {
		return model.NewValidationError("stock must be non-negative")
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to validate category: %w", err)
		}
		if category == nil {
			return model.ErrCategoryNotFound
		}
	}

	return nil
}
