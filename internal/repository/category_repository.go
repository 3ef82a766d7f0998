package repository

import (
	"context"
	"fmt"

	"shop-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Category, error) {
	query := `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM categories
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (name, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		category.Name, category.Description, category.UserID,
		category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $2, description = $3, user_id = $4, updated_at = $5
		WHERE id = $1
	`

	ct, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Description, category.UserID, category.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to update category")
		return false, fmt.Errorf("failed to update category: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// InUse reports whether any product references the category.
func (r *categoryRepository) InUse(ctx context.Context, id int64) (bool, error) {
	var inUse bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id,
	).Scan(&inUse)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to check category usage")
		return false, fmt.Errorf("failed to check category usage: %w", err)
	}

	return inUse, nil
}
