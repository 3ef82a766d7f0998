package repository

import (
	"context"
	"fmt"

	"shop-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// inventoryRepository implements the InventoryRepository interface using
// PostgreSQL. Stock is adjusted with conditional updates so that two
// concurrent reservations against the same product serialize on the row
// instead of racing a read-modify-write in application memory.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

// Reserve atomically decrements stock by qty when enough units are available.
func (r *inventoryRepository) Reserve(ctx context.Context, tx pgx.Tx, productID int64, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	ct, err := tx.Exec(ctx, query, productID, qty)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Int("quantity", qty).Msg("failed to reserve stock")
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	if ct.RowsAffected() > 0 {
		r.logger.Debug().Int64("product_id", productID).Int("quantity", qty).Msg("stock reserved")
		return nil
	}

	// Zero rows means either the product is gone or stock ran short.
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check product existence")
		return fmt.Errorf("failed to check product existence: %w", err)
	}

	if !exists {
		return model.ErrProductNotFound
	}

	r.logger.Warn().Int64("product_id", productID).Int("quantity", qty).Msg("insufficient stock")
	return model.ErrInsufficientStock
}

// Release increments stock by qty. A vanished product is reported via the
// boolean rather than an error so callers can log and move on.
func (r *inventoryRepository) Release(ctx context.Context, tx pgx.Tx, productID int64, qty int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := tx.Exec(ctx, query, productID, qty)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Int("quantity", qty).Msg("failed to release stock")
		return false, fmt.Errorf("failed to release stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return false, nil
	}

	r.logger.Debug().Int64("product_id", productID).Int("quantity", qty).Msg("stock released")
	return true, nil
}
