package repository

import (
	"context"
	"testing"

	"shop-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository_Reserve(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInventoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	productID := seedProduct(t, pool, "Widget", 5.00, 10)

	t.Run("Success", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)

		err = repo.Reserve(ctx, tx, productID, 3)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, 7, productStock(t, pool, productID))
	})

	t.Run("Insufficient stock", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.Reserve(ctx, tx, productID, 50)
		assert.Equal(t, model.ErrInsufficientStock, err)
	})

	t.Run("Exact remaining stock", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)

		err = repo.Reserve(ctx, tx, productID, 7)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, 0, productStock(t, pool, productID))
	})

	t.Run("Unknown product", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.Reserve(ctx, tx, 9999, 1)
		assert.Equal(t, model.ErrProductNotFound, err)
	})
}

func TestInventoryRepository_Reserve_RollbackRestoresStock(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInventoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	productID := seedProduct(t, pool, "Widget", 5.00, 10)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Reserve(ctx, tx, productID, 4))
	require.NoError(t, tx.Rollback(ctx))

	// Nothing committed, so the decrement never became visible.
	assert.Equal(t, 10, productStock(t, pool, productID))
}

func TestInventoryRepository_Release(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewInventoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	productID := seedProduct(t, pool, "Widget", 5.00, 10)

	t.Run("Success", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)

		released, err := repo.Release(ctx, tx, productID, 5)
		require.NoError(t, err)
		assert.True(t, released)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, 15, productStock(t, pool, productID))
	})

	t.Run("Unknown product", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		released, err := repo.Release(ctx, tx, 9999, 5)
		require.NoError(t, err)
		assert.False(t, released)
	})
}
