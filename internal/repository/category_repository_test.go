package repository

import (
	"context"
	"testing"
	"time"

	"shop-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, pool *pgxpool.Pool, name string, userID int64) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO categories (name, description, user_id) VALUES ($1, $2, $3) RETURNING id",
		name, "", userID).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestCategoryRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	userID := seedUser(t, pool, "Alice", "alice@example.com")
	now := time.Now().UTC()

	category := &model.Category{
		Name:        "Electronics",
		Description: "Gadgets and devices",
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.Create(ctx, category))
	assert.NotZero(t, category.ID)

	got, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Electronics", got.Name)
	assert.Equal(t, userID, got.UserID)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryRepository_UpdateAndDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	userID := seedUser(t, pool, "Alice", "alice@example.com")
	id := seedCategory(t, pool, "Electronics", userID)

	updated, err := repo.Update(ctx, &model.Category{
		ID:          id,
		Name:        "Home Electronics",
		Description: "Updated",
		UserID:      userID,
		UpdatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Home Electronics", got.Name)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoryRepository_InUse(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	userID := seedUser(t, pool, "Alice", "alice@example.com")
	used := seedCategory(t, pool, "Used", userID)
	unused := seedCategory(t, pool, "Unused", userID)

	_, err := pool.Exec(ctx,
		"INSERT INTO products (name, price, stock, category_id) VALUES ($1, $2, $3, $4)",
		"Widget", 5.00, 10, used)
	require.NoError(t, err)

	inUse, err := repo.InUse(ctx, used)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.InUse(ctx, unused)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestCategoryRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	userID := seedUser(t, pool, "Alice", "alice@example.com")
	seedCategory(t, pool, "A", userID)
	seedCategory(t, pool, "B", userID)
	seedCategory(t, pool, "C", userID)

	page, err := repo.GetAll(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.GetAll(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
