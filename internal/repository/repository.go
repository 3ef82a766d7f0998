package repository

import (
	"context"

	"shop-api/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetAll retrieves users with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.User, error)

	// GetByID retrieves a single user by ID, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail retrieves a single user by email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user and fills in the generated ID.
	Create(ctx context.Context, user *model.User) error

	// Update writes name, email and password. Returns false when the user
	// does not exist.
	Update(ctx context.Context, user *model.User) (bool, error)

	// Delete removes the user. Returns false when the user does not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	GetAll(ctx context.Context, limit, offset int) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// InUse reports whether any product references the category.
	InUse(ctx context.Context, id int64) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDTx reads a product inside the caller's transaction so that the
	// price snapshot and the stock reservation see the same row version.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// InventoryRepository is the stock ledger. Both operations run inside the
// caller's transaction; the surrounding workflow decides what commits.
type InventoryRepository interface {
	// Reserve atomically decrements stock by qty, failing with
	// model.ErrInsufficientStock when the product holds fewer units and with
	// model.ErrProductNotFound when the product row is gone.
	Reserve(ctx context.Context, tx pgx.Tx, productID int64, qty int) error

	// Release increments stock by qty. Returns false when the product no
	// longer exists; callers treat that as non-fatal and continue.
	Release(ctx context.Context, tx pgx.Tx, productID int64, qty int) (bool, error)
}

// OrderRepository defines the interface for order and order item data access.
// Mutating methods take the transaction opened by the workflow so that each
// request is one atomic unit.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order and fills in the generated ID.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the items and fills in their generated IDs.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with the owning user's name, or nil when
	// absent. A stale user reference resolves to the "Unknown" placeholder.
	GetByID(ctx context.Context, id int64) (*model.OrderRecord, error)

	// GetByIDTx reads and row-locks an order inside the caller's transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error)

	// List retrieves orders with joined user names, newest first.
	List(ctx context.Context, limit, offset int) ([]model.OrderRecord, error)

	// ListByUser retrieves one user's orders with joined user names.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.OrderRecord, error)

	// UpdateStatus writes the order status.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.OrderStatus) error

	// RecomputeTotal re-sums the item subtotals into total_amount and returns
	// the new total.
	RecomputeTotal(ctx context.Context, tx pgx.Tx, orderID int64) (float64, error)

	// DeleteOrder removes the order and all of its items.
	DeleteOrder(ctx context.Context, tx pgx.Tx, id int64) error

	// ListItems retrieves the items of one order in insertion order.
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// ListItemsTx is ListItems inside the caller's transaction.
	ListItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error)

	// ListItemsByOrderIDs retrieves items for a page of orders, keyed by order.
	ListItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error)

	// GetItemByID retrieves a single order item by ID, or nil when absent.
	GetItemByID(ctx context.Context, id int64) (*model.OrderItem, error)

	// GetItemByIDTx reads and row-locks an order item inside the transaction.
	GetItemByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.OrderItem, error)

	// UpdateItem writes product, quantity, price and updated_at of an item.
	UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// DeleteItem removes a single order item row.
	DeleteItem(ctx context.Context, tx pgx.Tx, id int64) error

	// CountItems returns the number of items left on an order.
	CountItems(ctx context.Context, tx pgx.Tx, orderID int64) (int, error)
}
