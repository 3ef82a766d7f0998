package service

import (
	"context"

	"shop-api/internal/model"
)

// UserService defines operations for user management.
type UserService interface {
	Create(ctx context.Context, req *model.UserRequest) (*model.User, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, req *model.UserRequest) (*model.User, error)
	Delete(ctx context.Context, id int64) error

	// VerifyPassword checks a plaintext password against the stored hash.
	VerifyPassword(ctx context.Context, id int64, password string) error
}

// CategoryService defines operations for category management.
type CategoryService interface {
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for product management.
type ProductService interface {
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// OrderService defines the order workflow: creation, reads, status
// transitions, deletion and line item mutation. Every mutating call runs as
// one database transaction.
type OrderService interface {
	// Create places a new order: validates the user and every product,
	// reserves stock for all items or none, snapshots prices and derives the
	// total. The new order starts out pending.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items and the resolved user name.
	GetByID(ctx context.Context, id int64) (*model.OrderResponse, error)

	// List retrieves orders with pagination.
	List(ctx context.Context, skip, limit int) ([]model.OrderResponse, error)

	// ListByUser retrieves one user's orders with pagination.
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.OrderResponse, error)

	// UpdateStatus applies a status transition. Cancelling releases stock for
	// every item, best-effort.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.OrderResponse, error)

	// Delete removes an order, restoring stock first unless it was already
	// cancelled.
	Delete(ctx context.Context, id int64) error

	// GetItem retrieves a single order item.
	GetItem(ctx context.Context, itemID int64) (*model.OrderItem, error)

	// UpdateItem changes an item's product and/or quantity while the owning
	// order is pending, adjusting stock and recomputing the order total.
	UpdateItem(ctx context.Context, itemID int64, req *model.OrderItemUpdateRequest) (*model.OrderItem, error)

	// DeleteItem removes an item while the owning order is pending, releasing
	// its stock. Deleting the last item deletes the whole order.
	DeleteItem(ctx context.Context, itemID int64) error
}
