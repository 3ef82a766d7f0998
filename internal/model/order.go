package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// MaxOrderItemQuantity is the upper bound for a single line item quantity.
const MaxOrderItemQuantity = 999

// ParseOrderStatus maps a raw string onto a known order status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the status change is permitted. Only a
// pending order may move, and only into completed or cancelled; both of those
// are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return target == OrderStatusCompleted || target == OrderStatusCancelled
}

// Order represents a customer order. TotalAmount is derived from the line
// items and never set by a client.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	UserID      int64       `json:"user_id" db:"user_id"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem represents a line item in an order. Price is a snapshot of the
// product price taken when the item was created or last re-priced; it does
// not track later product price changes.
type OrderItem struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subtotal returns the line total for this item.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// OrderRecord pairs an order row with the owning user's display name as
// resolved at read time.
type OrderRecord struct {
	Order    Order
	UserName string
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	UserID int64              `json:"user_id"`
	Items  []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single requested line item.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderStatusRequest represents the request payload for a status transition.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemUpdateRequest represents a partial update of a line item. Nil
// fields are left unchanged.
type OrderItemUpdateRequest struct {
	ProductID *int64 `json:"product_id,omitempty"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// OrderResponse represents the response payload for an order, including the
// resolved user name and nested items.
type OrderResponse struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	UserName    string      `json:"user_name"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
