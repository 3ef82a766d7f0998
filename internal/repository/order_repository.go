package repository

import (
	"context"
	"fmt"

	"shop-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userNamePlaceholder is returned when an order's user reference is stale.
const userNamePlaceholder = "Unknown"

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (user_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		order.UserID, order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", order.UserID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ProductID, item.Quantity, item.Price, item.CreatedAt, item.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

const orderWithUserQuery = `
	SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at,
	       COALESCE(u.name, '` + userNamePlaceholder + `')
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
`

func scanOrderRecord(row pgx.Row) (model.OrderRecord, error) {
	var rec model.OrderRecord
	err := row.Scan(
		&rec.Order.ID,
		&rec.Order.UserID,
		&rec.Order.TotalAmount,
		&rec.Order.Status,
		&rec.Order.CreatedAt,
		&rec.Order.UpdatedAt,
		&rec.UserName,
	)
	return rec, err
}

// GetByID retrieves an order with the owning user's name.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.OrderRecord, error) {
	rec, err := scanOrderRecord(r.pool.QueryRow(ctx, orderWithUserQuery+` WHERE o.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &rec, nil
}

// GetByIDTx reads and row-locks an order inside the caller's transaction.
func (r *orderRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`

	var o model.Order
	err := tx.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order in transaction")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

func (r *orderRepository) listRecords(ctx context.Context, query string, args ...any) ([]model.OrderRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var records []model.OrderRecord
	for rows.Next() {
		rec, err := scanOrderRecord(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return records, nil
}

// List retrieves orders with joined user names, newest first.
func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]model.OrderRecord, error) {
	return r.listRecords(ctx,
		orderWithUserQuery+` ORDER BY o.id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// ListByUser retrieves one user's orders with joined user names.
func (r *orderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.OrderRecord, error) {
	return r.listRecords(ctx,
		orderWithUserQuery+` WHERE o.user_id = $1 ORDER BY o.id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
}

// UpdateStatus writes the order status.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id, status); err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Str("status", string(status)).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// RecomputeTotal re-sums the item subtotals into total_amount.
func (r *orderRepository) RecomputeTotal(ctx context.Context, tx pgx.Tx, orderID int64) (float64, error) {
	query := `
		UPDATE orders
		SET total_amount = COALESCE(
			(SELECT SUM(price * quantity) FROM order_items WHERE order_id = $1), 0
		), updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount
	`

	var total float64
	if err := tx.QueryRow(ctx, query, orderID).Scan(&total); err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to recompute order total")
		return 0, fmt.Errorf("failed to recompute order total: %w", err)
	}

	return total, nil
}

// DeleteOrder removes the order and all of its items.
func (r *orderRepository) DeleteOrder(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order items")
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().Int64("order_id", id).Msg("order deleted")

	return nil
}

const orderItemColumns = `id, order_id, product_id, quantity, price, created_at, updated_at`

func scanOrderItems(rows pgx.Rows) ([]model.OrderItem, error) {
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// ListItems retrieves the items of one order in insertion order.
func (r *orderRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return scanOrderItems(rows)
}

// ListItemsTx is ListItems inside the caller's transaction.
func (r *orderRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order items in transaction")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return scanOrderItems(rows)
}

// ListItemsByOrderIDs retrieves items for a page of orders, keyed by order ID.
func (r *orderRepository) ListItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	result := make(map[int64][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(orderIDs)).Msg("failed to query order items by order IDs")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	items, err := scanOrderItems(rows)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		result[item.OrderID] = append(result[item.OrderID], item)
	}

	return result, nil
}

// GetItemByID retrieves a single order item by ID.
func (r *orderRepository) GetItemByID(ctx context.Context, id int64) (*model.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`

	var item model.OrderItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_item_id", id).Msg("order item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_item_id", id).Msg("failed to query order item")
		return nil, fmt.Errorf("failed to query order item: %w", err)
	}

	return &item, nil
}

// GetItemByIDTx reads and row-locks an order item inside the transaction.
func (r *orderRepository) GetItemByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1 FOR UPDATE`

	var item model.OrderItem
	err := tx.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_item_id", id).Msg("failed to query order item in transaction")
		return nil, fmt.Errorf("failed to query order item: %w", err)
	}

	return &item, nil
}

// UpdateItem writes product, quantity, price and updated_at of an item.
func (r *orderRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		UPDATE order_items
		SET product_id = $2, quantity = $3, price = $4, updated_at = $5
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, item.ID, item.ProductID, item.Quantity, item.Price, item.UpdatedAt); err != nil {
		r.logger.Error().Err(err).Int64("order_item_id", item.ID).Msg("failed to update order item")
		return fmt.Errorf("failed to update order item: %w", err)
	}

	return nil
}

// DeleteItem removes a single order item row.
func (r *orderRepository) DeleteItem(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("order_item_id", id).Msg("failed to delete order item")
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	return nil
}

// CountItems returns the number of items left on an order.
func (r *orderRepository) CountItems(ctx context.Context, tx pgx.Tx, orderID int64) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to count order items")
		return 0, fmt.Errorf("failed to count order items: %w", err)
	}

	return count, nil
}
