package service

import (
	"context"
	"fmt"
	"time"

	"shop-api/internal/model"
	"shop-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// Create places a new order. Stock reservation and order/item creation happen
// in one transaction; if any item fails validation or reservation the
// rollback discards every reservation made for the request.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if user == nil {
		s.logger.Warn().Int64("user_id", req.UserID).Msg("order references unknown user")
		return nil, model.ErrUserNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	defer s.rollbackOnError(ctx, tx, &err)

	now := time.Now().UTC()
	items := make([]model.OrderItem, 0, len(req.Items))
	var total float64

	for _, line := range req.Items {
		var product *model.Product
		product, err = s.productRepo.GetByIDTx(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if product == nil {
			s.logger.Warn().Int64("product_id", line.ProductID).Msg("order references unknown product")
			err = model.ErrProductNotFound
			return nil, err
		}

		if err = s.inventoryRepo.Reserve(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}

		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			CreatedAt: now,
			UpdatedAt: now,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &model.Order{
		UserID:      req.UserID,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", order.UserID).
		Int("item_count", len(items)).
		Float64("total_amount", order.TotalAmount).
		Msg("order created successfully")

	return buildOrderResponse(*order, user.Name, items), nil
}

// GetByID retrieves an order with its items and the resolved user name.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.OrderResponse, error) {
	rec, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if rec == nil {
		return nil, model.ErrOrderNotFound
	}

	items, err := s.orderRepo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return buildOrderResponse(rec.Order, rec.UserName, items), nil
}

// List retrieves orders with pagination.
func (s *orderService) List(ctx context.Context, skip, limit int) ([]model.OrderResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	records, err := s.orderRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return s.buildListResponse(ctx, records)
}

// ListByUser retrieves one user's orders with pagination.
func (s *orderService) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.OrderResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	records, err := s.orderRepo.ListByUser(ctx, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return s.buildListResponse(ctx, records)
}

// UpdateStatus applies a status transition. Only pending orders move, and
// only into completed or cancelled; cancelling restores stock per item.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.OrderResponse, error) {
	target, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, model.NewValidationError(fmt.Sprintf("unknown order status %q", status))
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	defer s.rollbackOnError(ctx, tx, &err)

	var order *model.Order
	order, err = s.orderRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.Warn().
			Int64("order_id", id).
			Str("from", string(order.Status)).
			Str("to", string(target)).
			Msg("rejected order status transition")
		err = model.ErrInvalidTransition
		return nil, err
	}

	if target == model.OrderStatusCancelled {
		var items []model.OrderItem
		items, err = s.orderRepo.ListItemsTx(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		if err = s.releaseItems(ctx, tx, items); err != nil {
			return nil, fmt.Errorf("failed to restore stock: %w", err)
		}
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, target); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Int64("order_id", id).
		Str("from", string(order.Status)).
		Str("to", string(target)).
		Msg("order status updated")

	return s.GetByID(ctx, id)
}

// Delete removes an order. Unless the order was already cancelled its stock
// is restored first, with the same best-effort semantics as cancellation.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	defer s.rollbackOnError(ctx, tx, &err)

	var order *model.Order
	order, err = s.orderRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return err
	}

	if order.Status != model.OrderStatusCancelled {
		var items []model.OrderItem
		items, err = s.orderRepo.ListItemsTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		if err = s.releaseItems(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
	}

	if err = s.orderRepo.DeleteOrder(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")

	return nil
}

// GetItem retrieves a single order item.
func (s *orderService) GetItem(ctx context.Context, itemID int64) (*model.OrderItem, error) {
	item, err := s.orderRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}
	if item == nil {
		return nil, model.ErrOrderItemNotFound
	}

	return item, nil
}

// UpdateItem changes an item's product and/or quantity. A product switch
// re-prices the line to the new product's current price; a quantity change
// keeps the snapshot price and adjusts stock by the delta.
func (s *orderService) UpdateItem(ctx context.Context, itemID int64, req *model.OrderItemUpdateRequest) (*model.OrderItem, error) {
	if err := validateItemUpdateRequest(req); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}
	defer s.rollbackOnError(ctx, tx, &err)

	var item *model.OrderItem
	item, err = s.lockPendingItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if req.ProductID != nil && *req.ProductID != item.ProductID {
		var product *model.Product
		product, err = s.productRepo.GetByIDTx(ctx, tx, *req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to update order item: %w", err)
		}
		if product == nil {
			err = model.ErrProductNotFound
			return nil, err
		}

		// Give back the old product's units before reserving the new ones.
		// The old product may already be gone; that only means its stock
		// cannot be restored.
		var released bool
		released, err = s.inventoryRepo.Release(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to update order item: %w", err)
		}
		if !released {
			s.logger.Warn().
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("product missing, stock not restored")
		}

		qty := item.Quantity
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		if err = s.inventoryRepo.Reserve(ctx, tx, product.ID, qty); err != nil {
			return nil, err
		}

		item.ProductID = product.ID
		item.Price = product.Price
		item.Quantity = qty
	} else if req.Quantity != nil {
		diff := *req.Quantity - item.Quantity
		if diff > 0 {
			if err = s.inventoryRepo.Reserve(ctx, tx, item.ProductID, diff); err != nil {
				return nil, err
			}
		} else if diff < 0 {
			var released bool
			released, err = s.inventoryRepo.Release(ctx, tx, item.ProductID, -diff)
			if err != nil {
				return nil, fmt.Errorf("failed to update order item: %w", err)
			}
			if !released {
				s.logger.Warn().
					Int64("product_id", item.ProductID).
					Int("quantity", -diff).
					Msg("product missing, stock not restored")
			}
		}
		item.Quantity = *req.Quantity
	}

	item.UpdatedAt = now

	if err = s.orderRepo.UpdateItem(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}

	var total float64
	total, err = s.orderRepo.RecomputeTotal(ctx, tx, item.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}

	s.logger.Info().
		Int64("order_item_id", item.ID).
		Int64("order_id", item.OrderID).
		Float64("total_amount", total).
		Msg("order item updated")

	return item, nil
}

// DeleteItem removes an item from a pending order, releasing its stock.
// Removing the last item deletes the whole order.
func (s *orderService) DeleteItem(ctx context.Context, itemID int64) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	defer s.rollbackOnError(ctx, tx, &err)

	var item *model.OrderItem
	item, err = s.lockPendingItem(ctx, tx, itemID)
	if err != nil {
		return err
	}

	var released bool
	released, err = s.inventoryRepo.Release(ctx, tx, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if !released {
		s.logger.Warn().
			Int64("product_id", item.ProductID).
			Int("quantity", item.Quantity).
			Msg("product missing, stock not restored")
	}

	if err = s.orderRepo.DeleteItem(ctx, tx, item.ID); err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	var remaining int
	remaining, err = s.orderRepo.CountItems(ctx, tx, item.OrderID)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	if remaining == 0 {
		// An order without items does not survive its last line.
		if err = s.orderRepo.DeleteOrder(ctx, tx, item.OrderID); err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}
		s.logger.Info().Int64("order_id", item.OrderID).Msg("last item removed, order deleted")
	} else {
		if _, err = s.orderRepo.RecomputeTotal(ctx, tx, item.OrderID); err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	s.logger.Info().Int64("order_item_id", itemID).Msg("order item deleted")

	return nil
}

// lockPendingItem fetches and row-locks an item and its owning order,
// rejecting the mutation unless the order is still pending.
func (s *orderService) lockPendingItem(ctx context.Context, tx pgx.Tx, itemID int64) (*model.OrderItem, error) {
	item, err := s.orderRepo.GetItemByIDTx(ctx, tx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}
	if item == nil {
		return nil, model.ErrOrderItemNotFound
	}

	order, err := s.orderRepo.GetByIDTx(ctx, tx, item.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.Status != model.OrderStatusPending {
		s.logger.Warn().
			Int64("order_id", order.ID).
			Str("status", string(order.Status)).
			Msg("rejected item mutation on non-pending order")
		return nil, model.ErrOrderNotPending
	}

	return item, nil
}

// releaseItems restores stock for every item, best-effort: a product that no
// longer exists is logged and skipped, never failing the surrounding
// cancellation or deletion.
func (s *orderService) releaseItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	for _, item := range items {
		released, err := s.inventoryRepo.Release(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !released {
			s.logger.Warn().
				Int64("order_id", item.OrderID).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("product missing, stock not restored")
		}
	}
	return nil
}

// rollbackOnError rolls the transaction back on any exit path where err is
// still set.
func (s *orderService) rollbackOnError(ctx context.Context, tx pgx.Tx, err *error) {
	if *err == nil {
		return
	}
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
	}
}

func (s *orderService) buildListResponse(ctx context.Context, records []model.OrderRecord) ([]model.OrderResponse, error) {
	orderIDs := make([]int64, len(records))
	for i, rec := range records {
		orderIDs[i] = rec.Order.ID
	}

	itemsByOrder, err := s.orderRepo.ListItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	responses := make([]model.OrderResponse, len(records))
	for i, rec := range records {
		responses[i] = *buildOrderResponse(rec.Order, rec.UserName, itemsByOrder[rec.Order.ID])
	}

	return responses, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}

	if req.UserID <= 0 {
		return model.NewValidationError("user_id is required")
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return model.NewValidationError(fmt.Sprintf("item %d: product_id is required", i))
		}
		if item.Quantity < 1 || item.Quantity > model.MaxOrderItemQuantity {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.NewValidationError(
				fmt.Sprintf("item %d: quantity must be between 1 and %d", i, model.MaxOrderItemQuantity))
		}
	}

	return nil
}

func validateItemUpdateRequest(req *model.OrderItemUpdateRequest) error {
	if req == nil || (req.ProductID == nil && req.Quantity == nil) {
		return model.NewValidationError("at least one of product_id or quantity is required")
	}
	if req.ProductID != nil && *req.ProductID <= 0 {
		return model.NewValidationError("product_id must be positive")
	}
	if req.Quantity != nil && (*req.Quantity < 1 || *req.Quantity > model.MaxOrderItemQuantity) {
		return model.NewValidationError(
			fmt.Sprintf("quantity must be between 1 and %d", model.MaxOrderItemQuantity))
	}
	return nil
}

func buildOrderResponse(order model.Order, userName string, items []model.OrderItem) *model.OrderResponse {
	if items == nil {
		items = []model.OrderItem{}
	}
	return &model.OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		UserName:    userName,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// validatePagination enforces the listing bounds shared by every collection
// endpoint.
func validatePagination(skip, limit int) error {
	if skip < 0 {
		return model.NewValidationError("skip must be non-negative")
	}
	if limit < 1 || limit > 1000 {
		return model.NewValidationError("limit must be between 1 and 1000")
	}
	return nil
}
