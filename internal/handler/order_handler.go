package handler

import (
	"net/http"

	"shop-api/internal/model"
	"shop-api/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /order/ requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		// Missing references and stock shortages are request errors here,
		// not 404s: the order resource itself is what is being created.
		switch err {
		case model.ErrUserNotFound, model.ErrProductNotFound:
			writeError(w, http.StatusBadRequest, err.(*model.DomainError).Code, err.Error(), h.logger)
		default:
			respondError(w, err, h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /order/{orderID} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /orders/ requests with pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pagination(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.OrderResponse{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListByUser handles GET /orders/user/{userID} requests with pagination.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	skip, limit, ok := pagination(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListByUser(r.Context(), userID, skip, limit)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.OrderResponse{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /order/{orderID} requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	var req model.OrderStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /order/{orderID} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// GetItem handles GET /order-item/{itemID} requests.
func (h *OrderHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// UpdateItem handles PUT /order-item/{itemID} requests.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	var req model.OrderItemUpdateRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /order-item/{itemID} requests.
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order item deleted successfully"})
}
