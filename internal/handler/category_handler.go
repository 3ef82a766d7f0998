package handler

import (
	"net/http"

	"shop-api/internal/model"
	"shop-api/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// Create handles POST /categories/ requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// List handles GET /categories/ requests with pagination.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pagination(w, r, h.logger)
	if !ok {
		return
	}

	categories, err := h.service.GetAll(r.Context(), skip, limit)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /categories/{categoryID} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID", h.logger)
	if !ok {
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{categoryID} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID", h.logger)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{categoryID} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
