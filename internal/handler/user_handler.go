package handler

import (
	"net/http"

	"shop-api/internal/model"
	"shop-api/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Create handles POST /users/ requests.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List handles GET /users/ requests with pagination.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pagination(w, r, h.logger)
	if !ok {
		return
	}

	users, err := h.service.GetAll(r.Context(), skip, limit)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetByID handles GET /users/{userID} requests.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{userID} requests.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	var req model.UserRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{userID} requests.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// VerifyPassword handles POST /users/verify-password/{userID} requests.
func (h *UserHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	// The password arrives either as a query parameter or in a JSON body.
	password := r.URL.Query().Get("password")
	if password == "" {
		var req model.VerifyPasswordRequest
		if !decodeJSON(w, r, &req, h.logger) {
			return
		}
		password = req.Password
	}

	if err := h.service.VerifyPassword(r.Context(), id, password); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password is correct"})
}
