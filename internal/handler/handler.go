package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shop-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Too late to change the status; nothing useful to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Int("status", status).Str("message", message).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// respondError maps a service error onto an HTTP status. Domain errors carry
// their code and message; anything else is an opaque internal error.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeUserNotFound,
		model.ErrCodeCategoryNotFound,
		model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeOrderItemNotFound:
		status = http.StatusNotFound
	case model.ErrCodeEmailInUse, model.ErrCodeCategoryInUse:
		status = http.StatusConflict
	case model.ErrCodeInsufficientStock,
		model.ErrCodeInvalidTransition,
		model.ErrCodeOrderNotPending,
		model.ErrCodeValidation:
		status = http.StatusBadRequest
	case model.ErrCodeIncorrectPassword:
		status = http.StatusUnauthorized
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// decodeJSON decodes a request body, reporting failure to the client.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", logger)
		return false
	}
	return true
}

// pathID parses a numeric path parameter, reporting failure to the client.
func pathID(w http.ResponseWriter, r *http.Request, param string, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid "+param, logger)
		return 0, false
	}
	return id, true
}

// pagination parses skip/limit query parameters with their defaults. Range
// checks happen in the services so out-of-range values still fail with 400.
func pagination(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (skip, limit int, ok bool) {
	skip, limit = 0, 100

	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid skip parameter", logger)
			return 0, 0, false
		}
		skip = n
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter", logger)
			return 0, 0, false
		}
		limit = n
	}

	return skip, limit, true
}
