package router

import (
	"net/http"

	"shop-api/internal/handler"
	"shop-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Paths mirror the original API surface, trailing slashes included.
func New(
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware in order: Recovery -> RequestID -> Logging -> CORS.
	// RequestID runs before Logging so the logged lines carry the ID.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "Welcome to the shop API"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Post("/users/", userHandler.Create)
	r.Get("/users/", userHandler.List)
	r.Get("/users/{userID}", userHandler.GetByID)
	r.Put("/users/{userID}", userHandler.Update)
	r.Delete("/users/{userID}", userHandler.Delete)
	r.Post("/users/verify-password/{userID}", userHandler.VerifyPassword)

	r.Post("/categories/", categoryHandler.Create)
	r.Get("/categories/", categoryHandler.List)
	r.Get("/categories/{categoryID}", categoryHandler.GetByID)
	r.Put("/categories/{categoryID}", categoryHandler.Update)
	r.Delete("/categories/{categoryID}", categoryHandler.Delete)

	r.Post("/products/", productHandler.Create)
	r.Get("/products/", productHandler.List)
	r.Get("/products/{productID}", productHandler.GetByID)
	r.Put("/products/{productID}", productHandler.Update)
	r.Delete("/products/{productID}", productHandler.Delete)

	r.Post("/order/", orderHandler.Create)
	r.Get("/order/{orderID}", orderHandler.GetByID)
	r.Put("/order/{orderID}", orderHandler.UpdateStatus)
	r.Delete("/order/{orderID}", orderHandler.Delete)
	r.Get("/orders/", orderHandler.List)
	r.Get("/orders/user/{userID}", orderHandler.ListByUser)

	r.Get("/order-item/{itemID}", orderHandler.GetItem)
	r.Put("/order-item/{itemID}", orderHandler.UpdateItem)
	r.Delete("/order-item/{itemID}", orderHandler.DeleteItem)

	return r
}
