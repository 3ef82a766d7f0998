package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetAll(ctx context.Context, skip, limit int) ([]model.Product, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductTestRouter(mockService *MockProductService) http.Handler {
	h := NewProductHandler(mockService, zerolog.Nop())
	r := chi.NewRouter()
	r.Post("/products/", h.Create)
	r.Get("/products/", h.List)
	r.Get("/products/{productID}", h.GetByID)
	r.Put("/products/{productID}", h.Update)
	r.Delete("/products/{productID}", h.Delete)
	return r
}

func TestProductHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"name": "Widget", "price": 5.00, "stock": 10}`,
			mockReturn:     &model.Product{ID: 10, Name: "Widget", Price: 5.00, Stock: 10},
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Unknown category",
			body:           `{"name": "Widget", "price": 5.00, "stock": 10, "category_id": 99}`,
			mockError:      model.ErrCategoryNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Validation error",
			body:           `{"name": "Widget", "price": -1, "stock": 10}`,
			mockError:      model.NewValidationError("price must be positive"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			router := newProductTestRouter(mockService)

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.ProductRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/products/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Create")
			}
		})
	}
}

func TestProductHandler_List(t *testing.T) {
	mockService := new(MockProductService)
	router := newProductTestRouter(mockService)

	products := []model.Product{
		{ID: 10, Name: "Widget", Price: 5.00, Stock: 10},
		{ID: 20, Name: "Gadget", Price: 12.50, Stock: 4},
	}
	mockService.On("GetAll", mock.Anything, 0, 100).Return(products, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	mockService.AssertExpectations(t)
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		router := newProductTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, int64(10)).
			Return(&model.Product{ID: 10, Name: "Widget", Price: 5.00, Stock: 10}, nil)

		req := httptest.NewRequest(http.MethodGet, "/products/10", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockProductService)
		router := newProductTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, model.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/products/99", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	mockService := new(MockProductService)
	router := newProductTestRouter(mockService)

	mockService.On("Delete", mock.Anything, int64(10)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
