package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, skip, limit int) ([]model.OrderResponse, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.OrderResponse, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.OrderResponse, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) GetItem(ctx context.Context, itemID int64) (*model.OrderItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderItem), args.Error(1)
}

func (m *MockOrderService) UpdateItem(ctx context.Context, itemID int64, req *model.OrderItemUpdateRequest) (*model.OrderItem, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderItem), args.Error(1)
}

func (m *MockOrderService) DeleteItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// newOrderTestRouter mounts the order routes the way the real router does so
// that chi path parameters resolve.
func newOrderTestRouter(mockService *MockOrderService) http.Handler {
	h := NewOrderHandler(mockService, zerolog.Nop())
	r := chi.NewRouter()
	r.Post("/order/", h.Create)
	r.Get("/order/{orderID}", h.GetByID)
	r.Put("/order/{orderID}", h.UpdateStatus)
	r.Delete("/order/{orderID}", h.Delete)
	r.Get("/orders/", h.List)
	r.Get("/orders/user/{userID}", h.ListByUser)
	r.Get("/order-item/{itemID}", h.GetItem)
	r.Put("/order-item/{itemID}", h.UpdateItem)
	r.Delete("/order-item/{itemID}", h.DeleteItem)
	return r
}

func TestOrderHandler_Create(t *testing.T) {
	testResponse := &model.OrderResponse{
		ID:          42,
		UserID:      1,
		UserName:    "Alice",
		TotalAmount: 15.00,
		Status:      model.OrderStatusPending,
		Items: []model.OrderItem{
			{ID: 1, OrderID: 42, ProductID: 10, Quantity: 3, Price: 5.00},
		},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name: "Success",
			requestBody: &model.OrderRequest{
				UserID: 1,
				Items:  []model.OrderItemRequest{{ProductID: 10, Quantity: 3}},
			},
			mockReturn:     testResponse,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name: "Unknown user becomes bad request",
			requestBody: &model.OrderRequest{
				UserID: 99,
				Items:  []model.OrderItemRequest{{ProductID: 10, Quantity: 3}},
			},
			mockError:      model.ErrUserNotFound,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name: "Unknown product becomes bad request",
			requestBody: &model.OrderRequest{
				UserID: 1,
				Items:  []model.OrderItemRequest{{ProductID: 77, Quantity: 3}},
			},
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name: "Insufficient stock",
			requestBody: &model.OrderRequest{
				UserID: 1,
				Items:  []model.OrderItemRequest{{ProductID: 10, Quantity: 500}},
			},
			mockError:      model.ErrInsufficientStock,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name: "Validation error",
			requestBody: &model.OrderRequest{
				UserID: 1,
				Items:  []model.OrderItemRequest{},
			},
			mockError:      model.NewValidationError("order must contain at least one item"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name: "Service internal error",
			requestBody: &model.OrderRequest{
				UserID: 1,
				Items:  []model.OrderItemRequest{{ProductID: 10, Quantity: 3}},
			},
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			router := newOrderTestRouter(mockService)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.OrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/order/", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Create")
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp model.OrderResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, int64(42), resp.ID)
				assert.Equal(t, "Alice", resp.UserName)
			}
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	testResponse := &model.OrderResponse{
		ID:          42,
		UserID:      1,
		UserName:    "Alice",
		TotalAmount: 15.00,
		Status:      model.OrderStatusPending,
		Items:       []model.OrderItem{},
	}

	tests := []struct {
		name           string
		path           string
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			path:           "/order/42",
			mockReturn:     testResponse,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			path:           "/order/99",
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Non-numeric ID",
			path:           "/order/abc",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Non-positive ID",
			path:           "/order/0",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			router := newOrderTestRouter(mockService)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, mock.AnythingOfType("int64")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "GetByID")
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("Defaults applied", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("List", mock.Anything, 0, 100).Return([]model.OrderResponse{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Explicit pagination", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("List", mock.Anything, 10, 5).Return([]model.OrderResponse{{ID: 42}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/orders/?skip=10&limit=5", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Out of range limit", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("List", mock.Anything, 0, 1001).
			Return(nil, model.NewValidationError("limit must be between 1 and 1000"))

		req := httptest.NewRequest(http.MethodGet, "/orders/?limit=1001", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Non-numeric skip", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/orders/?skip=abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "List")
	})
}

func TestOrderHandler_ListByUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("ListByUser", mock.Anything, int64(7), 0, 100).
			Return([]model.OrderResponse{{ID: 1, UserID: 7}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/orders/user/7", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("ListByUser", mock.Anything, int64(99), 0, 100).
			Return(nil, model.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/orders/user/99", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	cancelled := &model.OrderResponse{
		ID:     42,
		Status: model.OrderStatusCancelled,
		Items:  []model.OrderItem{},
	}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Cancel success",
			body:           `{"status": "cancelled"}`,
			mockReturn:     cancelled,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid transition",
			body:           `{"status": "completed"}`,
			mockError:      model.ErrInvalidTransition,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown status",
			body:           `{"status": "shipped"}`,
			mockError:      model.NewValidationError(`unknown order status "shipped"`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not found",
			body:           `{"status": "completed"}`,
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			router := newOrderTestRouter(mockService)

			mockService.On("UpdateStatus", mock.Anything, int64(42), mock.AnythingOfType("string")).
				Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodPut, "/order/42", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("Delete", mock.Anything, int64(42)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/order/42", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Order deleted successfully")
		mockService.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("Delete", mock.Anything, int64(99)).Return(model.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/order/99", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestOrderHandler_GetItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		item := &model.OrderItem{ID: 5, OrderID: 42, ProductID: 10, Quantity: 2, Price: 5.00}
		mockService.On("GetItem", mock.Anything, int64(5)).Return(item, nil)

		req := httptest.NewRequest(http.MethodGet, "/order-item/5", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.OrderItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(5), got.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockOrderService)
		router := newOrderTestRouter(mockService)

		mockService.On("GetItem", mock.Anything, int64(99)).Return(nil, model.ErrOrderItemNotFound)

		req := httptest.NewRequest(http.MethodGet, "/order-item/99", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestOrderHandler_UpdateItem(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *model.OrderItem
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Quantity change",
			body:           `{"quantity": 5}`,
			mockReturn:     &model.OrderItem{ID: 5, OrderID: 42, ProductID: 10, Quantity: 5, Price: 5.00},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Order no longer pending",
			body:           `{"quantity": 5}`,
			mockError:      model.ErrOrderNotPending,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Insufficient stock",
			body:           `{"quantity": 500}`,
			mockError:      model.ErrInsufficientStock,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Unknown replacement product",
			body:           `{"product_id": 77}`,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
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
			mockService := new(MockOrderService)
			router := newOrderTestRouter(mockService)

			if tt.expectService {
				mockService.On("UpdateItem", mock.Anything, int64(5), mock.AnythingOfType("*model.OrderItemUpdateRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPut, "/order-item/5", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "UpdateItem")
			}
		})
	}
}

func TestOrderHandler_DeleteItem(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{"Success", nil, http.StatusOK},
		{"Not found", model.ErrOrderItemNotFound, http.StatusNotFound},
		{"Order no longer pending", model.ErrOrderNotPending, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			router := newOrderTestRouter(mockService)

			mockService.On("DeleteItem", mock.Anything, int64(5)).Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/order-item/5", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
