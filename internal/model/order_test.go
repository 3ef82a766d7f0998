package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected OrderStatus
		ok       bool
	}{
		{"pending", OrderStatusPending, true},
		{"completed", OrderStatusCompleted, true},
		{"cancelled", OrderStatusCancelled, true},
		{"Pending", "", false},
		{"shipped", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, ok := ParseOrderStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"Pending to completed", OrderStatusPending, OrderStatusCompleted, true},
		{"Pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"Pending to pending", OrderStatusPending, OrderStatusPending, false},
		{"Completed to cancelled", OrderStatusCompleted, OrderStatusCancelled, false},
		{"Completed to pending", OrderStatusCompleted, OrderStatusPending, false},
		{"Cancelled to cancelled", OrderStatusCancelled, OrderStatusCancelled, false},
		{"Cancelled to completed", OrderStatusCancelled, OrderStatusCompleted, false},
		{"Cancelled to pending", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: 5.50}
	assert.InDelta(t, 16.50, item.Subtotal(), 0.0001)
}
