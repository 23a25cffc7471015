package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []CartItem
		expected float64
	}{
		{
			name:     "Empty cart",
			items:    nil,
			expected: 0,
		},
		{
			name: "Single item",
			items: []CartItem{
				{ProductID: 1, Price: 10.00, Quantity: 2},
			},
			expected: 20.00,
		},
		{
			name: "Multiple items",
			items: []CartItem{
				{ProductID: 1, Price: 79.99, Quantity: 2},
				{ProductID: 2, Price: 19.99, Quantity: 1},
			},
			expected: 179.97,
		},
		{
			name: "Rounded to cents",
			items: []CartItem{
				{ProductID: 1, Price: 0.1, Quantity: 3},
			},
			expected: 0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CartTotal(tt.items))
		})
	}
}

func TestCartItemCount(t *testing.T) {
	assert.Equal(t, 0, CartItemCount(nil))
	assert.Equal(t, 5, CartItemCount([]CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}))
}

func TestCart_Summary(t *testing.T) {
	cart := &Cart{
		OwnerID: "mock-user-1",
		Items: []CartItem{
			{ProductID: 1, Name: "Wireless Headphones", Price: 79.99, Quantity: 2},
			{ProductID: 9, Name: "Phone Stand", Price: 19.99, Quantity: 1},
		},
	}

	summary := cart.Summary()

	assert.Equal(t, 179.97, summary.TotalAmount)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Len(t, summary.Items, 2)
}

func TestCart_Summary_NilItemsMarshalsAsArray(t *testing.T) {
	cart := &Cart{OwnerID: "mock-user-1"}

	body, err := json.Marshal(cart.Summary())
	require.NoError(t, err)

	assert.JSONEq(t, `{"items":[],"totalAmount":0,"itemCount":0}`, string(body))
}

func TestEmptyCartSummary(t *testing.T) {
	summary := EmptyCartSummary()

	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.TotalAmount)
	assert.Zero(t, summary.ItemCount)
}
