package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusCompleted is the status assigned to orders at checkout. Orders
// are append-only and never move to another status.
const OrderStatusCompleted = "completed"

// Order is a completed checkout: a frozen copy of the cart items plus the
// customer contact info captured at checkout time.
type Order struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OwnerID       string     `json:"ownerId" db:"owner_id"`
	CustomerName  string     `json:"customerName" db:"customer_name"`
	CustomerEmail string     `json:"customerEmail" db:"customer_email"`
	Items         []CartItem `json:"items" db:"items"`
	TotalAmount   float64    `json:"totalAmount" db:"total_amount"`
	OrderDate     time.Time  `json:"orderDate" db:"order_date"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// Receipt is the read-only post-checkout projection returned to the caller.
// It is derived from the order and never persisted.
type Receipt struct {
	OrderID       uuid.UUID     `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Items         []ReceiptItem `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	OrderDate     time.Time     `json:"orderDate"`
	Timestamp     time.Time     `json:"timestamp"`
	Status        string        `json:"status"`
}

// ReceiptItem is a receipt line with its per-item subtotal.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}
