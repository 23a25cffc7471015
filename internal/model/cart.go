package model

import (
	"math"
	"time"
)

// CartItem is a denormalized snapshot of a product at the time it was added
// to the cart, not a live reference. A cart holds at most one CartItem per
// product id.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Cart is one shopper's mutable cart. Items are stored as a single JSONB
// document per owner; Version is a monotonic counter compared-and-swapped on
// every write so concurrent read-modify-write cycles cannot silently lose
// updates.
type Cart struct {
	OwnerID   string     `json:"ownerId" db:"owner_id"`
	Items     []CartItem `json:"items" db:"items"`
	Version   int64      `json:"-" db:"version"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartSummary is the cart view returned by every cart operation. Total and
// count are derived from the item list on each read, never stored.
type CartSummary struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	ItemCount   int        `json:"itemCount"`
}

// AddItemRequest is the payload for adding an item to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityRequest is the payload for overwriting a line item quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartTotal returns the sum of price times quantity over all items, rounded
// to cents.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// CartItemCount returns the sum of quantities over all items.
func CartItemCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Summary builds the derived cart view. Items always marshals as a JSON
// array, never null.
func (c *Cart) Summary() *CartSummary {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return &CartSummary{
		Items:       items,
		TotalAmount: CartTotal(items),
		ItemCount:   CartItemCount(items),
	}
}

// EmptyCartSummary returns the view of a cart with no items.
func EmptyCartSummary() *CartSummary {
	return &CartSummary{Items: []CartItem{}}
}
