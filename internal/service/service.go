package service

import (
	"context"

	"vibe-commerce/internal/model"
)

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// CartService defines the mutations and reads on one owner's cart. Every
// operation returns the derived cart view with total and item count
// recomputed from the item list.
type CartService interface {
	// GetCart returns the owner's cart, creating an empty one on first read.
	GetCart(ctx context.Context, ownerID string) (*model.CartSummary, error)

	// AddItem adds a product snapshot to the cart, accumulating quantity
	// when the product is already present.
	AddItem(ctx context.Context, ownerID string, req *model.AddItemRequest) (*model.CartSummary, error)

	// UpdateItemQuantity overwrites a line item's quantity.
	UpdateItemQuantity(ctx context.Context, ownerID string, productID int64, quantity int) (*model.CartSummary, error)

	// RemoveItem removes a line item; removing an absent product is a no-op.
	RemoveItem(ctx context.Context, ownerID string, productID int64) (*model.CartSummary, error)

	// ClearCart empties the cart; a missing cart is a no-op.
	ClearCart(ctx context.Context, ownerID string) (*model.CartSummary, error)
}

// CheckoutService converts a non-empty cart into an order.
type CheckoutService interface {
	// Checkout validates the customer info, snapshots the cart into an
	// order, empties the cart in the same transaction and returns a receipt.
	Checkout(ctx context.Context, ownerID string, req *model.CheckoutRequest) (*model.Receipt, error)

	// ListOrders returns the owner's past orders, newest first.
	ListOrders(ctx context.Context, ownerID string) ([]model.Order, error)
}
