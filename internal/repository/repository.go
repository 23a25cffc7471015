package repository

import (
	"context"

	"vibe-commerce/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when no
	// product matches.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// ReplaceAll wipes the catalogue and inserts the given products in a
	// single transaction.
	ReplaceAll(ctx context.Context, products []model.Product) error
}

// CartRepository defines the interface for cart data access operations. Each
// cart write is a single-statement JSONB document write guarded by the cart's
// version counter.
type CartRepository interface {
	// Get retrieves an owner's cart. Returns nil when no cart exists.
	Get(ctx context.Context, ownerID string) (*model.Cart, error)

	// Create inserts a new cart row. Returns model.ErrCartConflict when a
	// concurrent request created the row first.
	Create(ctx context.Context, cart *model.Cart) error

	// Save persists the cart's items, comparing-and-swapping on the cart's
	// version. Returns model.ErrCartConflict on a version mismatch.
	Save(ctx context.Context, cart *model.Cart) error

	// ClearTx empties the cart within the provided transaction, guarded by
	// the given version.
	ClearTx(ctx context.Context, tx pgx.Tx, ownerID string, version int64) error
}

// OrderRepository defines the interface for order data access operations.
// Orders are append-only.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// ListByOwner retrieves all of an owner's orders, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error)
}
