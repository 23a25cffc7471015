package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"vibe-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
// The item list lives in a single JSONB column so every cart write is one
// statement, mirroring single-document store semantics.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Get retrieves an owner's cart. Returns nil when no cart exists.
func (r *cartRepository) Get(ctx context.Context, ownerID string) (*model.Cart, error) {
	query := `
		SELECT owner_id, items, version, created_at, updated_at
		FROM carts
		WHERE owner_id = $1
	`

	var cart model.Cart
	var itemsJSON []byte
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&cart.OwnerID, &itemsJSON, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("owner_id", ownerID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to decode cart items")
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return &cart, nil
}

// Create inserts a new cart row with version 1.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (owner_id, items, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, cart.OwnerID, itemsJSON)
	if err != nil {
		r.logger.Error().Err(err).Str("owner_id", cart.OwnerID).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("owner_id", cart.OwnerID).Msg("cart already created by concurrent request")
		return model.ErrCartConflict
	}

	cart.Version = 1

	r.logger.Debug().Str("owner_id", cart.OwnerID).Msg("cart created")

	return nil
}

// Save persists the cart's items, comparing-and-swapping on the version
// counter. A mismatch means another request modified the cart since it was
// read; the caller surfaces that as a conflict rather than retrying.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE carts
		SET items = $2, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = $1 AND version = $3
	`

	tag, err := r.pool.Exec(ctx, query, cart.OwnerID, itemsJSON, cart.Version)
	if err != nil {
		r.logger.Error().Err(err).Str("owner_id", cart.OwnerID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("owner_id", cart.OwnerID).
			Int64("version", cart.Version).
			Msg("cart version conflict")
		return model.ErrCartConflict
	}

	cart.Version++

	return nil
}

// ClearTx empties the cart within the provided transaction, guarded by the
// given version.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, ownerID string, version int64) error {
	query := `
		UPDATE carts
		SET items = '[]'::jsonb, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = $1 AND version = $2
	`

	tag, err := tx.Exec(ctx, query, ownerID, version)
	if err != nil {
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("owner_id", ownerID).
			Int64("version", version).
			Msg("cart version conflict during clear")
		return model.ErrCartConflict
	}

	return nil
}

// marshalItems encodes the item list, normalising nil to an empty array.
func marshalItems(items []model.CartItem) ([]byte, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart items: %w", err)
	}
	return data, nil
}
