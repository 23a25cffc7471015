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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	itemsJSON, err := marshalItems(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, owner_id, customer_name, customer_email, items, total_amount, order_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.OwnerID,
		order.CustomerName,
		order.CustomerEmail,
		itemsJSON,
		order.TotalAmount,
		order.OrderDate,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// ListByOwner retrieves all of an owner's orders, newest first.
func (r *orderRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error) {
	query := `
		SELECT id, owner_id, customer_name, customer_email, items, total_amount, order_date, status, created_at
		FROM orders
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var itemsJSON []byte
		err := rows.Scan(
			&o.ID, &o.OwnerID, &o.CustomerName, &o.CustomerEmail, &itemsJSON,
			&o.TotalAmount, &o.OrderDate, &o.Status, &o.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			r.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to decode order items")
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
