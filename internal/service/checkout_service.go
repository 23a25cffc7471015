package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vibe-commerce/internal/events"
	"vibe-commerce/internal/metrics"
	"vibe-commerce/internal/model"
	"vibe-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// emailPattern accepts local@domain.tld: one "@", a "." after it, no
// embedded whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout snapshots the cart into an order and empties the cart. Both
// writes happen in one transaction so a crash between them cannot leave a
// placed order alongside a refillable cart.
func (s *checkoutService) Checkout(ctx context.Context, ownerID string, req *model.CheckoutRequest) (*model.Receipt, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		s.logger.Warn().Str("owner_id", ownerID).Msg("checkout attempted with empty cart")
		return nil, model.ErrEmptyCart
	}

	now := time.Now()
	order := &model.Order{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Items:         cart.Items,
		TotalAmount:   model.CartTotal(cart.Items),
		OrderDate:     now,
		Status:        model.OrderStatusCompleted,
		CreatedAt:     now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to process checkout: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.cartRepo.ClearTx(ctx, tx, ownerID, cart.Version); err != nil {
		if err == model.ErrCartConflict {
			s.logger.Warn().Str("owner_id", ownerID).Msg("cart changed during checkout")
			return nil, err
		}
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to clear cart")
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to process checkout: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues(order.Status).Inc()

	// Best-effort event publish; the order is already committed.
	if pubErr := s.publisher.PublishOrderPlaced(ctx, order); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order placed event")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("owner_id", ownerID).
		Float64("total_amount", order.TotalAmount).
		Int("item_count", len(order.Items)).
		Msg("order placed successfully")

	return buildReceipt(order), nil
}

// ListOrders returns the owner's past orders, newest first.
func (s *checkoutService) ListOrders(ctx context.Context, ownerID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []model.Order{}
	}

	s.logger.Debug().
		Str("owner_id", ownerID).
		Int("count", len(orders)).
		Msg("retrieved orders")

	return orders, nil
}

// validateCheckoutRequest checks the customer contact info.
func validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return model.ErrMissingCustomerInfo
	}

	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)

	if name == "" || email == "" {
		return model.ErrMissingCustomerInfo
	}

	if !emailPattern.MatchString(email) {
		return model.ErrInvalidEmail
	}

	return nil
}

// buildReceipt projects an order into the receipt returned to the caller.
func buildReceipt(order *model.Order) *model.Receipt {
	items := make([]model.ReceiptItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = model.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: model.CartTotal([]model.CartItem{item}),
		}
	}

	return &model.Receipt{
		OrderID:       order.ID,
		OrderNumber:   fmt.Sprintf("VC-%d", time.Now().UnixMilli()),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Items:         items,
		TotalAmount:   order.TotalAmount,
		OrderDate:     order.OrderDate,
		Timestamp:     time.Now().UTC(),
		Status:        order.Status,
	}
}
