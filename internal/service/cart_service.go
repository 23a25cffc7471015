package service

import (
	"context"
	"fmt"

	"vibe-commerce/internal/metrics"
	"vibe-commerce/internal/model"
	"vibe-commerce/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart returns the owner's cart, creating an empty one on first read.
func (s *cartService) GetCart(ctx context.Context, ownerID string) (*model.CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart == nil {
		cart = &model.Cart{OwnerID: ownerID, Items: []model.CartItem{}}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			// A concurrent first read created the row; the empty view is
			// still correct.
			if err != model.ErrCartConflict {
				s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create cart")
				return nil, fmt.Errorf("failed to create cart: %w", err)
			}
		}
		s.logger.Debug().Str("owner_id", ownerID).Msg("cart created lazily")
	}

	return cart.Summary(), nil
}

// AddItem adds a product snapshot to the cart. Stock is checked against the
// requested quantity only; accumulating onto an existing line is not
// re-checked against the new total, so a cart may exceed live stock until
// checkout.
func (s *cartService) AddItem(ctx context.Context, ownerID string, req *model.AddItemRequest) (*model.CartSummary, error) {
	if req == nil || req.ProductID <= 0 || req.Quantity < 1 {
		return nil, model.ErrInvalidItemRequest
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Int64("product_id", req.ProductID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	if product.Stock < req.Quantity {
		s.logger.Warn().
			Int64("product_id", req.ProductID).
			Int("stock", product.Stock).
			Int("requested", req.Quantity).
			Msg("insufficient stock")
		return nil, model.ErrInsufficientStock
	}

	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	isNew := cart == nil
	if isNew {
		cart = &model.Cart{OwnerID: ownerID}
	}

	if idx := findItem(cart.Items, req.ProductID); idx >= 0 {
		cart.Items[idx].Quantity += req.Quantity
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
			Image:     product.Image,
		})
	}

	if isNew {
		err = s.cartRepo.Create(ctx, cart)
	} else {
		err = s.cartRepo.Save(ctx, cart)
	}
	if err != nil {
		if err == model.ErrCartConflict {
			return nil, err
		}
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to persist cart")
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Int64("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("item added to cart")
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()

	return cart.Summary(), nil
}

// UpdateItemQuantity overwrites a line item's quantity exactly. Stock is not
// re-validated here, matching add-time-only stock checking.
func (s *cartService) UpdateItemQuantity(ctx context.Context, ownerID string, productID int64, quantity int) (*model.CartSummary, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	idx := findItem(cart.Items, productID)
	if idx < 0 {
		s.logger.Warn().
			Str("owner_id", ownerID).
			Int64("product_id", productID).
			Msg("item not found in cart")
		return nil, model.ErrItemNotFound
	}

	cart.Items[idx].Quantity = quantity

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		if err == model.ErrCartConflict {
			return nil, err
		}
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to persist cart")
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("cart item quantity updated")
	metrics.CartOperationsTotal.WithLabelValues("update").Inc()

	return cart.Summary(), nil
}

// RemoveItem filters a line item out of the cart. Removing a product that is
// not in the cart succeeds with the cart unchanged.
func (s *cartService) RemoveItem(ctx context.Context, ownerID string, productID int64) (*model.CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	filtered := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		if err == model.ErrCartConflict {
			return nil, err
		}
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to persist cart")
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Int64("product_id", productID).
		Msg("item removed from cart")
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()

	return cart.Summary(), nil
}

// ClearCart empties the cart. A missing cart is already empty, so that is a
// no-op success.
func (s *cartService) ClearCart(ctx context.Context, ownerID string) (*model.CartSummary, error) {
	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return model.EmptyCartSummary(), nil
	}

	cart.Items = []model.CartItem{}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		if err == model.ErrCartConflict {
			return nil, err
		}
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to persist cart")
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Info().Str("owner_id", ownerID).Msg("cart cleared")
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()

	return cart.Summary(), nil
}

// findItem returns the index of the line item for the given product id, or -1.
func findItem(items []model.CartItem, productID int64) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
