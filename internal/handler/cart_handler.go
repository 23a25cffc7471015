package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vibe-commerce/internal/model"
	"vibe-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. All operations act on the
// configured demo shopper's cart.
type CartHandler struct {
	service service.CartService
	ownerID string
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, ownerID string, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		ownerID: ownerID,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetCart(r.Context(), h.ownerID)
	if err != nil {
		writeServiceError(w, err, "Error fetching cart", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "", summary)
}

// AddItem handles POST /api/cart requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	summary, err := h.service.AddItem(r.Context(), h.ownerID, &req)
	if err != nil {
		writeServiceError(w, err, "Error adding to cart", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Item added to cart", summary)
}

// UpdateItem handles PUT /api/cart/{productId} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID", h.logger)
		return
	}

	var req model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	summary, err := h.service.UpdateItemQuantity(r.Context(), h.ownerID, productID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, "Error updating cart", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Cart updated", summary)
}

// RemoveItem handles DELETE /api/cart/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID", h.logger)
		return
	}

	summary, err := h.service.RemoveItem(r.Context(), h.ownerID, productID)
	if err != nil {
		writeServiceError(w, err, "Error removing from cart", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Item removed from cart", summary)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.ClearCart(r.Context(), h.ownerID)
	if err != nil {
		writeServiceError(w, err, "Error clearing cart", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Cart cleared", summary)
}
