package handler

import (
	"encoding/json"
	"net/http"

	"vibe-commerce/internal/model"
	"vibe-commerce/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout-related HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	ownerID string
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, ownerID string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		ownerID: ownerID,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	receipt, err := h.service.Checkout(r.Context(), h.ownerID, &req)
	if err != nil {
		writeServiceError(w, err, "Error processing checkout", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Order placed successfully", receipt)
}

// ListOrders handles GET /api/checkout/orders requests.
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), h.ownerID)
	if err != nil {
		writeServiceError(w, err, "Error fetching orders", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "", orders)
}
