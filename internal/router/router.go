package router

import (
	"net/http"
	"time"

	"vibe-commerce/internal/handler"
	"vibe-commerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// An empty apiKey leaves the API open, matching the unauthenticated demo
// storefront.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)
	if apiKey != "" {
		r.Use(middleware.APIKeyAuth(apiKey, logger))
	}

	r.Get("/health", healthHandler)
	r.Get("/api/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.GetAll)
		r.Get("/{productId}", productHandler.GetByID)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Post("/", cartHandler.AddItem)
		r.Put("/{productId}", cartHandler.UpdateItem)
		r.Delete("/{productId}", cartHandler.RemoveItem)
		r.Delete("/", cartHandler.Clear)
	})

	r.Route("/api/checkout", func(r chi.Router) {
		r.Post("/", checkoutHandler.Checkout)
		r.Get("/orders", checkoutHandler.ListOrders)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "message": "Route not found"}`))
	})

	return r
}

// healthHandler reports liveness.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true, "message": "Vibe Commerce API is running", "timestamp": "` +
		time.Now().UTC().Format(time.RFC3339) + `"}`))
}
