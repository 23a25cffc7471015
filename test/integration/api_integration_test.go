package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vibe-commerce/internal/events"
	"vibe-commerce/internal/handler"
	"vibe-commerce/internal/model"
	"vibe-commerce/internal/repository"
	"vibe-commerce/internal/router"
	"vibe-commerce/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopperID = "mock-user-1"

// envelope mirrors the API response wrapper with a raw payload so each test
// can decode Data into the right type.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, events.NewNoopPublisher(), logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, shopperID, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, shopperID, logger)

	// Create router without API key, matching the open demo storefront
	return router.New(productHandler, cartHandler, checkoutHandler, "", logger)
}

func doJSON(t *testing.T, server http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/products returns all products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodGet, "/api/products", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)

		var products []model.Product
		require.NoError(t, json.Unmarshal(resp.Data, &products))
		assert.Len(t, products, 5)
	})

	t.Run("GET /api/products with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodGet, "/api/products?limit=2&offset=0", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.Unmarshal(resp.Data, &products))
		assert.Len(t, products, 2)
	})

	t.Run("GET /api/products/{id} returns specific product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodGet, "/api/products/1", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.Unmarshal(resp.Data, &product))
		assert.Equal(t, int64(1), product.ID)
		assert.Equal(t, "Test Product 1", product.Name)
	})

	t.Run("GET /api/products/{id} returns 404 for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodGet, "/api/products/999", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Product not found", resp.Message)
	})

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown route returns uniform 404 envelope", func(t *testing.T) {
		w, resp := doJSON(t, server, http.MethodGet, "/api/unknown", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Route not found", resp.Message)
	})
}

func TestCartAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	decodeSummary := func(t *testing.T, resp envelope) model.CartSummary {
		t.Helper()
		var summary model.CartSummary
		require.NoError(t, json.Unmarshal(resp.Data, &summary))
		return summary
	}

	t.Run("GET /api/cart creates an empty cart on first read", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodGet, "/api/cart", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)

		summary := decodeSummary(t, resp)
		assert.Empty(t, summary.Items)
		assert.Zero(t, summary.TotalAmount)
		assert.Zero(t, summary.ItemCount)
	})

	t.Run("POST /api/cart adds and accumulates items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 2}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Item added to cart", resp.Message)

		summary := decodeSummary(t, resp)
		require.Len(t, summary.Items, 1)
		assert.Equal(t, 20.00, summary.TotalAmount)

		// Adding the same product again accumulates onto the line
		w, resp = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 3}`)
		assert.Equal(t, http.StatusOK, w.Code)

		summary = decodeSummary(t, resp)
		require.Len(t, summary.Items, 1)
		assert.Equal(t, 5, summary.Items[0].Quantity)
		assert.Equal(t, 50.00, summary.TotalAmount)
	})

	t.Run("POST /api/cart rejects over-stock quantity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		// Product 5 only has 2 in stock
		w, resp := doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 5, "quantity": 3}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Insufficient stock", resp.Message)
	})

	t.Run("PUT /api/cart/{productId} overwrites quantity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 5}`)

		w, resp := doJSON(t, server, http.MethodPut, "/api/cart/1", `{"quantity": 2}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Cart updated", resp.Message)

		summary := decodeSummary(t, resp)
		require.Len(t, summary.Items, 1)
		assert.Equal(t, 2, summary.Items[0].Quantity)
		assert.Equal(t, 20.00, summary.TotalAmount)
	})

	t.Run("PUT /api/cart/{productId} returns 404 for item not in cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 1}`)

		w, resp := doJSON(t, server, http.MethodPut, "/api/cart/3", `{"quantity": 2}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Item not found in cart", resp.Message)
	})

	t.Run("DELETE /api/cart/{productId} removes the line", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 1}`)
		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 2, "quantity": 1}`)

		w, resp := doJSON(t, server, http.MethodDelete, "/api/cart/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Item removed from cart", resp.Message)

		summary := decodeSummary(t, resp)
		require.Len(t, summary.Items, 1)
		assert.Equal(t, int64(2), summary.Items[0].ProductID)
	})

	t.Run("DELETE /api/cart clears everything", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 2}`)

		w, resp := doJSON(t, server, http.MethodDelete, "/api/cart", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Cart cleared", resp.Message)

		summary := decodeSummary(t, resp)
		assert.Empty(t, summary.Items)
		assert.Zero(t, summary.TotalAmount)
	})
}

func TestCheckoutAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Full shopping flow", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 2}`)
		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 2, "quantity": 1}`)

		w, resp := doJSON(t, server, http.MethodPost, "/api/checkout",
			`{"customerName": "Jane Doe", "customerEmail": "jane@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "Order placed successfully", resp.Message)

		var receipt model.Receipt
		require.NoError(t, json.Unmarshal(resp.Data, &receipt))
		assert.Regexp(t, `^VC-\d+$`, receipt.OrderNumber)
		assert.Equal(t, "Jane Doe", receipt.CustomerName)
		assert.Equal(t, 40.00, receipt.TotalAmount)
		require.Len(t, receipt.Items, 2)

		// Cart is emptied by the checkout
		w, resp = doJSON(t, server, http.MethodGet, "/api/cart", "")
		require.Equal(t, http.StatusOK, w.Code)

		var summary model.CartSummary
		require.NoError(t, json.Unmarshal(resp.Data, &summary))
		assert.Empty(t, summary.Items)

		// The order shows up in history
		w, resp = doJSON(t, server, http.MethodGet, "/api/checkout/orders", "")
		require.Equal(t, http.StatusOK, w.Code)

		var orders []model.Order
		require.NoError(t, json.Unmarshal(resp.Data, &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, receipt.OrderID, orders[0].ID)
		assert.Equal(t, 40.00, orders[0].TotalAmount)
	})

	t.Run("POST /api/checkout fails with empty cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w, resp := doJSON(t, server, http.MethodPost, "/api/checkout",
			`{"customerName": "Jane Doe", "customerEmail": "jane@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cart is empty", resp.Message)
	})

	t.Run("POST /api/checkout rejects invalid email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 1}`)

		w, resp := doJSON(t, server, http.MethodPost, "/api/checkout",
			`{"customerName": "Jane Doe", "customerEmail": "not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid email format", resp.Message)

		// The cart is untouched
		w, resp = doJSON(t, server, http.MethodGet, "/api/cart", "")
		require.Equal(t, http.StatusOK, w.Code)

		var summary model.CartSummary
		require.NoError(t, json.Unmarshal(resp.Data, &summary))
		assert.Len(t, summary.Items, 1)
	})

	t.Run("Orders are listed newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		for _, qty := range []string{"1", "2"} {
			_, _ = doJSON(t, server, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": `+qty+`}`)
			w, _ := doJSON(t, server, http.MethodPost, "/api/checkout",
				`{"customerName": "Jane Doe", "customerEmail": "jane@example.com"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}

		_, resp := doJSON(t, server, http.MethodGet, "/api/checkout/orders", "")

		var orders []model.Order
		require.NoError(t, json.Unmarshal(resp.Data, &orders))
		require.Len(t, orders, 2)
		assert.Equal(t, 20.00, orders[0].TotalAmount)
		assert.Equal(t, 10.00, orders[1].TotalAmount)
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}
