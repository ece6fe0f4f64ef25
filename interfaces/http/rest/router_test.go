package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"novamarket/application/services"
	"novamarket/domain/core/entities"
	"novamarket/infrastructure/cache"
	"novamarket/infrastructure/config"
	"novamarket/infrastructure/payments"
	"novamarket/infrastructure/persistence/memory"
	"novamarket/pkg/apiclient"
	"novamarket/pkg/common"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddress:   ":0",
		Environment:     "development",
		MongoDatabase:   "test",
		FrontendURL:     "http://localhost:3000",
		EnableCORS:      false,
		JWTSecret:       "test-secret",
		JWTIssuer:       "nova-marketplace",
		AdminEmail:      "admin@novamarket.com",
		AdminPassword:   "admin123",
		APIRateLimit:    1000,
		WriteRateLimit:  1000,
		RateLimitWindow: 15 * time.Minute,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	svc := services.NewProductService(memory.NewProductRepository(), cache.NewInMemoryCache(), logger)
	checkout := payments.NewStripeCheckout("", cfg.FrontendURL, logger)
	router := NewRouter(cfg, svc, checkout, logger)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestRouter_ProductLifecycle(t *testing.T) {
	srv := newTestServer(t, testConfig())
	base := srv.URL + "/api"

	// Create
	resp, body := doJSON(t, http.MethodPost, base+"/products", map[string]interface{}{
		"name":        "Widget",
		"description": "A very good widget",
		"price":       9.99,
		"image":       "https://example.com/widget.png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created entities.Product
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 9.99, created.Price)
	assert.False(t, created.CreatedAt.IsZero())

	// List contains it
	resp, body = doJSON(t, http.MethodGet, base+"/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []entities.Product
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Get by ID
	resp, body = doJSON(t, http.MethodGet, base+"/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched entities.Product
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	// Partial update
	resp, body = doJSON(t, http.MethodPut, base+"/products/"+created.ID, map[string]interface{}{
		"price": 14.99,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated entities.Product
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, 14.99, updated.Price)
	assert.Equal(t, "Widget", updated.Name)
	assert.NotNil(t, updated.UpdatedAt)

	// Delete
	resp, body = doJSON(t, http.MethodDelete, base+"/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted struct {
		Message string           `json:"message"`
		Product entities.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, "Product deleted successfully", deleted.Message)
	assert.Equal(t, created.ID, deleted.Product.ID)

	// Gone now
	resp, body = doJSON(t, http.MethodGet, base+"/products/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Product not found", errBody.Error)
	assert.Equal(t, fmt.Sprintf("Product with ID %s does not exist", created.ID), errBody.Message)
}

func TestRouter_InvalidProductID(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/products/not-a-valid-id", nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Invalid ID", errBody.Error)
}

func TestRouter_CreateProduct_ValidationErrors(t *testing.T) {
	srv := newTestServer(t, testConfig())
	base := srv.URL + "/api"

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing fields", map[string]interface{}{"name": "Widget"}},
		{"zero price", map[string]interface{}{
			"name": "Widget", "description": "d", "price": 0, "image": "https://example.com/w.png",
		}},
		{"negative price", map[string]interface{}{
			"name": "Widget", "description": "d", "price": -5, "image": "https://example.com/w.png",
		}},
		{"bad image url", map[string]interface{}{
			"name": "Widget", "description": "d", "price": 1, "image": "not-a-url",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, base+"/products", tt.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

			var errBody common.ErrorBody
			require.NoError(t, json.Unmarshal(body, &errBody))
			assert.Equal(t, "Validation error", errBody.Error)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status        string `json:"status"`
		Database      string `json:"database"`
		Cache         string `json:"cache"`
		ProductsCount *int64 `json:"productsCount"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, "connected", health.Cache)
	require.NotNil(t, health.ProductsCount)
	assert.Equal(t, int64(0), *health.ProductsCount)
}

func TestRouter_CheckoutDisabledWithoutStripeKey(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/create-checkout-session", map[string]interface{}{
		"items": []map[string]interface{}{{"id": "1", "name": "Widget", "price": 9.99, "quantity": 1}},
	})

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Payment service unavailable", errBody.Error)
}

func TestRouter_AuthFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())
	base := srv.URL + "/api"

	// Wrong credentials
	resp, _ := doJSON(t, http.MethodPost, base+"/auth/login", map[string]string{
		"email":    "admin@novamarket.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Right credentials
	resp, body := doJSON(t, http.MethodPost, base+"/auth/login", map[string]string{
		"email":    "admin@novamarket.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var login struct {
		Success bool `json:"success"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	assert.True(t, login.Success)
	assert.Equal(t, "admin@novamarket.com", login.User.Email)
	require.NotEmpty(t, login.Token)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "auth-token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	// Status with the bearer token
	req, err := http.NewRequest(http.MethodGet, base+"/auth/status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	statusResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer statusResp.Body.Close()

	var status struct {
		Authenticated bool `json:"authenticated"`
		User          *struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "admin@novamarket.com", status.User.Email)

	// Status without a token
	resp, body = doJSON(t, http.MethodGet, base+"/auth/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var anon struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(body, &anon))
	assert.False(t, anon.Authenticated)
}

func TestRouter_WriteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.WriteRateLimit = 2
	srv := newTestServer(t, cfg)
	base := srv.URL + "/api"

	payload := map[string]interface{}{
		"name":        "Widget",
		"description": "A very good widget",
		"price":       9.99,
		"image":       "https://example.com/widget.png",
	}

	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, http.MethodPost, base+"/products", payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	resp, body := doJSON(t, http.MethodPost, base+"/products", payload)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Too many requests", errBody.Error)
	assert.Equal(t, "Too many write requests from this IP, please try again later.", errBody.Message)

	// Reads stay under the general budget and keep working
	resp, _ = doJSON(t, http.MethodGet, base+"/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/nope", nil)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody common.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Not found", errBody.Error)
	assert.Equal(t, "Route GET /nope not found", errBody.Message)
}

func TestRouter_WithAPIClient(t *testing.T) {
	srv := newTestServer(t, testConfig())
	client := apiclient.NewClient(srv.URL+"/api", apiclient.WithRetryPolicy(1, time.Millisecond))
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, apiclient.ProductInput{
		Name:        "Widget",
		Description: "A very good widget",
		Price:       9.99,
		Image:       "https://example.com/widget.png",
	})
	require.NoError(t, err)

	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	result, err := client.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", result.Message)

	_, err = client.Product(ctx, created.ID)
	require.Error(t, err)
	apiErr, ok := err.(*apiclient.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "The requested resource was not found.", apiErr.UserMessage)
}
