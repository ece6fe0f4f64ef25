package ports

import (
	"context"
	"time"

	"novamarket/domain/core/entities"
)

// ProductRepository defines the interface for product persistence.
// This is a port in hexagonal architecture - the application doesn't know
// about the implementation. The store is authoritative: its errors always
// propagate to callers.
type ProductRepository interface {
	// FindAll retrieves all products, newest first
	FindAll(ctx context.Context) ([]entities.Product, error)

	// FindByID retrieves a product by its ID
	FindByID(ctx context.Context, id string) (*entities.Product, error)

	// Insert persists a new product and assigns its identifier
	Insert(ctx context.Context, product *entities.Product) error

	// Update applies a partial update and returns the updated product
	Update(ctx context.Context, id string, update entities.ProductUpdate) (*entities.Product, error)

	// Delete removes a product and returns the deleted record
	Delete(ctx context.Context, id string) (*entities.Product, error)

	// Count returns the number of stored products
	Count(ctx context.Context) (int64, error)
}

// Cache defines the interface for the optional read-through cache.
// It is a pure optimization layer: Get reports absence instead of failing,
// and Set/Delete report success as a bool that callers may ignore. A no-op
// implementation is selected when the backend is absent, so call sites
// never branch on cache availability.
type Cache interface {
	// Get retrieves a serialized value; the second return is false on miss,
	// on backend error, or when caching is disabled
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a serialized value with a TTL; best-effort
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool

	// Delete removes a single entry
	Delete(ctx context.Context, key string) bool

	// DeletePattern removes all entries matching a glob pattern, e.g. "products:*"
	DeletePattern(ctx context.Context, pattern string) bool

	// Connected reports whether a cache backend is reachable
	Connected() bool

	// Close releases the backend connection
	Close(ctx context.Context) error
}

// CheckoutItem is one cart line to be charged.
type CheckoutItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

// ShippingInfo carries the buyer's shipping details collected at checkout.
type ShippingInfo struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	ShippingMethod string `json:"shippingMethod"`
}

// CheckoutSessionRequest is the input for creating a hosted checkout session.
type CheckoutSessionRequest struct {
	Items    []CheckoutItem `json:"items"`
	Shipping ShippingInfo   `json:"shippingInfo"`
	Total    float64        `json:"total"`
}

// CheckoutProvider defines the interface for the payment provider.
// A disabled implementation is selected when no provider is configured.
type CheckoutProvider interface {
	// Enabled reports whether a payment provider is configured
	Enabled() bool

	// CreateSession creates a hosted checkout session and returns its URL
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (string, error)
}
