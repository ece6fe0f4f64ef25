package apiclient

import (
	"context"
	"net/http"

	"novamarket/domain/core/entities"
)

// ProductInput is the payload for creating a product
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// ProductPatch is the payload for a partial product update. Nil fields are
// omitted from the request body and left unchanged on the server.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// DeleteProductResult is the server response to a delete
type DeleteProductResult struct {
	Message string           `json:"message"`
	Product entities.Product `json:"product"`
}

// HealthStatus is the server response to a health check
type HealthStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Database      string `json:"database"`
	Cache         string `json:"cache"`
	Timestamp     string `json:"timestamp"`
	ProductsCount *int64 `json:"productsCount,omitempty"`
}

// CheckoutItem is one cart line in a checkout request
type CheckoutItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

// ShippingInfo carries the customer shipping details for a checkout
type ShippingInfo struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	ShippingMethod string `json:"shippingMethod"`
}

// CheckoutRequest is the payload for creating a checkout session
type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items"`
	Shipping ShippingInfo   `json:"shippingInfo"`
	Total    float64        `json:"total"`
}

// CheckoutSession is the server response to a checkout request
type CheckoutSession struct {
	URL string `json:"url"`
}

// LoginRequest is the payload for an admin login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the authenticated user returned by login and status
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult is the server response to a successful login
type LoginResult struct {
	Success bool      `json:"success"`
	User    LoginUser `json:"user"`
	Token   string    `json:"token"`
}

// Products fetches the full product catalog
func (c *Client) Products(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by ID
func (c *Client) Product(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := c.get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*entities.Product, error) {
	var product entities.Product
	if err := c.post(ctx, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product
func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*entities.Product, error) {
	var product entities.Product
	if err := c.Do(ctx, http.MethodPut, "/products/"+id, patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product and returns its final state
func (c *Client) DeleteProduct(ctx context.Context, id string) (*DeleteProductResult, error) {
	var result DeleteProductResult
	if err := c.Do(ctx, http.MethodDelete, "/products/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health fetches the server health report
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Login authenticates the admin user and returns the issued session
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCheckoutSession starts a hosted checkout and returns its URL
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.post(ctx, "/create-checkout-session", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
