package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"novamarket/application/ports"
	"novamarket/domain/core/entities"
	"novamarket/pkg/errors"
)

// ProductRepository is an in-memory ports.ProductRepository with the same
// observable behavior as the MongoDB implementation: identifiers are
// ObjectID hex strings assigned on insert, lists come back newest first,
// unknown ids map to not-found errors. Used by tests and local tooling.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]entities.Product
}

// NewProductRepository creates an empty in-memory repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]entities.Product),
	}
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

// FindAll retrieves all products, newest first
func (r *ProductRepository) FindAll(ctx context.Context) ([]entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entities.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// FindByID retrieves a product by its ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NewNotFoundError("product")
	}
	return &p, nil
}

// Insert persists a new product and assigns its identifier
func (r *ProductRepository) Insert(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID().Hex()
	r.products[product.ID] = *product
	return nil
}

// Update applies a partial update and returns the updated product
func (r *ProductRepository) Update(ctx context.Context, id string, update entities.ProductUpdate) (*entities.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NewNotFoundError("product")
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now

	r.products[id] = p
	return &p, nil
}

// Delete removes a product and returns the deleted record
func (r *ProductRepository) Delete(ctx context.Context, id string) (*entities.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NewNotFoundError("product")
	}
	delete(r.products, id)
	return &p, nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}
