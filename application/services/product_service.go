package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/domain/core/entities"
)

// Cache key conventions. Invalidation sweeps the whole products: prefix, so
// every list-shaped entry must live under it.
const (
	allProductsKey  = "products:all"
	productKeyBase  = "product:"
	productsPattern = "products:*"
)

// TTL tiers: individual items change less often than the aggregate list.
const (
	listTTL    = 5 * time.Minute
	productTTL = 10 * time.Minute
)

func productKey(id string) string {
	return productKeyBase + id
}

// ProductService serves product reads through a cache-aside layer and keeps
// the cache coherent on writes. The repository is authoritative: its errors
// propagate, cache errors never do.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.Cache
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repo ports.ProductRepository, cache ports.Cache, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List returns all products, newest first. Served from cache when a valid
// entry exists; otherwise read from the store and cached for the list TTL.
func (s *ProductService) List(ctx context.Context) ([]entities.Product, error) {
	if data, ok := s.cache.Get(ctx, allProductsKey); ok {
		var products []entities.Product
		if err := json.Unmarshal(data, &products); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", allProductsKey))
			return products, nil
		}
		// Undecodable entry: drop it and fall through to the store
		s.logger.Warn("Discarding corrupt cache entry", zap.String("key", allProductsKey))
		s.cache.Delete(ctx, allProductsKey)
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, allProductsKey, products, listTTL)
	return products, nil
}

// Get returns a single product by ID, cache-aside like List but with the
// longer single-item TTL. A not-found result is never cached.
func (s *ProductService) Get(ctx context.Context, id string) (*entities.Product, error) {
	key := productKey(id)

	if data, ok := s.cache.Get(ctx, key); ok {
		var product entities.Product
		if err := json.Unmarshal(data, &product); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", key))
			return &product, nil
		}
		s.logger.Warn("Discarding corrupt cache entry", zap.String("key", key))
		s.cache.Delete(ctx, key)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, key, product, productTTL)
	return product, nil
}

// Create inserts a new product. The store assigns the identifier and is
// updated first; only then is the list cache invalidated.
func (s *ProductService) Create(ctx context.Context, product *entities.Product) error {
	product.CreatedAt = time.Now().UTC()

	if err := product.Validate(); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return err
	}

	s.invalidate(ctx, "")
	s.logger.Info("Created product",
		zap.String("id", product.ID),
		zap.String("name", product.Name),
	)
	return nil
}

// Update applies a partial update and returns the updated product.
func (s *ProductService) Update(ctx context.Context, id string, update entities.ProductUpdate) (*entities.Product, error) {
	product, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("Updated product",
		zap.String("id", id),
		zap.String("name", product.Name),
	)
	return product, nil
}

// Delete removes a product and returns the deleted record.
func (s *ProductService) Delete(ctx context.Context, id string) (*entities.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("Deleted product",
		zap.String("id", id),
		zap.String("name", product.Name),
	)
	return product, nil
}

// Count returns the number of stored products, always from the store.
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CacheConnected reports whether the cache backend is reachable.
func (s *ProductService) CacheConnected() bool {
	return s.cache.Connected()
}

// populate writes a freshly read value into the cache. Failures are logged
// and swallowed: the caller already holds the authoritative data.
func (s *ProductService) populate(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to serialize cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if s.cache.Set(ctx, key, data, ttl) {
		s.logger.Debug("Cache populated",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
		)
	}
}

// invalidate removes the entries a completed write could have staled: the
// single-item key when an existing id was touched, and the whole products:
// prefix unconditionally since any write can change list content or order.
func (s *ProductService) invalidate(ctx context.Context, id string) {
	if id != "" {
		s.cache.Delete(ctx, productKey(id))
	}
	s.cache.DeletePattern(ctx, productsPattern)
}
