package di

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/application/services"
	"novamarket/infrastructure/cache"
	"novamarket/infrastructure/config"
	"novamarket/infrastructure/payments"
	"novamarket/infrastructure/persistence/mongodb"
)

// Container holds all application dependencies. It owns the process-wide
// store and cache connections; Shutdown releases them in reverse order of
// acquisition.
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	MongoClient    *mongo.Client
	ProductRepo    ports.ProductRepository
	Cache          ports.Cache
	ProductService *services.ProductService
	Checkout       ports.CheckoutProvider
}

// Shutdown closes the cache and store connections
func (c *Container) Shutdown(ctx context.Context) {
	if err := c.Cache.Close(ctx); err != nil {
		c.Logger.Warn("Error closing cache", zap.Error(err))
	}
	if err := c.MongoClient.Disconnect(ctx); err != nil {
		c.Logger.Warn("Error closing MongoDB connection", zap.Error(err))
	}
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideMongoClient establishes the store connection
func ProvideMongoClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, error) {
	return mongodb.Connect(ctx, cfg, logger)
}

// ProvideMongoDatabase selects the application database
func ProvideMongoDatabase(client *mongo.Client, cfg *config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

// ProvideProductRepository creates the MongoDB product repository
func ProvideProductRepository(db *mongo.Database, logger *zap.Logger) ports.ProductRepository {
	return mongodb.NewProductRepository(db, logger)
}

// ProvideCache connects to Redis, or selects the no-op cache when Redis is
// not configured or unreachable
func ProvideCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) ports.Cache {
	return cache.NewRedisCache(ctx, cfg.RedisURL, logger)
}

// ProvideCheckoutProvider creates the payment provider, disabled when no
// secret key is configured
func ProvideCheckoutProvider(cfg *config.Config, logger *zap.Logger) ports.CheckoutProvider {
	return payments.NewStripeCheckout(cfg.StripeSecretKey, cfg.FrontendURL, logger)
}
