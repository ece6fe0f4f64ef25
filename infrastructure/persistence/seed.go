// Package persistence provides the starter-catalog bootstrap shared by all
// repository implementations.
package persistence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/domain/core/entities"
)

// SeedSampleCatalog inserts the starter catalog when the store is empty.
// Idempotent: a store that already contains products is left untouched.
// Failures are logged warnings, never fatal.
func SeedSampleCatalog(ctx context.Context, repo ports.ProductRepository, logger *zap.Logger) {
	count, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Could not check for sample data", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Info("Store already contains products", zap.Int64("count", count))
		return
	}

	for i := range sampleProducts {
		product := sampleProducts[i]
		if err := repo.Insert(ctx, &product); err != nil {
			logger.Warn("Could not seed sample data", zap.Error(err))
			return
		}
	}
	logger.Info("Inserted sample products", zap.Int("count", len(sampleProducts)))
}

var sampleProducts = []entities.Product{
	{
		Name:        "Wireless Headphones",
		Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life.",
		Price:       149.99,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Name:        "Smart Watch",
		Description: "Feature-rich smartwatch with fitness tracking, heart rate monitor, and GPS.",
		Price:       299.99,
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
	},
	{
		Name:        "Laptop Stand",
		Description: "Ergonomic aluminum laptop stand with adjustable height and angle.",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
	},
	{
		Name:        "Mechanical Keyboard",
		Description: "RGB mechanical keyboard with customizable keys and tactile switches.",
		Price:       129.99,
		Image:       "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
	},
	{
		Name:        "Wireless Mouse",
		Description: "Precision wireless mouse with ergonomic design and long battery life.",
		Price:       39.99,
		Image:       "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC),
	},
	{
		Name:        "USB-C Hub",
		Description: "Multi-port USB-C hub with HDMI, USB 3.0, and SD card reader.",
		Price:       59.99,
		Image:       "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=500&h=500&fit=crop",
		CreatedAt:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	},
}
