package cache

import (
	"context"
	"time"

	"novamarket/application/ports"
)

// NoopCache is the cache implementation selected when no backend is
// configured or the backend could not be reached at startup. Every read
// reports a miss and every write reports failure, which call sites treat
// as best-effort anyway.
type NoopCache struct{}

// NewNoopCache creates a disabled cache
func NewNoopCache() ports.Cache {
	return NoopCache{}
}

// Get always reports a miss
func (NoopCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

// Set is a no-op
func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	return false
}

// Delete is a no-op
func (NoopCache) Delete(ctx context.Context, key string) bool {
	return false
}

// DeletePattern is a no-op
func (NoopCache) DeletePattern(ctx context.Context, pattern string) bool {
	return false
}

// Connected reports false
func (NoopCache) Connected() bool {
	return false
}

// Close is a no-op
func (NoopCache) Close(ctx context.Context) error {
	return nil
}
