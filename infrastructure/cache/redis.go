package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"novamarket/application/ports"
)

const (
	connectTimeout  = 5 * time.Second
	maxConnRetries  = 3
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 3 * time.Second
)

// RedisCache implements ports.Cache on a Redis backend. All failures are
// recovered locally: a backend error on Get is a miss, on Set/Delete a
// logged false. The store stays correct without it.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis and returns a cache backed by it. When
// url is empty, the URL is malformed, or the backend cannot be reached
// within the connect budget, it returns the no-op cache instead - the
// process then runs with caching disabled for its whole lifetime.
func NewRedisCache(ctx context.Context, url string, logger *zap.Logger) ports.Cache {
	if url == "" {
		logger.Info("Redis not configured - caching disabled")
		return NewNoopCache()
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("Invalid Redis URL - caching disabled", zap.Error(err))
		return NewNoopCache()
	}

	opts.DialTimeout = connectTimeout
	opts.MaxRetries = maxConnRetries
	opts.MinRetryBackoff = minRetryBackoff
	opts.MaxRetryBackoff = maxRetryBackoff

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable - caching disabled", zap.Error(err))
		client.Close()
		return NewNoopCache()
	}

	logger.Info("Redis connected")
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

// Get retrieves a serialized value; misses and backend errors both report absent
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a serialized value with a TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Delete removes a single entry
func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// DeletePattern removes all entries matching a glob pattern
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) bool {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Warn("Cache pattern lookup failed", zap.String("pattern", pattern), zap.Error(err))
		return false
	}
	if len(keys) == 0 {
		return true
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Cache pattern delete failed", zap.String("pattern", pattern), zap.Error(err))
		return false
	}
	return true
}

// Connected reports whether the backend is reachable right now
func (c *RedisCache) Connected() bool {
	return c.client.Ping(context.Background()).Err() == nil
}

// Close releases the backend connection
func (c *RedisCache) Close(ctx context.Context) error {
	return c.client.Close()
}
