package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_EnforcesLimit(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "key")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)

	allowed, _ := limiter.Allow(ctx, "a")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, 20*time.Millisecond)

	allowed, _ := limiter.Allow(ctx, "key")
	require.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "key")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = limiter.Allow(ctx, "key")
	assert.True(t, allowed, "budget should recover once the window passes")
}

func TestSlidingWindowLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)

	limiter.Allow(ctx, "key")
	allowed, _ := limiter.Allow(ctx, "key")
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "key"))

	allowed, _ = limiter.Allow(ctx, "key")
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_Remaining(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(3, time.Minute)

	assert.Equal(t, 3, limiter.Remaining("key"))

	limiter.Allow(ctx, "key")
	assert.Equal(t, 2, limiter.Remaining("key"))

	limiter.Allow(ctx, "key")
	limiter.Allow(ctx, "key")
	assert.Equal(t, 0, limiter.Remaining("key"))
}

func TestSlidingWindowLimiter_ConcurrentCallersStayWithinLimit(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := limiter.Allow(ctx, "shared")
			require.NoError(t, err)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestIPRateLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewIPRateLimiter(2, time.Minute)

	assert.Equal(t, 2, limiter.Limit())
	assert.Equal(t, 2, limiter.Remaining("10.0.0.1"))

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, limiter.Remaining("10.0.0.1"))

	limiter.Allow(ctx, "10.0.0.1")
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)

	// A different address has its own budget
	allowed, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, allowed)
}
