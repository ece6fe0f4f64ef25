package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// SlidingWindowLimiter implements sliding window rate limiting
type SlidingWindowLimiter struct {
	mu         sync.RWMutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration
}

type window struct {
	requests []time.Time
	mu       sync.Mutex
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter
func NewSlidingWindowLimiter(limit int, windowSize time.Duration) *SlidingWindowLimiter {
	limiter := &SlidingWindowLimiter{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
	}

	// Start cleanup goroutine
	go limiter.cleanup()

	return limiter
}

// Allow checks if a request is allowed
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	w, exists := l.windows[key]
	if !exists {
		w = &window{
			requests: make([]time.Time, 0),
		}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.windowSize)

	// Remove old requests outside the window
	validRequests := make([]time.Time, 0, len(w.requests))
	for _, reqTime := range w.requests {
		if reqTime.After(windowStart) {
			validRequests = append(validRequests, reqTime)
		}
	}
	w.requests = validRequests

	// Check if limit is exceeded
	if len(w.requests) >= l.limit {
		return false, nil
	}

	// Add current request
	w.requests = append(w.requests, now)
	return true, nil
}

// Reset resets the rate limit for a key
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
	return nil
}

// Remaining reports how many requests the key has left in the current window
func (l *SlidingWindowLimiter) Remaining(key string) int {
	l.mu.RLock()
	w, exists := l.windows[key]
	l.mu.RUnlock()

	if !exists {
		return l.limit
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	windowStart := time.Now().Add(-l.windowSize)
	active := 0
	for _, reqTime := range w.requests {
		if reqTime.After(windowStart) {
			active++
		}
	}

	remaining := l.limit - active
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes idle windows periodically
func (l *SlidingWindowLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-2 * l.windowSize)
		for key, w := range l.windows {
			w.mu.Lock()
			idle := len(w.requests) == 0 ||
				w.requests[len(w.requests)-1].Before(cutoff)
			w.mu.Unlock()
			if idle {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// IPRateLimiter wraps a sliding window limiter for per-IP limiting
type IPRateLimiter struct {
	limiter *SlidingWindowLimiter
	limit   int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(limit int, windowSize time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiter: NewSlidingWindowLimiter(limit, windowSize),
		limit:   limit,
	}
}

// Allow checks if a request from an IP is allowed
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	return l.limiter.Allow(ctx, fmt.Sprintf("ip:%s", ip))
}

// Remaining reports how many requests the IP has left in the current window
func (l *IPRateLimiter) Remaining(ip string) int {
	return l.limiter.Remaining(fmt.Sprintf("ip:%s", ip))
}

// Limit returns the configured window budget
func (l *IPRateLimiter) Limit() int {
	return l.limit
}
