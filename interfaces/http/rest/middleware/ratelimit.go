package middleware

import (
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"novamarket/pkg/common"
	"novamarket/pkg/ratelimit"
)

// RateLimit enforces a per-IP request budget over a sliding window. The
// response body on rejection is a fixed JSON shape so clients can match it.
func RateLimit(limiter *ratelimit.IPRateLimiter, message string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				// Limiter failure must not take the API down
				logger.Warn("Rate limiter error", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(limiter.Remaining(ip)))

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				common.RespondError(w, http.StatusTooManyRequests, common.LabelTooManyRequests, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the caller's address. RealIP middleware runs first, so
// RemoteAddr already reflects X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
