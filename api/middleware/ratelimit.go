// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Per-client limits backed by a pluggable store (in-memory or redis)

package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"enrichment-app-api/core/interfaces"
)

// RateLimitStore decides whether a client may make another request
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
	Limit() int
	Window() time.Duration
}

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	// Last hop in X-Forwarded-For is the one our proxy appended
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware creates a middleware that enforces rate limits.
// Requests to exempt paths are never counted. Store errors fail open.
func RateLimitMiddleware(store RateLimitStore, logger interfaces.Logger, exemptPaths ...string) func(http.Handler) http.Handler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exempt[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r)
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", store.Limit()))
			w.Header().Set("X-RateLimit-Window", store.Window().String())

			allowed, err := store.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("Rate limit store unavailable, allowing request", map[string]interface{}{
					"request_id": RequestIDFromContext(r.Context()),
					"remote_ip":  ip,
					"error":      err.Error(),
				})
				allowed = true
			}

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(store.Window().Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
