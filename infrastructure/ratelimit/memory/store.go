// ABOUTME: In-memory rate limit store using token buckets per client key
// ABOUTME: Idle buckets expire from a go-cache so memory stays bounded

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Store implements the rate limit store with one token bucket per key
type Store struct {
	buckets *cache.Cache
	limit   int
	window  time.Duration
	mu      sync.Mutex
}

// NewStore creates a store allowing limit requests per window per key
func NewStore(limit int, window time.Duration) *Store {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Store{
		buckets: cache.New(2*window, window),
		limit:   limit,
		window:  window,
	}
}

// Allow consumes one token for the key
func (s *Store) Allow(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	limiter := s.limiter(key)
	return limiter.Allow(), nil
}

// Limit returns the configured request limit
func (s *Store) Limit() int {
	return s.limit
}

// Window returns the configured window
func (s *Store) Window() time.Duration {
	return s.window
}

func (s *Store) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.buckets.Get(key); ok {
		// Refresh expiry while the client is active
		s.buckets.SetDefault(key, v)
		return v.(*rate.Limiter)
	}

	every := rate.Every(s.window / time.Duration(s.limit))
	limiter := rate.NewLimiter(every, s.limit)
	s.buckets.SetDefault(key, limiter)
	return limiter
}
