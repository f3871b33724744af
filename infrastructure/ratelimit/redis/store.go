// ABOUTME: Redis rate limit store using fixed windows shared across instances
// ABOUTME: Each window is a counter key that expires with the window

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enrichment-app-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit"

// Store implements the rate limit store on top of Redis
type Store struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewStore connects to Redis and creates a store
func NewStore(cfg config.RedisConfig, limit int, window time.Duration) (*Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewStoreWithClient(client, limit, window), nil
}

// NewStoreWithClient wraps an existing client
func NewStoreWithClient(client *redis.Client, limit int, window time.Duration) *Store {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Store{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow increments the counter for the key's current window
func (s *Store) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := s.now().UnixNano() / int64(s.window)
	redisKey := fmt.Sprintf("%s:%s:%d", keyPrefix, key, windowStart)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(s.limit), nil
}

// Limit returns the configured request limit
func (s *Store) Limit() int {
	return s.limit
}

// Window returns the configured window
func (s *Store) Window() time.Duration {
	return s.window
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
