// ABOUTME: Request pacing for scraping search backends
// ABOUTME: Waits a random delay before each request so a scraper does not hammer the engine

package websearch

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer blocks before a request to a pacing backend
type Pacer interface {
	Wait(ctx context.Context) error
}

// RandomPacer waits a uniformly random duration in [Min, Max]
type RandomPacer struct {
	Min time.Duration
	Max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPacer creates a pacer, swapping the bounds if given in reverse
func NewRandomPacer(min, max time.Duration) *RandomPacer {
	if max < min {
		min, max = max, min
	}
	return &RandomPacer{
		Min: min,
		Max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Delay picks the next delay
func (p *RandomPacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Min + time.Duration(p.rng.Int63n(int64(p.Max-p.Min)+1))
}

// Wait sleeps for a random delay or until the context is done
func (p *RandomPacer) Wait(ctx context.Context) error {
	delay := p.Delay()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoPacer never waits
type NoPacer struct{}

// Wait returns immediately unless the context is already done
func (NoPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
