package provider

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

// Wait reserves the next slot and sleeps until it starts, so concurrent
// callers are spaced by interval in arrival order.
func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	r.mu.Lock()
	now := time.Now()
	next := r.last.Add(r.interval)
	if r.last.IsZero() || !next.After(now) {
		next = now
	}
	r.last = next
	r.mu.Unlock()

	wait := next.Sub(now)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type rateLimitedSource struct {
	source  Source
	limiter *rateLimiter
}

func NewRateLimitedSource(s Source, interval time.Duration) Source {
	return &rateLimitedSource{
		source:  s,
		limiter: newRateLimiter(interval),
	}
}

func (r *rateLimitedSource) Name() string {
	return r.source.Name()
}

func (r *rateLimitedSource) AvailableDates(ctx context.Context, origin, destination string) ([]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.source.AvailableDates(ctx, origin, destination)
}

func (r *rateLimitedSource) Destinations(ctx context.Context, airport string) ([]entity.Airport, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.source.Destinations(ctx, airport)
}

func (r *rateLimitedSource) Flights(ctx context.Context, req SearchRequest) ([]entity.Flight, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.source.Flights(ctx, req)
}
