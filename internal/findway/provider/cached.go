package provider

import (
	"context"
	"strings"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/cache"
	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

// cachedSource keeps destination lists for ttl. Dates and flights always go
// upstream.
type cachedSource struct {
	Source
	store cache.Store[[]entity.Airport]
	ttl   time.Duration
}

func NewCachedSource(s Source, store cache.Store[[]entity.Airport], ttl time.Duration) Source {
	return &cachedSource{Source: s, store: store, ttl: ttl}
}

func CloneAirports(value []entity.Airport) []entity.Airport {
	if value == nil {
		return nil
	}
	return append([]entity.Airport(nil), value...)
}

func (c *cachedSource) Destinations(ctx context.Context, airport string) ([]entity.Airport, error) {
	key := "destinations|" + strings.ToUpper(airport)
	if cached, ok := c.store.Get(ctx, key); ok {
		return cached, nil
	}

	airports, err := c.Source.Destinations(ctx, airport)
	if err != nil {
		return nil, err
	}
	if len(airports) > 0 {
		c.store.Set(ctx, key, airports, c.ttl)
	}
	return airports, nil
}
