package findway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/cache"
	"github.com/shandysiswandi/gofindway/internal/findway/currency"
	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/inbound"
	"github.com/shandysiswandi/gofindway/internal/findway/provider"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgrouter"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"

	redisKeyPrefix = "findway:"
)

// Defaults are the module's config values when neither the file nor the
// environment sets them.
var Defaults = map[string]any{
	"modules.findway.enabled":                    true,
	"modules.findway.provider.base_url":          provider.DefaultRyanairBaseURL,
	"modules.findway.provider.timeout_ms":        15000,
	"modules.findway.provider.rate_limit_ms":     0,
	"modules.findway.currency.base_url":          currency.DefaultBaseURL,
	"modules.findway.currency.rates_path":        currency.DefaultRatesPath,
	"modules.findway.currency.timeout_ms":        10000,
	"modules.findway.cache.ttl_seconds":          0,
	"modules.findway.cache.driver":               CacheDriverMemory,
	"modules.findway.cache.redis.addr":           "localhost:6379",
	"modules.findway.search.min_layover_minutes": usecase.DefaultMinLayoverMinutes,
}

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
}

// New wires the search engine and mounts its HTTP endpoints. The returned
// closer releases whatever the cache backend holds open.
func New(dep Dependency) (func(context.Context) error, error) {
	uc, closer, err := NewUsecase(context.Background(), dep.Config)
	if err != nil {
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return closer, nil
}

// NewUsecase builds the engine from config: the Ryanair source, optionally
// spaced and cached, and the EUR converter.
func NewUsecase(ctx context.Context, cfg pkgconfig.Config) (*usecase.Usecase, func(context.Context) error, error) {
	providerTimeout := time.Duration(cfg.GetInt("modules.findway.provider.timeout_ms")) * time.Millisecond

	var source provider.Source = provider.NewRyanairProvider(
		cfg.GetString("modules.findway.provider.base_url"),
		providerTimeout,
	)

	if rateLimitMs := cfg.GetInt("modules.findway.provider.rate_limit_ms"); rateLimitMs > 0 {
		source = provider.NewRateLimitedSource(source, time.Duration(rateLimitMs)*time.Millisecond)
	}

	closer := func(context.Context) error { return nil }
	if ttlSeconds := cfg.GetInt("modules.findway.cache.ttl_seconds"); ttlSeconds > 0 {
		store, storeCloser, err := newDestinationStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closer = storeCloser
		source = provider.NewCachedSource(source, store, time.Duration(ttlSeconds)*time.Second)
	}

	converter := currency.New(
		cfg.GetString("modules.findway.currency.base_url"),
		currency.WithRatesPath(cfg.GetString("modules.findway.currency.rates_path")),
		currency.WithTimeout(time.Duration(cfg.GetInt("modules.findway.currency.timeout_ms"))*time.Millisecond),
	)

	uc := usecase.New(usecase.Dependency{
		Source:            source,
		Converter:         converter,
		CallTimeout:       providerTimeout,
		MinLayoverMinutes: cfg.GetInt("modules.findway.search.min_layover_minutes"),
	})

	return uc, closer, nil
}

func newDestinationStore(ctx context.Context, cfg pkgconfig.Config) (cache.Store[[]entity.Airport], func(context.Context) error, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.GetString("modules.findway.cache.driver")))

	switch driver {
	case "", CacheDriverMemory:
		return cache.New(provider.CloneAirports), func(context.Context) error { return nil }, nil
	case CacheDriverRedis:
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.GetString("modules.findway.cache.redis.addr"),
			Password: cfg.GetString("modules.findway.cache.redis.password"),
			DB:       cfg.GetInt("modules.findway.cache.redis.db"),
		})
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "destination cache backed by redis", "addr", client.Options().Addr)
		return cache.NewRedis[[]entity.Airport](client, redisKeyPrefix), func(context.Context) error {
			return client.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", driver)
	}
}
