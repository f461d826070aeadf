package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Redis stores JSON-encoded values under prefix+key. Redis errors are logged
// and reported as misses.
type Redis[T any] struct {
	client redis.Cmdable
	prefix string
}

func NewRedis[T any](client redis.Cmdable, prefix string) *Redis[T] {
	return &Redis[T]{client: client, prefix: prefix}
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "failed to read cache", "key", key, "error", err)
		}
		recordLookup(backendRedis, false)
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		slog.WarnContext(ctx, "failed to decode cache entry", "key", key, "error", err)
		recordLookup(backendRedis, false)
		var zero T
		return zero, false
	}
	recordLookup(backendRedis, true)
	return value, true
}

func (r *Redis[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "failed to write cache", "key", key, "error", err)
	}
}
