package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

var lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "findway_cache_lookups_total",
	Help: "Cache lookups by backend and result",
}, []string{"backend", "result"})

func recordLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	lookups.WithLabelValues(backend, result).Inc()
}

// Store is a TTL key/value store. Backends never fail a lookup; any problem
// reads as a miss.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, ttl time.Duration)
}

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is a process-local Store. Values are cloned on the way in and out so
// callers can mutate what they hold.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]item[T]
	clone   func(T) T
}

// New returns an empty Memory store. A nil clone stores values as given.
func New[T any](clone func(T) T) *Memory[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Memory[T]{entries: map[string]item[T]{}, clone: clone}
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T

	m.mu.RLock()
	it, found := m.entries[key]
	m.mu.RUnlock()

	switch {
	case !found:
		recordLookup(backendMemory, false)
		return zero, false
	case !time.Now().Before(it.expiresAt):
		m.evict(key, it.expiresAt)
		recordLookup(backendMemory, false)
		return zero, false
	}

	recordLookup(backendMemory, true)
	return m.clone(it.value), true
}

func (m *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) {
	it := item[T]{value: m.clone(value), expiresAt: time.Now().Add(ttl)}

	m.mu.Lock()
	m.entries[key] = it
	m.mu.Unlock()
}

// evict drops key unless a newer Set replaced it since it was read.
func (m *Memory[T]) evict(key string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(expiresAt) {
		delete(m.entries, key)
	}
}
