package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Option func(*config)

type config struct {
	sliding bool
}

// Sliding refreshes an entry's expiry on every successful Get.
func Sliding() Option {
	return func(c *config) { c.sliding = true }
}

// Store is a TTL keyed cache whose loads are deduplicated per key.
// Every Delete or DeletePrefix starts a new generation; a load begun in an
// older generation is neither cached nor shared with later callers.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	generation uint64
	ttl     time.Duration
	sliding bool
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration, opts ...Option) *Store[V] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		sliding: cfg.sliding,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	if s.sliding && s.ttl > 0 {
		s.mu.Lock()
		if current, still := s.entries[key]; still {
			current.expiresAt = now.Add(s.ttl)
			s.entries[key] = current
		}
		s.mu.Unlock()
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.generation++
	s.mu.Unlock()
}

// DeletePrefix drops every entry whose key starts with prefix.
func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.generation++
	s.mu.Unlock()
}

func (s *Store[V]) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// setIfGeneration stores value only when no invalidation happened since gen
// was read.
func (s *Store[V]) setIfGeneration(key string, value V, gen uint64) {
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	}
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.currentGeneration()
	value, err, _ := s.flight.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value.(V), nil
}
