package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is an in-process TTL cache for season-scoped reads. A non-positive
// ttl keeps entries for the life of the process.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
}

type entry struct {
	value     any
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key builds a cache key such as "rules:season:2025".
func Key(kind, scope string, id int64) string {
	return kind + ":" + scope + ":" + strconv.FormatInt(id, 10)
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Len counts live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}

// Load returns the cached value for key or calls loader, at most once per key
// across concurrent callers. Loader errors are returned and not cached.
func Load[V any](ctx context.Context, s *Store, key string, loader func(context.Context) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(V); ok {
			return typed, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := s.Get(key); ok {
			if typed, ok := cached.(V); ok {
				return typed, nil
			}
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
