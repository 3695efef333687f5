package store

import (
	"errors"
	"math"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrNotFound is returned when a key is absent or its entry has expired.
	ErrNotFound = errors.New("no entry for key")
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Stats is a point-in-time view of store usage.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// MemoryStore is a concurrency-safe in-memory key/value store with
// least-recently-used eviction and age based expiry.
type MemoryStore[K comparable, V any] struct {
	mu sync.Mutex

	cache *lru.Cache[K, *entry[V]]

	// retention configuration
	maxAge time.Duration // max age of an entry (0 = unlimited)

	hits, misses uint64

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore[K comparable, V any](maxEntries int, maxAge time.Duration) *MemoryStore[K, V] {
	if maxEntries <= 0 {
		maxEntries = math.MaxInt
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[K, *entry[V]](maxEntries)
	return &MemoryStore[K, V]{
		cache:  cache,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Save stores value under key; the least recently used entry is evicted
// once the store is full.
func (s *MemoryStore[K, V]) Save(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(key, &entry[V]{value: value, storedAt: s.now()})
}

// Get returns the value stored under key.
func (s *MemoryStore[K, V]) Get(key K) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.cache.Get(key)
	if !ok {
		s.misses++
		return zero, ErrNotFound
	}
	if s.expired(e) {
		s.cache.Remove(key)
		s.misses++
		return zero, ErrNotFound
	}

	s.hits++
	return e.value, nil
}

// Sweep drops every expired entry and returns how many were removed.
func (s *MemoryStore[K, V]) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range s.cache.Keys() {
		if e, ok := s.cache.Peek(key); ok && s.expired(e) {
			s.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore[K, V]) Len() int {
	return s.cache.Len()
}

// Stats returns usage counters.
func (s *MemoryStore[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Entries: s.cache.Len(), Hits: s.hits, Misses: s.misses}
}

func (s *MemoryStore[K, V]) expired(e *entry[V]) bool {
	return s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge
}
