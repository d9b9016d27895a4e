// Package cache provides the bounded in-memory store for rendered content.
// Entries expire lazily on read once their TTL elapses; when the store is
// full, the entry with the oldest successful read is evicted.
package cache

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the store when no explicit capacity is configured.
const DefaultCapacity = 50

// Metadata records where an entry came from and how much upstream work it
// took to produce, for the stats endpoint.
type Metadata struct {
	SourceKey    string `json:"source_key"`
	FetchedUnits int    `json:"fetched_units"`
}

type entry struct {
	content        string
	createdAt      time.Time
	lastAccessedAt time.Time
	ttl            time.Duration
	meta           Metadata
}

// Store is a TTL- and recency-aware key/value store. All methods are safe
// for concurrent use.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int

	// now is swappable so tests can control the clock.
	now func() time.Time
}

// New creates a Store holding at most capacity entries. A capacity <= 0
// falls back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make(map[string]*entry),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the content stored under key. An entry whose age exceeds its
// TTL is deleted and reported as absent. A successful read updates the
// entry's recency.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}

	now := s.now()
	if now.Sub(e.createdAt) > e.ttl {
		delete(s.entries, key)
		return "", false
	}

	e.lastAccessedAt = now
	return e.content, true
}

// Has reports whether key holds a live entry. It does not refresh recency.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if s.now().Sub(e.createdAt) > e.ttl {
		delete(s.entries, key)
		return false
	}
	return true
}

// Set stores content under key with the given TTL. Overwriting an existing
// key never triggers eviction; inserting a new key into a full store evicts
// the entry with the oldest lastAccessedAt first.
func (s *Store) Set(key, content string, ttl time.Duration, meta Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[key] = &entry{
		content:        content,
		createdAt:      now,
		lastAccessedAt: now,
		ttl:            ttl,
		meta:           meta,
	}
}

// SetCapacity changes the maximum entry count, evicting least-recently-read
// entries until the store fits when shrinking.
func (s *Store) SetCapacity(n int) {
	if n <= 0 {
		n = DefaultCapacity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = n
	for len(s.entries) > n {
		s.evictOldestLocked()
	}
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// Len returns the current entry count, including entries whose TTL has
// elapsed but which have not yet been read.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EntryStat describes one cache entry for the stats endpoint.
type EntryStat struct {
	Key          string    `json:"key"`
	AgeSeconds   float64   `json:"age_seconds"`
	TTLSeconds   float64   `json:"ttl_seconds"`
	LastAccessed time.Time `json:"last_accessed"`
	Metadata     Metadata  `json:"metadata"`
}

// Stats returns a snapshot of all live entries.
func (s *Store) Stats() []EntryStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := make([]EntryStat, 0, len(s.entries))
	for key, e := range s.entries {
		stats = append(stats, EntryStat{
			Key:          key,
			AgeSeconds:   now.Sub(e.createdAt).Seconds(),
			TTLSeconds:   e.ttl.Seconds(),
			LastAccessed: e.lastAccessedAt,
			Metadata:     e.meta,
		})
	}
	return stats
}

// evictOldestLocked removes the entry with the oldest lastAccessedAt.
// Ties are broken arbitrarily. Caller must hold s.mu.
func (s *Store) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range s.entries {
		if first || e.lastAccessedAt.Before(oldest) {
			oldestKey = key
			oldest = e.lastAccessedAt
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestKey)
	}
}
