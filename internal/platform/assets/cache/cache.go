// Package cache provides the process-lifetime in-memory asset cache.
package cache

import "sync"

// Store maps cache keys to resolved asset values. It is additive-only:
// entries are added, never evicted, expired, or mutated in place. One Store
// is created at startup and passed by reference to every consumer; Clear
// exists for test harnesses.
type Store struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]any)}
}

// Get returns the value for key when present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

// Set stores value under key.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]any)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
