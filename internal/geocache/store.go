package geocache

import (
	"sync"

	"github.com/clineup/clineup/internal/geocode"
)

// Store persists successful lookups by Key.
type Store interface {
	Get(key Key) (geocode.Location, bool, error)
	Put(key Key, loc geocode.Location) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]geocode.Location
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]geocode.Location)}
}

func (s *MemoryStore) Get(key Key) (geocode.Location, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.entries[key]
	return loc, ok, nil
}

func (s *MemoryStore) Put(key Key, loc geocode.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = loc
	return nil
}

// Len returns the number of cached keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
