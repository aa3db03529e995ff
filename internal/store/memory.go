package store

import (
	"sync"
	"time"

	"github.com/i474232898/plant-suitability/internal/weather"
)

type entry struct {
	snapshot weather.Snapshot
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory weather cache. Entries older
// than the TTL are never served and are removed by Prune.
type MemoryStore struct {
	mu sync.RWMutex

	// key: rounded coordinates
	data map[string]entry

	ttl time.Duration
	now func() time.Time
}

// NewMemoryStore creates a cache whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Save stores the latest snapshot for a location, replacing any previous one.
func (s *MemoryStore) Save(at weather.Coordinates, snapshot weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[at.Key()] = entry{snapshot: snapshot, storedAt: s.now()}
}

// Get returns the cached snapshot for a location if it is still fresh.
func (s *MemoryStore) Get(at weather.Coordinates) (weather.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[at.Key()]
	if !ok || s.expired(e) {
		return weather.Snapshot{}, false
	}
	return e.snapshot, true
}

// Prune drops expired entries and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.data {
		if s.expired(e) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, fresh or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e entry) bool {
	return s.now().Sub(e.storedAt) > s.ttl
}
