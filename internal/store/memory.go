package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count     int64
	revoked   bool
	expiresAt time.Time
}

// MemoryStore is a process-local Store backed by a mutex-guarded map. It
// serves single-process deployments and tests; expired entries are pruned
// lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	// Now supplies the current time and may be swapped in tests.
	Now func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		Now:     time.Now,
	}
}

// live returns the entry for key, discarding it first if its TTL has lapsed.
// Callers must hold mu.
func (s *MemoryStore) live(key string) *memoryEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if !entry.expiresAt.IsZero() && !s.Now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil
	}
	return entry
}

func (s *MemoryStore) Revoke(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &memoryEntry{revoked: true, expiresAt: s.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.live(key)
	return entry != nil && entry.revoked, nil
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.live(key)
	if entry == nil {
		entry = &memoryEntry{expiresAt: s.Now().Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

func (s *MemoryStore) TTLRemaining(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.live(key)
	if entry == nil || entry.expiresAt.IsZero() {
		return 0, nil
	}
	return entry.expiresAt.Sub(s.Now()), nil
}
