// Package favorites implements the client side of the favorites
// consistency protocol: a locally cached set of favorite animal ids,
// partitioned per principal, kept in sync with the server through
// optimistic toggles and sequence-guarded refreshes.
package favorites

import (
	"context"
	"sync"
)

// guestKey partitions the cache for unauthenticated sessions.
const guestKey = "favorites:guest"

// CacheKey returns the cache partition for a principal. Switching
// principals switches keys; one principal's set is unreachable under
// another's key.
func CacheKey(principalID string) string {
	if principalID == "" {
		return guestKey
	}
	return "favorites:" + principalID
}

// CacheStore persists the cached favorites set per partition key. The
// store is a cache, never the source of truth; the server's relation
// store is authoritative.
type CacheStore interface {
	// Get returns the ids stored under key, or nil when absent.
	Get(ctx context.Context, key string) ([]string, error)
	Put(ctx context.Context, key string, ids []string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process CacheStore.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.sets[key]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, ids []string) error {
	cp := make([]string, len(ids))
	copy(cp, ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[key] = cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, key)
	return nil
}
