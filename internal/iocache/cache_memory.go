package iocache

import (
	"errors"
	"sync"
	"time"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// ErrCacheMiss marks a key that is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// janitorInterval is how often the memory store sweeps expired entries.
const janitorInterval = time.Minute

type memoryEntry struct {
	value   []byte
	created time.Time
	expires time.Time
}

// MemoryStore is the in-process TTL store, the default backend. Expiry is
// enforced lazily on read and by a periodic janitor sweep that keeps memory
// bounded across long-running server sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

var _ contract.Store = &MemoryStore{} // Compile-time check

// NewMemoryStore creates a memory store and starts its janitor.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go store.janitor()
	return store
}

// Get implements the Store interface.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	entry, found := s.entries[key]
	s.mu.RUnlock()
	if !found {
		return nil, ErrCacheMiss
	}
	if time.Now().After(entry.expires) {
		_ = s.Delete(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set implements the Store interface.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, created: now, expires: now.Add(ttl)}
	return nil
}

// Delete implements the Store interface.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Clear implements the Store interface.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	return nil
}

// GetStatus implements the Store interface.
func (s *MemoryStore) GetStatus() (schema.CacheStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := schema.CacheStatus{
		Backend:      string(schema.MemoryBackend),
		Connected:    true,
		TotalEntries: len(s.entries),
	}
	now := time.Now()
	for _, entry := range s.entries {
		if now.Before(entry.expires) {
			status.LiveEntries++
		}
		if status.OldestEntryTime.IsZero() || entry.created.Before(status.OldestEntryTime) {
			status.OldestEntryTime = entry.created
		}
		if entry.created.After(status.LastEntryTime) {
			status.LastEntryTime = entry.created
		}
	}
	return status, nil
}

// Close stops the janitor. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// janitor sweeps expired entries until the store closes.
func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes every expired entry.
func (s *MemoryStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
		}
	}
}

// noopStore serves the NoneBackend: every read misses, every write drops.
type noopStore struct{}

var _ contract.Store = noopStore{} // Compile-time check

func (noopStore) Get(string) ([]byte, error)              { return nil, ErrCacheMiss }
func (noopStore) Set(string, []byte, time.Duration) error { return nil }
func (noopStore) Delete(string) error                     { return nil }
func (noopStore) Clear() error                            { return nil }
func (noopStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: string(schema.NoneBackend)}, nil
}
func (noopStore) Close() error { return nil }
