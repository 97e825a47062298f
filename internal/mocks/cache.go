package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/taskboard-api/internal/cache"
)

// memoryEntry is a cached value with its absolute expiry time.
// A zero expiry means the entry never expires.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements cache.Cache in memory for testing. The clock is
// injectable so TTL expiry can be simulated without sleeping.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// Now is the clock used for expiry checks; defaults to time.Now.
	Now func() time.Time

	// Custom behavior functions for simulating cache failures
	GetErr error
	SetErr error
	DelErr error

	// Call tracking for verification
	GetCalls int
	SetCalls int
	DelCalls int
}

// Ensure MemoryCache implements cache.Cache
var _ cache.Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty MemoryCache using the real clock.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		Now:     time.Now,
	}
}

// Get implements cache.Cache.Get
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}

	entry, exists := m.entries[key]
	if !exists {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !m.Now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

// Set implements cache.Cache.Set
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	entry := memoryEntry{value: stored}
	if ttl > 0 {
		entry.expiresAt = m.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

// Del implements cache.Cache.Del
func (m *MemoryCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DelCalls++
	if m.DelErr != nil {
		return m.DelErr
	}

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Contains reports whether an unexpired entry exists for key.
func (m *MemoryCache) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists {
		return false
	}
	return entry.expiresAt.IsZero() || m.Now().Before(entry.expiresAt)
}
