package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value   V
	expires time.Time
}

// Memory is an in-process Cache. Expired entries are never returned; Sweep
// reclaims their memory.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[V]
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory[V any](ttl time.Duration) *Memory[V] {
	return NewMemoryWithClock[V](ttl, time.Now)
}

func NewMemoryWithClock[V any](ttl time.Duration, now func() time.Time) *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]memoryEntry[V]),
		ttl:     ttl,
		now:     now,
	}
}

func (m *Memory[V]) Get(ctx context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !m.now().Before(e.expires) {
		var zero V
		return zero, ErrMiss
	}
	return e.value, nil
}

func (m *Memory[V]) Set(ctx context.Context, key string, value V) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry[V]{value: value, expires: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory[V]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory[V]) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len includes entries that have expired but not been swept.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
