package cache

import (
	"strings"
	"sync"
	"time"
)

// Memory is the in-process cache tier. All entries share one fixed TTL;
// stale entries are lazily evicted on the read that finds them. The
// clock is injected so expiry can be tested without sleeping.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-process cache with the given TTL. A zero or
// negative ttl falls back to DefaultTTL; a nil clock falls back to
// time.Now.
func NewMemory(ttl time.Duration, now func() time.Time) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Memory{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached value for key. A stale entry is evicted and
// reported as a miss.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		Misses.Inc()
		return nil, false
	}

	if entry.Expired(m.now(), m.ttl) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if current, ok := m.entries[key]; ok && current.Expired(m.now(), m.ttl) {
			delete(m.entries, key)
			Evictions.Inc()
		}
		m.mu.Unlock()
		Misses.Inc()
		return nil, false
	}

	Hits.WithLabelValues("memory").Inc()
	return entry.Value, true
}

// Set unconditionally overwrites the entry for key, stamping the
// current clock time.
func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Value: value, StoredAt: m.now()}
}

// Clear removes entries. With an empty pattern every entry is removed;
// otherwise every key containing pattern as a substring is removed.
func (m *Memory) Clear(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pattern == "" {
		m.entries = make(map[string]Entry)
		return
	}

	for key := range m.entries {
		if strings.Contains(key, pattern) {
			delete(m.entries, key)
		}
	}
}

// Len returns the number of entries currently held, including entries
// that are stale but not yet evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// TTL returns the fixed entry lifetime.
func (m *Memory) TTL() time.Duration {
	return m.ttl
}
