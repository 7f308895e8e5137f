package cache

import "time"

const (
	// DefaultTTL is the fixed lifetime of in-process cache entries and
	// the fallback lifetime for durable snapshots that carry no TTL of
	// their own.
	DefaultTTL = 5 * time.Minute
)

// Entry represents a cached value with its write timestamp.
type Entry struct {
	// Value is the cached payload.
	Value any `json:"value"`

	// StoredAt is when the entry was written.
	StoredAt time.Time `json:"stored_at"`
}

// Expired returns true once the entry's age meets or exceeds ttl.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) >= ttl
}

// Age returns how long ago the entry was written.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}
