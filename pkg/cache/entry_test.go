package cache

import (
	"testing"
	"time"
)

func TestEntry_Expired(t *testing.T) {
	storedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := Entry{Value: "v", StoredAt: storedAt}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"fresh", storedAt.Add(1 * time.Minute), false},
		{"just under ttl", storedAt.Add(DefaultTTL - time.Second), false},
		{"exactly at ttl", storedAt.Add(DefaultTTL), true},
		{"well past ttl", storedAt.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.Expired(tt.now, DefaultTTL); got != tt.want {
				t.Errorf("Expired(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestEntry_Age(t *testing.T) {
	storedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := Entry{StoredAt: storedAt}

	got := entry.Age(storedAt.Add(90 * time.Second))
	if got != 90*time.Second {
		t.Errorf("Age() = %v, want 90s", got)
	}
}
