package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// ErrSnapshotMiss indicates the durable snapshot is absent, expired, or
// unreadable. Callers treat it as a plain cache miss.
var ErrSnapshotMiss = errors.New("snapshot miss")

// Store is the durable cross-session key-value store the snapshot blob
// lives in. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// Snapshot is the product blob an external collaborator persists under
// SnapshotKey. Timestamp and TTL are in milliseconds, matching the
// writer's convention; a zero TTL means DefaultTTL applies.
type Snapshot struct {
	Products  []catalog.Product `json:"products"`
	Timestamp int64             `json:"timestamp"`
	TTL       int64             `json:"ttl,omitempty"`
}

// Expired returns true once the snapshot's age meets or exceeds its
// TTL (or DefaultTTL when the blob carries none).
func (s *Snapshot) Expired(now time.Time) bool {
	ttl := DefaultTTL
	if s.TTL > 0 {
		ttl = time.Duration(s.TTL) * time.Millisecond
	}
	age := now.Sub(time.UnixMilli(s.Timestamp))
	return age >= ttl
}

// Durable is the second cache tier: a read-only view of the product
// snapshot in the durable store. It is consulted for single-entity
// lookups only.
type Durable struct {
	store Store
	now   func() time.Time
}

// NewDurable wraps a Store as the durable cache tier. A nil clock
// falls back to time.Now.
func NewDurable(store Store, now func() time.Time) *Durable {
	if now == nil {
		now = time.Now
	}
	return &Durable{store: store, now: now}
}

// Lookup finds a product in the durable snapshot by exact identifier
// first, then by slug match. Returns ErrSnapshotMiss when the blob is
// absent, expired, corrupt, or holds no matching product; store errors
// are folded into the miss, never propagated. An expired blob is
// proactively removed.
func (d *Durable) Lookup(ctx context.Context, id string) (catalog.Product, error) {
	if d == nil || d.store == nil {
		return nil, ErrSnapshotMiss
	}

	raw, err := d.store.Get(ctx, SnapshotKey)
	if err != nil || raw == "" {
		if err != nil && !errors.Is(err, redis.Nil) {
			StoreErrors.WithLabelValues("get").Inc()
		}
		Misses.Inc()
		return nil, ErrSnapshotMiss
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		StoreErrors.WithLabelValues("decode").Inc()
		Misses.Inc()
		return nil, ErrSnapshotMiss
	}

	if snap.Expired(d.now()) {
		if err := d.store.Remove(ctx, SnapshotKey); err != nil {
			StoreErrors.WithLabelValues("remove").Inc()
		}
		Evictions.Inc()
		Misses.Inc()
		return nil, ErrSnapshotMiss
	}

	// Exact identifier match wins over slug matching.
	for _, p := range snap.Products {
		if p.ID() == id {
			Hits.WithLabelValues("durable").Inc()
			return p, nil
		}
	}
	want := catalog.Slugify(id)
	for _, p := range snap.Products {
		if catalog.SlugMatch(p.Slug(), want) {
			Hits.WithLabelValues("durable").Inc()
			return p, nil
		}
	}

	Misses.Inc()
	return nil, ErrSnapshotMiss
}

// RedisStore is a Store backed by Redis, the durable cross-session
// backend this module ships with.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed durable store.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{client: client}
}

// Get returns the raw value for key. A missing key returns "" with a
// redis.Nil error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", redis.Nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set stores a raw value under key with no expiry; lifetime is governed
// by the timestamp inside the blob, not by the store.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Remove deletes key.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
