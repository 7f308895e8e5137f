package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits by tier (memory, durable).
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cache_hits_total",
			Help: "Total number of cache hits by tier",
		},
		[]string{"layer"},
	)

	// Misses tracks cache misses across both tiers.
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Evictions tracks lazy evictions of stale entries and expired
	// snapshot removals.
	Evictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_cache_evictions_total",
			Help: "Total number of stale cache entries evicted",
		},
	)

	// Promotions tracks durable-tier hits promoted into the memory tier.
	Promotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_cache_promotions_total",
			Help: "Total number of durable-tier hits promoted to memory",
		},
	)

	// StoreErrors tracks swallowed durable-store failures by operation.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cache_store_errors_total",
			Help: "Total number of durable store errors (treated as misses)",
		},
		[]string{"operation"}, // "get", "decode", "remove"
	)
)
