// Package metrics provides the central Prometheus registry reference
// for the shop edge client. Metrics are defined next to the code they
// observe (pkg/client, pkg/cache) and registered via promauto; this
// package documents the exported families in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the client.
// All metrics are registered automatically via promauto.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - shop_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - shop_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - shop_errors_total{class} (Counter): Errors by class (transport, domain)
//
// Fallback Metrics (pkg/client):
//   - shop_fallbacks_total{operation, outcome} (Counter): Fallback attempts by
//     operation and outcome (hit, miss, error, disabled)
//
// Cache Metrics (pkg/cache):
//   - shop_cache_hits_total{layer} (Counter): Cache hits by tier (memory, durable)
//   - shop_cache_misses_total (Counter): Cache misses
//   - shop_cache_evictions_total (Counter): Stale entries evicted lazily
//   - shop_cache_promotions_total (Counter): Durable hits promoted to memory
//   - shop_cache_store_errors_total{operation} (Counter): Swallowed durable store errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(shop_cache_hits_total[5m])) /
//   (sum(rate(shop_cache_hits_total[5m])) + sum(rate(shop_cache_misses_total[5m])))
//
//   # Fallback pressure (primary health proxy)
//   sum(rate(shop_fallbacks_total[5m])) by (operation)
//
//   # Request Error Rate
//   rate(shop_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(shop_request_duration_seconds_bucket[5m]))
