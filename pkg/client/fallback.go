package client

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for fallback resolution.
var (
	shopFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_fallbacks_total",
		Help: "Fallback attempts by operation and outcome",
	}, []string{"operation", "outcome"})
)

// Fallback outcomes.
const (
	fallbackOutcomeHit      = "hit"      // fallback path produced a result
	fallbackOutcomeMiss     = "miss"     // fallback path ran but found nothing
	fallbackOutcomeError    = "error"    // fallback path itself failed
	fallbackOutcomeDisabled = "disabled" // secondary gateway refused by policy
)

// secondaryUnavailable is the disabled secondary-gateway path. The
// secondary validated-write service was taken out of rotation and the
// redirect is kept fail-fast on purpose: list and settings reads that
// exhaust the primary surface a fixed "service unavailable" error
// instead of silently hitting a half-migrated backend.
func (c *Client) secondaryUnavailable(op string, cause error) error {
	shopFallbacksTotal.WithLabelValues(op, fallbackOutcomeDisabled).Inc()
	c.logger.Warn().
		Str("operation", op).
		Str("error_class", classify(cause)).
		Err(cause).
		Msg("Primary exhausted; secondary gateway is disabled")
	return fmt.Errorf("%s: %w", op, ErrServiceUnavailable)
}

// recordFallback records the outcome of a derived-data fallback path.
func (c *Client) recordFallback(op, outcome string, cause error) {
	shopFallbacksTotal.WithLabelValues(op, outcome).Inc()
	c.logger.Debug().
		Str("operation", op).
		Str("outcome", outcome).
		Err(cause).
		Msg("Fallback path resolved")
}
