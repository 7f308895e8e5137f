// Package client provides the shop edge API client with layered
// caching, client-side filtering, and fallback resolution.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/veloshop/shop-edge-client/pkg/cache"
)

// Prometheus metrics for edge API operations.
var (
	shopRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_requests_total",
		Help: "Total edge API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	shopRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_request_duration_seconds",
		Help:    "Edge API request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	shopErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_errors_total",
		Help: "Total edge API errors by class",
	}, []string{"class"})
)

const (
	// defaultAPIKey is the public-tier placeholder token used when no
	// key is configured. It is not a security boundary.
	defaultAPIKey = "shop_public_default"

	// fullListLimit is the raised page size used when a fallback path
	// has to scan the whole catalog.
	fullListLimit = 1000
)

// Config holds the client configuration.
type Config struct {
	// WorkerURL is the primary edge endpoint base URL (required).
	WorkerURL string

	// FallbackURL is the secondary endpoint base URL. The secondary
	// path is currently disabled by policy; the URL is carried only
	// for configuration compatibility.
	FallbackURL string

	// APIKey authenticates requests. Falls back to the public default
	// token when empty.
	APIKey string

	// Store is the optional durable cross-session store consulted for
	// single-entity lookups. Nil disables the durable tier.
	Store cache.Store

	// MemoryTTL is the in-process cache entry lifetime. Zero means the
	// fixed 5 minute default.
	MemoryTTL time.Duration

	// HTTPClient is the transport. Nil means a 30s-timeout default.
	HTTPClient *http.Client

	// Clock supplies the current time for cache stamps and default
	// created_at values. Nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a safe default configuration for the given
// primary endpoint.
func DefaultConfig(workerURL string) Config {
	return Config{
		WorkerURL: workerURL,
		MemoryTTL: cache.DefaultTTL,
	}
}

// Client is the shop edge API client. One memory cache tier is owned
// per client instance; the durable tier is shared through the
// configured Store.
type Client struct {
	httpClient *http.Client
	config     Config
	apiKey     string
	memory     *cache.Memory
	durable    *cache.Durable
	logger     zerolog.Logger
	now        func() time.Time
}

// New creates a new shop edge client.
func New(cfg Config) (*Client, error) {
	if cfg.WorkerURL == "" {
		return nil, fmt.Errorf("worker URL is required")
	}
	if _, err := url.Parse(cfg.WorkerURL); err != nil {
		return nil, fmt.Errorf("invalid worker URL: %w", err)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = defaultAPIKey
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := log.With().Str("component", "shop-client").Logger()

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		apiKey:     apiKey,
		memory:     cache.NewMemory(cfg.MemoryTTL, now),
		durable:    cache.NewDurable(cfg.Store, now),
		logger:     logger,
		now:        now,
	}, nil
}

// Cache returns the in-process cache tier (for invalidation and tests).
func (c *Client) Cache() *cache.Memory {
	return c.memory
}

// InvalidateLists drops every cached product list. Intended for callers
// that just performed a write affecting the catalog.
func (c *Client) InvalidateLists() {
	c.memory.Clear("products_public")
}

// getJSON issues a GET against the primary endpoint and decodes the
// response envelope, returning the data payload or a typed error.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	u, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint)
}

// postJSON issues a POST with a JSON body against the primary endpoint
// and decodes the response envelope.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	u, err := c.buildURL(endpoint, nil)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint)
}

// do executes one request attempt. There is no retry at this layer; a
// failure either triggers one fallback attempt in the caller or
// surfaces immediately.
func (c *Client) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	start := c.now()
	defer func() {
		shopRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing edge request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		shopErrorsTotal.WithLabelValues(errClassTransport).Inc()
		shopRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Edge request failed")
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	shopRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		shopErrorsTotal.WithLabelValues(errClassTransport).Inc()
		return nil, fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	data, err := decodeEnvelope(endpoint, body)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Err == nil {
			shopErrorsTotal.WithLabelValues(errClassDomain).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Str("error", apiErr.Message).
				Bool("fallback_allowed", apiErr.Fallback).
				Msg("Edge request returned domain error")
		} else {
			shopErrorsTotal.WithLabelValues(errClassTransport).Inc()
		}
		return nil, err
	}

	return data, nil
}

// buildURL joins the worker base URL with the endpoint path and query
// parameters, always attaching the api_key parameter.
func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(c.config.WorkerURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("build url for %s: %w", endpoint, err)
	}

	q := u.Query()
	for key, vals := range params {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.memory.Clear("")
	return nil
}
