// Package testutil provides testing utilities for the shop edge client.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Envelope is the wire shape the mock worker responds with.
type Envelope struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// MockWorker is a configurable mock edge endpoint for testing.
type MockWorker struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	requestCount int
	pathCounts   map[string]int
	lastQuery    map[string]string
	lastBody     []byte
}

// NewMockWorker creates a new mock edge endpoint.
func NewMockWorker() *MockWorker {
	mock := &MockWorker{
		handlers:   make(map[string]http.HandlerFunc),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.pathCounts[r.URL.Path]++
		mock.lastQuery = make(map[string]string)
		for key := range r.URL.Query() {
			mock.lastQuery[key] = r.URL.Query().Get(key)
		}
		if r.Body != nil {
			body, _ := io.ReadAll(r.Body)
			mock.lastBody = body
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Unconfigured paths answer a domain failure.
		WriteEnvelope(w, Envelope{Success: false, Error: "not configured"})
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockWorker) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockWorker) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockWorker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pathCounts = make(map[string]int)
	m.lastQuery = nil
	m.lastBody = nil
}

// SetHandler sets a custom handler for a path.
func (m *MockWorker) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetEnvelope configures a canned envelope response for a path.
func (m *MockWorker) SetEnvelope(path string, env Envelope) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, env)
	})
}

// SetRawResponse configures a raw body and status for a path, for
// exercising malformed-envelope handling.
func (m *MockWorker) SetRawResponse(path string, status int, body string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

// RequestCount returns the total number of requests received.
func (m *MockWorker) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PathCount returns the number of requests received for one path.
func (m *MockWorker) PathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// LastQuery returns the query parameters of the most recent request.
func (m *MockWorker) LastQuery() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

// LastBody returns the body of the most recent request.
func (m *MockWorker) LastBody() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastBody
}

// WriteEnvelope writes an envelope as a JSON response.
func WriteEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(env)
}

// ProductList builds a canned product list payload.
func ProductList(products ...map[string]any) []any {
	out := make([]any, 0, len(products))
	for _, p := range products {
		out = append(out, p)
	}
	return out
}

// SampleProducts is a small catalog covering the filter edge cases:
// one out-of-stock product and two in-stock products in different
// categories.
func SampleProducts() []any {
	return ProductList(
		map[string]any{"id": "1", "title": "Out of Stock Widget", "category": "A", "amount_in_stock": 0},
		map[string]any{"id": "2", "title": "Blue Widget", "category": "A", "amount_in_stock": 5},
		map[string]any{"id": "3", "title": "Red Gadget", "category": "B", "amount_in_stock": 3, "description": "a shiny gadget"},
	)
}
