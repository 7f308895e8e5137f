package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/veloshop/shop-edge-client/internal/testutil"
)

func TestCreateOrder(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/orders", testutil.Envelope{Success: true, Data: map[string]any{"order_id": "o-1"}})

	c, clock := newTestClient(t, worker)

	data, err := c.CreateOrder(context.Background(), OrderInput{
		CustomerID: "c-1",
		Items:      []any{map[string]any{"product_id": "2", "qty": 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	var created map[string]any
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created["order_id"] != "o-1" {
		t.Errorf("order_id = %v", created["order_id"])
	}

	var body map[string]any
	if err := json.Unmarshal(worker.LastBody(), &body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}

	// Missing created_at is stamped from the client clock.
	if body["created_at"] != clock.Now().Format("2006-01-02T15:04:05Z07:00") {
		t.Errorf("created_at = %v, want clock time", body["created_at"])
	}
	// Optional fields are normalized to empty strings, not omitted.
	if _, ok := body["note"]; !ok {
		t.Error("note must be present with an empty-string default")
	}
	if _, ok := body["shipping_info"]; !ok {
		t.Error("shipping_info must be present with an empty-string default")
	}
}

func TestCreateOrder_ExplicitCreatedAtKept(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/orders", testutil.Envelope{Success: true})

	c, _ := newTestClient(t, worker)

	_, err := c.CreateOrder(context.Background(), OrderInput{
		CustomerID: "c-1",
		CreatedAt:  "2025-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	var body map[string]any
	json.Unmarshal(worker.LastBody(), &body)
	if body["created_at"] != "2025-01-01T00:00:00Z" {
		t.Errorf("created_at = %v, want caller value preserved", body["created_at"])
	}
}

func TestCreateOrder_DomainErrorSurfaces(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/orders", testutil.Envelope{Success: false, Error: "out of stock"})

	c, _ := newTestClient(t, worker)

	_, err := c.CreateOrder(context.Background(), OrderInput{CustomerID: "c-1"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "out of stock" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}

	// Writes are never retried and have no fallback.
	if worker.RequestCount() != 1 {
		t.Errorf("expected exactly 1 request, got %d", worker.RequestCount())
	}
}

func TestCreateCustomer(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/customers", testutil.Envelope{Success: true})

	c, _ := newTestClient(t, worker)

	_, err := c.CreateCustomer(context.Background(), CustomerInput{Name: "Ada"})
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	var body map[string]any
	json.Unmarshal(worker.LastBody(), &body)
	if body["name"] != "Ada" {
		t.Errorf("name = %v", body["name"])
	}
	if _, ok := body["phone"]; !ok {
		t.Error("phone must be present with an empty-string default")
	}
	if _, ok := body["email"]; !ok {
		t.Error("email must be present with an empty-string default")
	}
}

func TestCreateLead(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/leads", testutil.Envelope{Success: true})

	c, _ := newTestClient(t, worker)

	_, err := c.CreateLead(context.Background(), LeadInput{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if worker.PathCount("/leads") != 1 {
		t.Errorf("leads path count = %d", worker.PathCount("/leads"))
	}
}

func TestCreateOrder_NeverCached(t *testing.T) {
	worker := testutil.NewMockWorker()
	defer worker.Close()
	worker.SetEnvelope("/orders", testutil.Envelope{Success: true})

	c, _ := newTestClient(t, worker)
	ctx := context.Background()

	c.CreateOrder(ctx, OrderInput{CustomerID: "c-1"})
	c.CreateOrder(ctx, OrderInput{CustomerID: "c-1"})

	if worker.RequestCount() != 2 {
		t.Errorf("every write must reach the gateway, got %d requests", worker.RequestCount())
	}
}
