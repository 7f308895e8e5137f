package client

import (
	"context"
	"encoding/json"
	"time"
)

// OrderInput is the create-order payload. Items travel verbatim;
// optional string fields are normalized to empty strings; a missing
// CreatedAt is stamped from the client clock.
type OrderInput struct {
	CustomerID   string `json:"customer_id"`
	Items        []any  `json:"items"`
	CreatedAt    string `json:"created_at"`
	Note         string `json:"note"`
	ShippingInfo string `json:"shipping_info"`

	// Optional guest-checkout contact fields.
	CustomerName string `json:"customer_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

// CustomerInput is the create-customer payload.
type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// LeadInput is the create-lead payload.
type LeadInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateOrder submits an order to the primary endpoint. Writes are
// never cached, never retried, and have no fallback: a success=false
// envelope surfaces as a domain error carrying the server message.
func (c *Client) CreateOrder(ctx context.Context, order OrderInput) (json.RawMessage, error) {
	if order.CreatedAt == "" {
		order.CreatedAt = c.now().Format(time.RFC3339)
	}
	if order.Items == nil {
		order.Items = []any{}
	}

	return c.postJSON(ctx, "/orders", order)
}

// CreateCustomer submits a customer record. Same write semantics as
// CreateOrder.
func (c *Client) CreateCustomer(ctx context.Context, customer CustomerInput) (json.RawMessage, error) {
	return c.postJSON(ctx, "/customers", customer)
}

// CreateLead submits a lead record. Same write semantics as
// CreateOrder.
func (c *Client) CreateLead(ctx context.Context, lead LeadInput) (json.RawMessage, error) {
	return c.postJSON(ctx, "/leads", lead)
}
