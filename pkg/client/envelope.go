package client

import (
	"encoding/json"
	"fmt"

	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// envelope is the wire shape every edge endpoint responds with.
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
	Fallback bool            `json:"fallback,omitempty"`
}

// decodeEnvelope parses the wire envelope at the boundary into a typed
// result: the data payload on success, or an *APIError carrying the
// server message and whether the server permitted fallback resolution.
// Invalid JSON is a transport-class failure.
func decodeEnvelope(op string, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{
			Op:      op,
			Message: "invalid response envelope",
			Err:     fmt.Errorf("unmarshal envelope: %w", err),
		}
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request failed"
		}
		return nil, &APIError{Op: op, Message: msg, Fallback: env.Fallback}
	}

	return env.Data, nil
}

// itemsWrapper is the alternate list payload shape: {items: [...]}.
type itemsWrapper struct {
	Items json.RawMessage `json:"items"`
}

// decodeProducts accepts both payload shapes a list endpoint may
// return: a flat array, or an object wrapping the array under "items".
func decodeProducts(op string, data json.RawMessage) ([]catalog.Product, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err == nil {
		return products, nil
	}

	var wrapper itemsWrapper
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Items != nil {
		if err := json.Unmarshal(wrapper.Items, &products); err == nil {
			return products, nil
		}
	}

	return nil, &APIError{
		Op:      op,
		Message: "unexpected product payload shape",
		Err:     fmt.Errorf("decode products: neither array nor items object"),
	}
}

// decodeCategories accepts a flat string array or {items: [...]}.
func decodeCategories(op string, data json.RawMessage) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err == nil {
		return categories, nil
	}

	var wrapper itemsWrapper
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Items != nil {
		if err := json.Unmarshal(wrapper.Items, &categories); err == nil {
			return categories, nil
		}
	}

	return nil, &APIError{
		Op:      op,
		Message: "unexpected category payload shape",
		Err:     fmt.Errorf("decode categories: neither array nor items object"),
	}
}

// decodeProduct decodes a single product payload.
func decodeProduct(op string, data json.RawMessage) (catalog.Product, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, &APIError{
			Op:      op,
			Message: "unexpected product payload shape",
			Err:     fmt.Errorf("decode product: %w", err),
		}
	}
	return product, nil
}
