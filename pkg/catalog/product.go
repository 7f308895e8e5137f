// Package catalog provides the product data model and the client-side
// filter/transform pipeline applied to fetched result sets.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product is an opaque record as returned by the edge API. No field is
// guaranteed present; all accessors tolerate absence and mixed types.
type Product map[string]any

// ID returns the explicit identifier as a string, or "" when absent.
// Numeric identifiers are rendered without a decimal point.
func (p Product) ID() string {
	return stringField(p["id"])
}

// Title returns the display title, preferring "title" over "name".
func (p Product) Title() string {
	if s := stringField(p["title"]); s != "" {
		return s
	}
	return stringField(p["name"])
}

// Description returns the free-text description, or "".
func (p Product) Description() string {
	return stringField(p["description"])
}

// Category returns the normalized category string. It accepts
// "category", "category_name", or the first entry of "categories".
func (p Product) Category() string {
	if s := stringField(p["category"]); s != "" {
		return s
	}
	if s := stringField(p["category_name"]); s != "" {
		return s
	}
	if list, ok := p["categories"].([]any); ok && len(list) > 0 {
		return stringField(list[0])
	}
	return ""
}

// Stock returns amount_in_stock as an integer, or 0 when absent or
// not numeric.
func (p Product) Stock() int {
	switch v := p["amount_in_stock"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// stringField renders a JSON value as a string for comparison purposes.
func stringField(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// JSON numbers decode as float64; identifiers are integral.
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}
