package cache

import (
	"fmt"
	"strings"
)

// Well-known cache keys for single-object operations.
const (
	// SettingsKey caches the shop settings object.
	SettingsKey = "settings"

	// CategoriesKey caches the category list.
	CategoriesKey = "categories"

	// SnapshotKey is the durable-store key of the product snapshot blob.
	SnapshotKey = "shop_products_cache"
)

// ListKey derives the cache key for a product list query. All
// parameters must already have their defaults substituted so that
// logically identical queries always produce identical keys.
//
// Format: products_public_<page>_<limit>_<category>_<search>
func ListKey(page, limit int, category, search string) string {
	return fmt.Sprintf("products_public_%d_%d_%s_%s",
		page, limit, normalizeParam(category), normalizeParam(search))
}

// ProductKey derives the cache key for a single-entity lookup.
func ProductKey(id string) string {
	return "product_" + normalizeParam(id)
}

// normalizeParam lowercases and trims a query parameter so that
// equivalent spellings share a key, then percent-escapes the key
// separator. Escaping the escape character first keeps the encoding
// injective: distinct parameters can never produce the same key.
func normalizeParam(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "%", "%25")
	return strings.ReplaceAll(s, "_", "%5f")
}
