package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veloshop/shop-edge-client/pkg/cache"
	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// Settings is the shop settings object, passed through opaquely.
type Settings map[string]any

// Settings fetches the shop settings object, memory-cached. The
// settings fallback is disabled by policy: primary exhaustion fails
// fast with a fixed service-unavailable error.
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	if cached, ok := c.memory.Get(cache.SettingsKey); ok {
		if settings, ok := cached.(Settings); ok {
			return settings, nil
		}
	}

	data, err := c.getJSON(ctx, "/settings", nil)
	if err != nil {
		return nil, c.secondaryUnavailable("settings", err)
	}

	var settings Settings
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, c.secondaryUnavailable("settings", &APIError{
				Op:      "settings",
				Message: "unexpected settings payload shape",
				Err:     fmt.Errorf("decode settings: %w", err),
			})
		}
	}

	c.memory.Set(cache.SettingsKey, settings)
	return settings, nil
}

// Categories fetches the category list, memory-cached. When the
// primary signals fallback=true or fails, categories are derived from
// a full catalog fetch instead. The derivation path fails soft: if it
// cannot produce data either, the result is an empty list, not an
// error.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	if cached, ok := c.memory.Get(cache.CategoriesKey); ok {
		if categories, ok := cached.([]string); ok {
			return categories, nil
		}
	}

	data, err := c.getJSON(ctx, "/categories", nil)
	if err == nil {
		categories, decErr := decodeCategories("categories", data)
		if decErr == nil {
			c.memory.Set(cache.CategoriesKey, categories)
			return categories, nil
		}
		err = decErr
	}

	// Derive from the catalog itself. Fails soft to an empty list.
	products, scanErr := c.fetchList(ctx, defaultPage, fullListLimit, "", "")
	if scanErr != nil {
		c.recordFallback("categories", fallbackOutcomeError, scanErr)
		c.logger.Warn().Err(scanErr).Str("operation", "categories").
			Msg("Category derivation failed; reporting empty list")
		return []string{}, nil
	}

	categories := catalog.Categories(products)
	c.recordFallback("categories", fallbackOutcomeHit, err)
	c.memory.Set(cache.CategoriesKey, categories)
	return categories, nil
}
