package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/veloshop/shop-edge-client/pkg/cache"
	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// Query defaults for product list reads.
const (
	defaultPage  = 1
	defaultLimit = 100
)

// ProductQuery selects a page of the catalog plus client-side filters.
// The zero value means page 1, limit 100, in-stock products only.
type ProductQuery struct {
	Page  int
	Limit int

	// Category and Search are applied client-side after the fetch.
	Category string
	Search   string

	// IncludeOutOfStock disables the default stock filter.
	IncludeOutOfStock bool
}

// normalized returns the query with defaults substituted, so cache keys
// for logically identical queries always agree.
func (q ProductQuery) normalized() ProductQuery {
	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	return q
}

// Products fetches a page of the catalog and applies the stock,
// category, and search filters client-side. Results are served from
// the in-process cache when fresh. If the primary endpoint fails the
// request is redirected to the secondary gateway, which is disabled by
// policy and fails fast.
func (c *Client) Products(ctx context.Context, query ProductQuery) ([]catalog.Product, error) {
	query = query.normalized()

	products, err := c.fetchList(ctx, query.Page, query.Limit, query.Category, query.Search)
	if err != nil {
		return nil, c.secondaryUnavailable("products", err)
	}

	return catalog.Filter(products, catalog.FilterOptions{
		InStockOnly: !query.IncludeOutOfStock,
		Category:    query.Category,
		Search:      query.Search,
	}), nil
}

// fetchList returns the unfiltered product page, memory-cached under
// the full query key. Only page and limit travel to the server; the
// remaining parameters exist to partition the cache.
func (c *Client) fetchList(ctx context.Context, page, limit int, category, search string) ([]catalog.Product, error) {
	key := cache.ListKey(page, limit, category, search)
	if cached, ok := c.memory.Get(key); ok {
		if products, ok := cached.([]catalog.Product); ok {
			return products, nil
		}
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.getJSON(ctx, "/products-public", params)
	if err != nil {
		return nil, err
	}

	products, err := decodeProducts("products", data)
	if err != nil {
		return nil, err
	}

	c.memory.Set(key, products)
	c.logger.Debug().
		Str("cache_key", key).
		Int("count", len(products)).
		Msg("Cached product list")

	return products, nil
}

// FetchPage returns one unfiltered catalog page, memory-cached. It
// satisfies pagination.PageFetcher for full-catalog walks.
func (c *Client) FetchPage(ctx context.Context, page, limit int) ([]catalog.Product, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return c.fetchList(ctx, page, limit, "", "")
}

// ProductByID resolves a single product: memory tier, then durable
// snapshot (promoted into memory on a hit), then the primary endpoint.
// When the primary signals fallback or fails outright, the full
// catalog is scanned for an id-or-slug match. A missing product is
// (nil, nil), not an error.
func (c *Client) ProductByID(ctx context.Context, id string) (catalog.Product, error) {
	if id == "" {
		return nil, nil
	}
	key := cache.ProductKey(id)

	if cached, ok := c.memory.Get(key); ok {
		if product, ok := cached.(catalog.Product); ok {
			return product, nil
		}
	}

	if product, err := c.durable.Lookup(ctx, id); err == nil {
		c.memory.Set(key, product)
		cache.Promotions.Inc()
		c.logger.Debug().
			Str("cache_key", key).
			Str("cache_layer", "durable").
			Msg("Promoted durable snapshot hit")
		return product, nil
	}

	data, err := c.getJSON(ctx, "/products/"+url.PathEscape(id), nil)
	if err == nil {
		product, decErr := decodeProduct("product", data)
		if decErr == nil && product != nil {
			c.memory.Set(key, product)
			return product, nil
		}
		if decErr == nil {
			return nil, nil
		}
		err = decErr
	}

	if !fallbackAllowed(err) && classify(err) == errClassDomain {
		// A plain domain refusal without the fallback flag surfaces.
		return nil, err
	}

	product, scanErr := c.scanForProduct(ctx, id)
	if scanErr != nil {
		c.recordFallback("product", fallbackOutcomeError, scanErr)
		return nil, scanErr
	}
	if product == nil {
		c.recordFallback("product", fallbackOutcomeMiss, err)
		return nil, nil
	}

	c.recordFallback("product", fallbackOutcomeHit, err)
	c.memory.Set(key, product)
	return product, nil
}

// scanForProduct fetches the full catalog page and matches by exact id
// first, then derived slug.
func (c *Client) scanForProduct(ctx context.Context, id string) (catalog.Product, error) {
	products, err := c.fetchList(ctx, defaultPage, fullListLimit, "", "")
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID() == id {
			return p, nil
		}
	}
	for _, p := range products {
		if p.MatchesIdentifier(id) {
			return p, nil
		}
	}
	return nil, nil
}

// StockCheck returns the stock count for an identifier by scanning the
// full catalog. It fails soft: any failure, including an unknown
// identifier, yields 0.
func (c *Client) StockCheck(ctx context.Context, id string) int {
	if id == "" {
		return 0
	}

	product, err := c.scanForProduct(ctx, id)
	if err != nil {
		c.logger.Warn().Err(err).Str("operation", "stock_check").
			Msg("Stock check failed; reporting zero")
		return 0
	}
	if product == nil {
		return 0
	}
	return product.Stock()
}
