package catalog

import (
	"sort"
	"strings"
)

// FilterOptions selects the client-side narrowing applied to a fetched
// product list. Zero values disable the corresponding filter.
type FilterOptions struct {
	// InStockOnly keeps only products with numeric stock > 0.
	InStockOnly bool

	// Category keeps products whose normalized category matches
	// case-insensitively.
	Category string

	// Search keeps products whose title-or-name OR description contains
	// the term, case-insensitively.
	Search string
}

// Filter applies the stock, category, and search filters in that fixed
// order. Filters with zero-value inputs are skipped. The input slice is
// not modified.
func Filter(products []Product, opts FilterOptions) []Product {
	out := products

	if opts.InStockOnly {
		filtered := make([]Product, 0, len(out))
		for _, p := range out {
			if p.Stock() > 0 {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	if opts.Category != "" {
		want := strings.ToLower(strings.TrimSpace(opts.Category))
		filtered := make([]Product, 0, len(out))
		for _, p := range out {
			if strings.ToLower(p.Category()) == want {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	if opts.Search != "" {
		term := strings.ToLower(strings.TrimSpace(opts.Search))
		filtered := make([]Product, 0, len(out))
		for _, p := range out {
			title := strings.ToLower(p.Title())
			desc := strings.ToLower(p.Description())
			if strings.Contains(title, term) || strings.Contains(desc, term) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	return out
}

// Categories collects the distinct non-empty trimmed category strings
// across a product set, sorted ascending.
func Categories(products []Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		c := strings.TrimSpace(p.Category())
		if c == "" {
			continue
		}
		seen[c] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
