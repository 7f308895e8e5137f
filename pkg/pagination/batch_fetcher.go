package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// Config holds batch fetcher configuration.
type Config struct {
	// PageSize is the limit sent per page request.
	PageSize int

	// MaxConcurrency is the number of pages fetched per wave.
	MaxConcurrency int

	// MaxPages caps the walk as a runaway guard.
	MaxPages int

	// Timeout bounds each page fetch.
	Timeout time.Duration
}

// DefaultConfig returns safe defaults for the edge API.
func DefaultConfig() Config {
	return Config{
		PageSize:       100,
		MaxConcurrency: 4,
		MaxPages:       100,
		Timeout:        15 * time.Second,
	}
}

// PageFetcher fetches a single catalog page.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, limit int) ([]catalog.Product, error)
}

// pageResult carries one fetched page back from a worker.
type pageResult struct {
	page     int
	products []catalog.Product
	err      error
}

// BatchFetcher walks all catalog pages using wave-based parallelism.
type BatchFetcher struct {
	fetcher PageFetcher
	config  Config
}

// NewBatchFetcher creates a batch fetcher.
func NewBatchFetcher(fetcher PageFetcher, config Config) *BatchFetcher {
	defaults := DefaultConfig()
	if config.PageSize <= 0 {
		config.PageSize = defaults.PageSize
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaults.MaxConcurrency
	}
	if config.MaxPages <= 0 {
		config.MaxPages = defaults.MaxPages
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &BatchFetcher{fetcher: fetcher, config: config}
}

// FetchAll fetches every catalog page and returns the products in page
// order. The walk ends when a page returns fewer products than the
// page size. A page failure aborts with the products collected so far
// and the first error encountered.
func (bf *BatchFetcher) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	start := time.Now()

	var all []catalog.Product
	page := 1

	for page <= bf.config.MaxPages {
		waveSize := bf.config.MaxConcurrency
		if remaining := bf.config.MaxPages - page + 1; remaining < waveSize {
			waveSize = remaining
		}

		results := make([]pageResult, waveSize)
		var wg sync.WaitGroup
		for i := 0; i < waveSize; i++ {
			wg.Add(1)
			go func(slot, pageNum int) {
				defer wg.Done()
				pageCtx, cancel := context.WithTimeout(ctx, bf.config.Timeout)
				defer cancel()

				products, err := bf.fetcher.FetchPage(pageCtx, pageNum, bf.config.PageSize)
				results[slot] = pageResult{page: pageNum, products: products, err: err}
			}(i, page+i)
		}
		wg.Wait()

		for _, result := range results {
			if result.err != nil {
				log.Warn().
					Err(result.err).
					Int("page", result.page).
					Msg("Page fetch failed; aborting catalog walk")
				return all, fmt.Errorf("fetch page %d (partial data: %d products): %w",
					result.page, len(all), result.err)
			}

			all = append(all, result.products...)

			if len(result.products) < bf.config.PageSize {
				// Short page: end of catalog. Later pages in this wave
				// were speculative and came back empty.
				log.Debug().
					Int("pages", result.page).
					Int("products", len(all)).
					Dur("duration", time.Since(start)).
					Msg("Catalog walk complete")
				return all, nil
			}
		}

		page += waveSize

		select {
		case <-ctx.Done():
			return all, fmt.Errorf("catalog walk cancelled: %w", ctx.Err())
		default:
		}
	}

	log.Warn().
		Int("max_pages", bf.config.MaxPages).
		Int("products", len(all)).
		Msg("Catalog walk hit page cap")
	return all, nil
}
