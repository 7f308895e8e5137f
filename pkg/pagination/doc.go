// Package pagination walks paginated catalog listings in parallel.
//
// The edge API does not announce a total page count, so pages are
// fetched in waves of configurable concurrency; a page shorter than
// the page size signals the end of the catalog. Failed pages abort the
// walk with the pages collected so far.
//
// The client's FetchPage method satisfies PageFetcher, so a full
// catalog sync is:
//
//	fetcher := pagination.NewBatchFetcher(shopClient, pagination.DefaultConfig())
//	products, err := fetcher.FetchAll(ctx)
package pagination
