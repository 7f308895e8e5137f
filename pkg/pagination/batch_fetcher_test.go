package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/veloshop/shop-edge-client/pkg/catalog"
)

// fakeFetcher serves a fixed catalog split into pages.
type fakeFetcher struct {
	mu       sync.Mutex
	catalog  []catalog.Product
	calls    int
	failPage int
}

func newFakeFetcher(total int) *fakeFetcher {
	products := make([]catalog.Product, total)
	for i := range products {
		products[i] = catalog.Product{"id": fmt.Sprintf("%d", i+1)}
	}
	return &fakeFetcher{catalog: products}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page, limit int) ([]catalog.Product, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failPage > 0 && page == f.failPage {
		return nil, errors.New("page exploded")
	}

	start := (page - 1) * limit
	if start >= len(f.catalog) {
		return nil, nil
	}
	end := start + limit
	if end > len(f.catalog) {
		end = len(f.catalog)
	}
	return f.catalog[start:end], nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestFetchAll_SinglePage(t *testing.T) {
	fetcher := newFakeFetcher(7)
	bf := NewBatchFetcher(fetcher, Config{PageSize: 10, MaxConcurrency: 3})

	products, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(products) != 7 {
		t.Errorf("got %d products, want 7", len(products))
	}
}

func TestFetchAll_MultiplePagesInOrder(t *testing.T) {
	fetcher := newFakeFetcher(25)
	bf := NewBatchFetcher(fetcher, Config{PageSize: 10, MaxConcurrency: 2})

	products, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(products) != 25 {
		t.Fatalf("got %d products, want 25", len(products))
	}
	for i, p := range products {
		if want := fmt.Sprintf("%d", i+1); p.ID() != want {
			t.Fatalf("product %d out of order: id = %q, want %q", i, p.ID(), want)
		}
	}
}

func TestFetchAll_ExactPageBoundary(t *testing.T) {
	// 20 products with page size 10: page 3 comes back empty.
	fetcher := newFakeFetcher(20)
	bf := NewBatchFetcher(fetcher, Config{PageSize: 10, MaxConcurrency: 2})

	products, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(products) != 20 {
		t.Errorf("got %d products, want 20", len(products))
	}
}

func TestFetchAll_PageFailureAborts(t *testing.T) {
	fetcher := newFakeFetcher(50)
	fetcher.failPage = 2
	bf := NewBatchFetcher(fetcher, Config{PageSize: 10, MaxConcurrency: 1})

	_, err := bf.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error for failed page")
	}
}

func TestFetchAll_PageCap(t *testing.T) {
	fetcher := newFakeFetcher(1000)
	bf := NewBatchFetcher(fetcher, Config{PageSize: 10, MaxConcurrency: 2, MaxPages: 5})

	products, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(products) != 50 {
		t.Errorf("got %d products, want 50 (5 pages of 10)", len(products))
	}
}

func TestNewBatchFetcher_Defaults(t *testing.T) {
	bf := NewBatchFetcher(newFakeFetcher(0), Config{})
	if bf.config.PageSize != DefaultConfig().PageSize {
		t.Errorf("PageSize default not applied: %d", bf.config.PageSize)
	}
	if bf.config.MaxConcurrency != DefaultConfig().MaxConcurrency {
		t.Errorf("MaxConcurrency default not applied: %d", bf.config.MaxConcurrency)
	}
}
