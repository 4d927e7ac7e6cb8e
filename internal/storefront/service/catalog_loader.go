package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

var ErrCatalogLoadFailed = errors.New("catalog load failed")

// CatalogLoader fetches the product list exactly once. There is no retry and
// no refresh; a failed load leaves the list empty for the session.
type CatalogLoader struct {
	backend Backend

	mu       sync.RWMutex
	started  bool
	loading  bool
	products []catalog.Product
}

func NewCatalogLoader(backend Backend) *CatalogLoader {
	return &CatalogLoader{backend: backend, products: []catalog.Product{}}
}

// begin flips the loader into the loading state. It reports false if a fetch was already issued.
func (l *CatalogLoader) begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return false
	}
	l.started = true
	l.loading = true
	return true
}

func (l *CatalogLoader) fetch(ctx context.Context) error {
	products, err := l.backend.ListProducts(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		logger.Error("Failed to fetch products", err)
		return fmt.Errorf("%w: %v", ErrCatalogLoadFailed, err)
	}
	l.products = products
	logger.Info(fmt.Sprintf("Catalog loaded with %d products", len(products)))
	return nil
}

// Load performs the one catalog fetch and blocks until it finishes. Later calls return nil immediately.
func (l *CatalogLoader) Load(ctx context.Context) error {
	if !l.begin() {
		return nil
	}
	return l.fetch(ctx)
}

// LoadAsync starts the fetch in the background. Loading reports true as soon
// as LoadAsync returns. The channel yields the fetch result and is closed.
func (l *CatalogLoader) LoadAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	if !l.begin() {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := l.fetch(ctx); err != nil {
			done <- err
		}
	}()
	return done
}

func (l *CatalogLoader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Products returns the loaded list in backend order.
func (l *CatalogLoader) Products() []catalog.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]catalog.Product, len(l.products))
	copy(out, l.products)
	return out
}

func (l *CatalogLoader) Find(id int64) (catalog.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}
