package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/ridloal/saas-storefront/internal/catalog/domain"
	"github.com/ridloal/saas-storefront/internal/catalog/repository"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Refresh(ctx context.Context) error
}

// SnapshotService keeps a snapshot of the repository listing. The snapshot is
// replaced wholesale on Refresh; it is never edited in place.
type SnapshotService struct {
	repo repository.ProductRepository

	mu       sync.RWMutex
	snapshot []domain.Product
	loaded   bool

	scheduler   *cron.Cron
	refreshSpec string
}

func NewProductService(repo repository.ProductRepository, refreshSpec string) *SnapshotService {
	return &SnapshotService{
		repo:        repo,
		refreshSpec: refreshSpec,
	}
}

// Start schedules periodic snapshot refreshes. An empty spec disables scheduling.
func (s *SnapshotService) Start() error {
	if s.refreshSpec == "" {
		return nil
	}
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.refreshSpec, func() {
		if err := s.Refresh(context.Background()); err != nil {
			logger.Warn("Scheduler: catalog refresh failed, keeping previous snapshot")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid catalog refresh spec %q: %w", s.refreshSpec, err)
	}
	s.scheduler.Start()
	logger.Info(fmt.Sprintf("Catalog refresh scheduler initialized with spec '%s'", s.refreshSpec))
	return nil
}

func (s *SnapshotService) Stop() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
}

func (s *SnapshotService) Refresh(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("Refresh: repository list failed", err)
		return err
	}
	s.mu.Lock()
	s.snapshot = products
	s.loaded = true
	s.mu.Unlock()
	logger.Info(fmt.Sprintf("Catalog snapshot refreshed with %d products", len(products)))
	return nil
}

func (s *SnapshotService) current() ([]domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.loaded
}

// ListProducts returns the snapshot verbatim, loading it on first use.
func (s *SnapshotService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, loaded := s.current()
	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		products, _ = s.current()
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

func (s *SnapshotService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	products, _ := s.current()
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return s.repo.GetProductByID(ctx, id)
}
