package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ridloal/saas-storefront/internal/catalog/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

// fileProductRepository reads the catalog file on every call so edits show up without a restart.
type fileProductRepository struct {
	path string
}

// NewFileProductRepository serves products from a .json, .yaml or .yml file.
func NewFileProductRepository(path string) ProductRepository {
	return &fileProductRepository{path: path}
}

func (r *fileProductRepository) load() ([]domain.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		logger.Error("FileProductRepository: read failed for "+r.path, err)
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	products := []domain.Product{}
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &products)
	default:
		err = json.Unmarshal(data, &products)
	}
	if err != nil {
		logger.Error("FileProductRepository: decode failed for "+r.path, err)
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", r.path, err)
	}
	return products, nil
}

func (r *fileProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.load()
}

func (r *fileProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
