package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	order "github.com/ridloal/saas-storefront/internal/order/domain"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) CreateOrder(ctx context.Context, req order.CreateOrderRequest, idempotencyKey string) (string, error) {
	args := m.Called(ctx, req, idempotencyKey)
	return args.String(0), args.Error(1)
}
