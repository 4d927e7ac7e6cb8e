package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridloal/saas-storefront/internal/order/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

// orderNamespace scopes order ids derived from idempotency keys.
var orderNamespace = uuid.MustParse("6f1c2d9e-4b7a-4c61-9a3e-0d5b8f2e7c14")

type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest, idempotencyKey string) (*domain.CreateOrderResponse, error)
}

// orderServiceImpl accepts orders without storing them. Ids derived from an
// idempotency key are stable, so a resubmitted checkout gets the id it already has.
type orderServiceImpl struct {
	newID func() uuid.UUID
}

func NewOrderService() OrderService {
	return &orderServiceImpl{newID: uuid.New}
}

func (s *orderServiceImpl) orderID(idempotencyKey string) string {
	if idempotencyKey == "" {
		return s.newID().String()
	}
	return uuid.NewSHA1(orderNamespace, []byte(idempotencyKey)).String()
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, idempotencyKey string) (*domain.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	computed := req.Items[0].Subtotal()
	for _, item := range req.Items[1:] {
		computed = computed.Add(item.Subtotal())
	}
	if !computed.Equal(req.TotalAmount) {
		logger.L().Warn("CreateOrder: client total differs from line total, keeping client value",
			zap.Stringer("client_total", req.TotalAmount),
			zap.Stringer("line_total", computed),
			zap.String("email", req.Email))
	}

	order := domain.Order{
		OrderID:     s.orderID(idempotencyKey),
		Email:       req.Email,
		Name:        req.Name,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		Status:      domain.StatusCompleted,
	}
	logger.Info(fmt.Sprintf("Order %s accepted with %d lines, total %s", order.OrderID, len(order.Items), order.TotalAmount))
	return &domain.CreateOrderResponse{Order: order}, nil
}
