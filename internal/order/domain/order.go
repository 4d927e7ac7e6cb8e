package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
)

type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
)

// IdempotencyHeader carries the client-generated key of a checkout attempt.
const IdempotencyHeader = "Idempotency-Key"

// LineItem is a product snapshot plus the ordered quantity, flattened on the wire.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// Subtotal is price × quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type CreateOrderRequest struct {
	Email       string          `json:"email" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Items       []LineItem      `json:"items" binding:"required,dive"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type Order struct {
	OrderID     string          `json:"orderId"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
}

// CreateOrderResponse is what POST /api/orders answers; clients only rely on OrderID.
type CreateOrderResponse struct {
	Order
}
