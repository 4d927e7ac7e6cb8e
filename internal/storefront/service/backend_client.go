package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	order "github.com/ridloal/saas-storefront/internal/order/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

// Backend is the storefront's view of the product and order APIs.
type Backend interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	CreateOrder(ctx context.Context, req order.CreateOrderRequest, idempotencyKey string) (string, error)
}

type httpBackend struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPBackend talks to GET /api/products and POST /api/orders under baseURL.
// A zero timeout means requests wait until the context is done.
func NewHTTPBackend(baseURL string, timeout time.Duration) Backend {
	return &httpBackend{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *httpBackend) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	reqURL := c.BaseURL + "/api/products"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create product list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call product API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("product API returned status: %d", resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// orderReceipt keeps orderId opaque: backends answer with strings or numbers.
type orderReceipt struct {
	OrderID json.RawMessage `json:"orderId"`
}

func (r orderReceipt) id() string {
	var s string
	if err := json.Unmarshal(r.OrderID, &s); err == nil {
		return s
	}
	return string(r.OrderID)
}

func (c *httpBackend) CreateOrder(ctx context.Context, orderReq order.CreateOrderRequest, idempotencyKey string) (string, error) {
	reqURL := c.BaseURL + "/api/orders"
	payload, err := json.Marshal(orderReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(order.IdempotencyHeader, idempotencyKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call order API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn(fmt.Sprintf("Order API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
		return "", fmt.Errorf("order API returned status: %d", resp.StatusCode)
	}

	var receipt orderReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return "", fmt.Errorf("failed to decode order response: %w", err)
	}
	if len(receipt.OrderID) == 0 || string(receipt.OrderID) == "null" {
		return "", fmt.Errorf("order response carried no orderId")
	}
	return receipt.id(), nil
}
