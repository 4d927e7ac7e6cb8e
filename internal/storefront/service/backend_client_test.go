package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	order "github.com/ridloal/saas-storefront/internal/order/domain"
)

func TestHTTPBackend_ListProducts(t *testing.T) {
	t.Run("Decodes the product list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id":1,"name":"A","price":1000,"features":["x"]},{"id":2,"name":"B","price":2000}]`)
		}))
		defer srv.Close()

		products, err := NewHTTPBackend(srv.URL+"/", time.Second).ListProducts(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, []string{"x"}, products[0].Features)
		assert.True(t, decimal.NewFromInt(2000).Equal(products[1].Price))
	})

	t.Run("Non-2xx is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewHTTPBackend(srv.URL, time.Second).ListProducts(context.Background())
		assert.ErrorContains(t, err, "status: 500")
	})

	t.Run("Malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not":"a list"}`)
		}))
		defer srv.Close()

		_, err := NewHTTPBackend(srv.URL, time.Second).ListProducts(context.Background())
		assert.ErrorContains(t, err, "failed to decode product list")
	})

	t.Run("Unreachable backend", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPBackend(url, time.Second).ListProducts(context.Background())
		assert.ErrorContains(t, err, "failed to call product API")
	})
}

func TestHTTPBackend_CreateOrder(t *testing.T) {
	req := order.CreateOrderRequest{
		Email: "taro@example.com",
		Name:  "Taro",
		Items: []order.LineItem{
			{Product: catalog.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(1000)}, Quantity: 2},
		},
		TotalAmount: decimal.NewFromInt(2000),
	}

	t.Run("Posts the order and returns a string id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "key-1", r.Header.Get(order.IdempotencyHeader))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "taro@example.com", body["email"])
			assert.Equal(t, float64(2000), body["totalAmount"])
			items, _ := body["items"].([]any)
			if assert.Len(t, items, 1) {
				item, _ := items[0].(map[string]any)
				assert.Equal(t, float64(1), item["id"])
				assert.Equal(t, float64(2), item["quantity"])
				assert.Equal(t, float64(1000), item["price"])
			}

			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"orderId":"001","status":"completed"}`)
		}))
		defer srv.Close()

		id, err := NewHTTPBackend(srv.URL, time.Second).CreateOrder(context.Background(), req, "key-1")

		require.NoError(t, err)
		assert.Equal(t, "001", id)
	})

	t.Run("Numeric ids stay opaque", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get(order.IdempotencyHeader))
			io.WriteString(w, `{"orderId":42}`)
		}))
		defer srv.Close()

		id, err := NewHTTPBackend(srv.URL, time.Second).CreateOrder(context.Background(), req, "")

		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("Non-2xx is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"Invalid request payload"}`)
		}))
		defer srv.Close()

		_, err := NewHTTPBackend(srv.URL, time.Second).CreateOrder(context.Background(), req, "")
		assert.ErrorContains(t, err, "status: 400")
	})

	t.Run("Missing order id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{}`)
		}))
		defer srv.Close()

		_, err := NewHTTPBackend(srv.URL, time.Second).CreateOrder(context.Background(), req, "")
		assert.Error(t, err)
	})
}
