package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	order "github.com/ridloal/saas-storefront/internal/order/domain"
	"github.com/ridloal/saas-storefront/internal/storefront/domain"
	"github.com/ridloal/saas-storefront/internal/storefront/service/mocks"
)

type recorder struct {
	messages []string
}

func (r *recorder) Notify(msg string) { r.messages = append(r.messages, msg) }

func newTestStore(t *testing.T, opts StoreOptions) (*Store, *mocks.MockBackend, *recorder) {
	t.Helper()
	backend := new(mocks.MockBackend)
	backend.On("ListProducts", mock.Anything).Return(testCatalog, nil).Once()
	loader := NewCatalogLoader(backend)
	require.NoError(t, loader.Load(context.Background()))

	notes := &recorder{}
	store := NewStore(loader, backend, notes, opts)
	keys := 0
	store.newKey = func() string {
		keys++
		return "key-" + string(rune('0'+keys))
	}
	return store, backend, notes
}

func goToCheckout(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.Navigate(domain.PageCart))
	require.NoError(t, s.Navigate(domain.PageCheckout))
}

func TestStore_AddToCartScenario(t *testing.T) {
	store, _, notes := newTestStore(t, StoreOptions{})

	require.NoError(t, store.AddToCart(1))
	require.NoError(t, store.AddToCart(1))
	require.NoError(t, store.AddToCart(2))

	lines := store.Cart().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.True(t, decimal.NewFromInt(4000).Equal(store.Total()))
	assert.Equal(t, []string{
		"A をカートに追加しました！",
		"A をカートに追加しました！",
		"B をカートに追加しました！",
	}, notes.messages)
}

func TestStore_UnknownProduct(t *testing.T) {
	store, _, notes := newTestStore(t, StoreOptions{})

	assert.ErrorIs(t, store.AddToCart(99), ErrUnknownProduct)
	assert.ErrorIs(t, store.SelectProduct(99), ErrUnknownProduct)
	assert.Empty(t, notes.messages)
	assert.Equal(t, domain.PageHome, store.Page())
}

func TestStore_SelectAndAddFromDetail(t *testing.T) {
	store, _, _ := newTestStore(t, StoreOptions{})

	require.NoError(t, store.SelectProduct(2))
	assert.Equal(t, domain.PageDetail, store.Page())
	p, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, "B", p.Name)

	require.NoError(t, store.AddToCartAndReturn(2))
	assert.Equal(t, domain.PageHome, store.Page())
	assert.Equal(t, 1, store.Cart().Len())
}

func TestStore_RemoveFromCartIsIdempotent(t *testing.T) {
	store, _, _ := newTestStore(t, StoreOptions{})
	require.NoError(t, store.AddToCart(1))
	require.NoError(t, store.AddToCart(2))

	require.NoError(t, store.RemoveFromCart(1))
	after := store.State()
	require.NoError(t, store.RemoveFromCart(1))

	assert.Equal(t, after, store.State())
	assert.True(t, decimal.NewFromInt(2000).Equal(store.Total()))
}

func TestStore_Back(t *testing.T) {
	store, _, _ := newTestStore(t, StoreOptions{})
	require.NoError(t, store.AddToCart(1))
	goToCheckout(t, store)

	require.NoError(t, store.Back())
	assert.Equal(t, domain.PageCart, store.Page())
	require.NoError(t, store.Back())
	assert.Equal(t, domain.PageHome, store.Page())
}

func TestStore_SubmitOrder(t *testing.T) {
	ctx := context.TODO()

	t.Run("Success clears the cart and returns home", func(t *testing.T) {
		store, backend, notes := newTestStore(t, StoreOptions{IdempotencyKeys: true})
		require.NoError(t, store.AddToCart(1))
		require.NoError(t, store.AddToCart(1))
		require.NoError(t, store.AddToCart(2))
		goToCheckout(t, store)

		backend.On("CreateOrder", ctx, mock.MatchedBy(func(req order.CreateOrderRequest) bool {
			return req.Email == "taro@example.com" && req.Name == "Taro" &&
				len(req.Items) == 2 && req.Items[0].Quantity == 2 &&
				req.TotalAmount.Equal(decimal.NewFromInt(4000))
		}), "key-1").Return("001", nil).Once()

		id, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")

		require.NoError(t, err)
		assert.Equal(t, "001", id)
		assert.True(t, store.Cart().IsEmpty())
		assert.Equal(t, domain.PageHome, store.Page())
		assert.Equal(t, "注文が完了しました！\n注文番号: 001", notes.messages[len(notes.messages)-1])
		backend.AssertExpectations(t)
	})

	t.Run("Failure leaves state unchanged", func(t *testing.T) {
		store, backend, notes := newTestStore(t, StoreOptions{})
		require.NoError(t, store.AddToCart(1))
		goToCheckout(t, store)
		before := store.State()

		backend.On("CreateOrder", ctx, mock.Anything, "").Return("", errors.New("status: 500")).Once()

		_, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")

		assert.ErrorIs(t, err, ErrOrderSubmissionFailed)
		assert.Equal(t, before, store.State())
		assert.Equal(t, "注文処理に失敗しました", notes.messages[len(notes.messages)-1])
		backend.AssertExpectations(t)
	})

	t.Run("Resubmission reuses the idempotency key", func(t *testing.T) {
		store, backend, _ := newTestStore(t, StoreOptions{IdempotencyKeys: true})
		require.NoError(t, store.AddToCart(1))
		goToCheckout(t, store)

		backend.On("CreateOrder", ctx, mock.Anything, "key-1").Return("", errors.New("timeout")).Once()
		backend.On("CreateOrder", ctx, mock.Anything, "key-1").Return("001", nil).Once()

		_, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")
		require.Error(t, err)
		id, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")
		require.NoError(t, err)
		assert.Equal(t, "001", id)
		backend.AssertExpectations(t)
	})

	t.Run("Changed cart gets a new key", func(t *testing.T) {
		store, backend, _ := newTestStore(t, StoreOptions{IdempotencyKeys: true})
		require.NoError(t, store.AddToCart(1))
		goToCheckout(t, store)

		backend.On("CreateOrder", ctx, mock.Anything, "key-1").Return("", errors.New("timeout")).Once()
		_, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")
		require.Error(t, err)

		require.NoError(t, store.Back())
		require.NoError(t, store.RemoveFromCart(1))
		require.NoError(t, store.Navigate(domain.PageHome))
		require.NoError(t, store.AddToCart(2))
		goToCheckout(t, store)

		backend.On("CreateOrder", ctx, mock.Anything, "key-2").Return("002", nil).Once()
		id, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")
		require.NoError(t, err)
		assert.Equal(t, "002", id)
		backend.AssertExpectations(t)
	})

	t.Run("Submit outside checkout is rejected without I/O", func(t *testing.T) {
		store, backend, _ := newTestStore(t, StoreOptions{})
		require.NoError(t, store.AddToCart(1))

		_, err := store.SubmitOrder(ctx, "taro@example.com", "Taro")

		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
		backend.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStore_MaxQuantity(t *testing.T) {
	store, _, notes := newTestStore(t, StoreOptions{Rules: domain.Rules{MaxQuantity: 1}})

	require.NoError(t, store.AddToCart(1))
	err := store.AddToCart(1)

	assert.ErrorIs(t, err, domain.ErrQuantityLimit)
	assert.Len(t, notes.messages, 1)
}
