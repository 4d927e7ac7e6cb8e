package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	order "github.com/ridloal/saas-storefront/internal/order/domain"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
	"github.com/ridloal/saas-storefront/internal/storefront/domain"
)

var (
	ErrUnknownProduct        = errors.New("product is not in the catalog")
	ErrOrderSubmissionFailed = errors.New("order submission failed")
)

// Notifier shows blocking user-facing messages.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

type StoreOptions struct {
	Rules           domain.Rules
	IdempotencyKeys bool
}

// Store owns the cart and navigation state. All changes go through
// domain.Reduce. A Store is driven from a single goroutine, like a UI event loop.
type Store struct {
	state    domain.State
	opts     StoreOptions
	catalog  *CatalogLoader
	backend  Backend
	notifier Notifier
	newKey   func() string

	// attempt is the checkout attempt whose key is reused on resubmission.
	attempt *checkoutAttempt
}

type checkoutAttempt struct {
	key   string
	email string
	name  string
	cart  domain.Cart
}

func NewStore(loader *CatalogLoader, backend Backend, notifier Notifier, opts StoreOptions) *Store {
	return &Store{
		state:    domain.InitialState(),
		opts:     opts,
		catalog:  loader,
		backend:  backend,
		notifier: notifier,
		newKey:   func() string { return uuid.NewString() },
	}
}

func (s *Store) State() domain.State { return s.state }

func (s *Store) Page() domain.Page { return s.state.Page }

func (s *Store) Cart() domain.Cart { return s.state.Cart }

// Total is recomputed from the current cart on every call.
func (s *Store) Total() decimal.Decimal { return s.state.Cart.Total() }

// Selected resolves the Detail page product against the loaded catalog.
func (s *Store) Selected() (catalog.Product, bool) {
	return s.state.Selected(s.catalog.Products())
}

func (s *Store) dispatch(a domain.Action) error {
	next, err := domain.Reduce(s.state, a, s.opts.Rules)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Store) product(id int64) (catalog.Product, error) {
	p, ok := s.catalog.Find(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	return p, nil
}

func (s *Store) SelectProduct(id int64) error {
	p, err := s.product(id)
	if err != nil {
		return err
	}
	return s.dispatch(domain.SelectProduct{Product: p})
}

// AddToCart adds one unit of the product and acknowledges it to the user.
func (s *Store) AddToCart(id int64) error {
	p, err := s.product(id)
	if err != nil {
		return err
	}
	if err := s.dispatch(domain.AddToCart{Product: p}); err != nil {
		return err
	}
	s.notifier.Notify(fmt.Sprintf("%s をカートに追加しました！", p.Name))
	return nil
}

// AddToCartAndReturn is the Detail page's add button: add, then go Home.
func (s *Store) AddToCartAndReturn(id int64) error {
	if err := s.AddToCart(id); err != nil {
		return err
	}
	return s.dispatch(domain.Navigate{To: domain.PageHome})
}

func (s *Store) RemoveFromCart(id int64) error {
	return s.dispatch(domain.RemoveFromCart{ProductID: id})
}

func (s *Store) Navigate(to domain.Page) error {
	return s.dispatch(domain.Navigate{To: to})
}

// Back goes to the page the current page's back button leads to.
func (s *Store) Back() error {
	switch s.state.Page {
	case domain.PageCheckout:
		return s.Navigate(domain.PageCart)
	default:
		return s.Navigate(domain.PageHome)
	}
}

func (s *Store) orderRequest(email, name string) order.CreateOrderRequest {
	lines := s.state.Cart.Lines()
	items := make([]order.LineItem, len(lines))
	for i, l := range lines {
		items[i] = order.LineItem{Product: l.Product, Quantity: l.Quantity}
	}
	return order.CreateOrderRequest{
		Email:       email,
		Name:        name,
		Items:       items,
		TotalAmount: s.Total(),
	}
}

// idempotencyKey returns the key for this submission. A retry with the same
// cart and contact details reuses the previous key.
func (s *Store) idempotencyKey(email, name string) string {
	if !s.opts.IdempotencyKeys {
		return ""
	}
	a := s.attempt
	if a == nil || a.email != email || a.name != name || !sameCart(a.cart, s.state.Cart) {
		a = &checkoutAttempt{key: s.newKey(), email: email, name: name, cart: s.state.Cart}
		s.attempt = a
	}
	return a.key
}

// SubmitOrder posts the cart to the order API. On success the cart is cleared,
// the store returns to Home and the order id is shown. On failure nothing changes.
func (s *Store) SubmitOrder(ctx context.Context, email, name string) (string, error) {
	if s.state.Page != domain.PageCheckout {
		return "", fmt.Errorf("%w: submit from %s", domain.ErrIllegalTransition, s.state.Page)
	}

	req := s.orderRequest(email, name)
	key := s.idempotencyKey(email, name)

	orderID, err := s.backend.CreateOrder(ctx, req, key)
	if err != nil {
		logger.Error("Failed to create order", err)
		s.notifier.Notify("注文処理に失敗しました")
		return "", fmt.Errorf("%w: %v", ErrOrderSubmissionFailed, err)
	}

	if err := s.dispatch(domain.OrderCompleted{}); err != nil {
		return "", err
	}
	s.attempt = nil
	s.notifier.Notify("注文が完了しました！\n注文番号: " + orderID)
	return orderID, nil
}

func sameCart(a, b domain.Cart) bool {
	if a.Len() != b.Len() {
		return false
	}
	bl := b.Lines()
	for i, l := range a.Lines() {
		if l.ID != bl[i].ID || l.Quantity != bl[i].Quantity || !l.Price.Equal(bl[i].Price) {
			return false
		}
	}
	return true
}
