package domain

import (
	"errors"
	"fmt"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
)

var (
	ErrIllegalTransition = errors.New("illegal navigation transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrQuantityLimit     = errors.New("quantity limit reached")
	ErrCartLocked        = errors.New("cart cannot change during checkout")
)

// Rules are the tunable limits applied by Reduce.
type Rules struct {
	MaxQuantity int // 0 means unbounded
}

// State is the whole storefront view state. The selected product is held by
// id and resolved against the current catalog when needed.
type State struct {
	Page         Page
	SelectedID   int64
	HasSelection bool
	Cart         Cart
}

// InitialState is the Home page with an empty cart.
func InitialState() State {
	return State{Page: PageHome}
}

// Selected resolves the selected product in products. It reports false when
// nothing is selected or the product is no longer listed.
func (s State) Selected(products []catalog.Product) (catalog.Product, bool) {
	if !s.HasSelection {
		return catalog.Product{}, false
	}
	for _, p := range products {
		if p.ID == s.SelectedID {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Action is one of the state transitions below.
type Action interface {
	isAction()
}

type SelectProduct struct{ Product catalog.Product }

type AddToCart struct{ Product catalog.Product }

type RemoveFromCart struct{ ProductID int64 }

type Navigate struct{ To Page }

// OrderCompleted is dispatched after the order API accepted the cart.
type OrderCompleted struct{}

func (SelectProduct) isAction()  {}
func (AddToCart) isAction()      {}
func (RemoveFromCart) isAction() {}
func (Navigate) isAction()       {}
func (OrderCompleted) isAction() {}

// Reduce applies a to s. It never mutates s; on error the returned state is s.
func Reduce(s State, a Action, rules Rules) (State, error) {
	switch a := a.(type) {
	case SelectProduct:
		if s.Page != PageHome {
			return s, illegal(s.Page, PageDetail)
		}
		s.Page = PageDetail
		s.SelectedID = a.Product.ID
		s.HasSelection = true
		return s, nil

	case AddToCart:
		if s.Page == PageCheckout {
			return s, ErrCartLocked
		}
		cart, err := s.Cart.Add(a.Product, rules.MaxQuantity)
		if err != nil {
			return s, fmt.Errorf("%w: %s (max %d)", err, a.Product.Name, rules.MaxQuantity)
		}
		s.Cart = cart
		return s, nil

	case RemoveFromCart:
		if s.Page == PageCheckout {
			return s, ErrCartLocked
		}
		s.Cart = s.Cart.Remove(a.ProductID)
		return s, nil

	case Navigate:
		if !CanNavigate(s.Page, a.To) {
			return s, illegal(s.Page, a.To)
		}
		if a.To == PageCheckout && s.Cart.IsEmpty() {
			return s, ErrEmptyCart
		}
		s.Page = a.To
		return s, nil

	case OrderCompleted:
		if s.Page != PageCheckout {
			return s, illegal(s.Page, PageHome)
		}
		s.Page = PageHome
		s.Cart = Cart{}
		return s, nil

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}
}

func illegal(from, to Page) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
