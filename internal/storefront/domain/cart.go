package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
)

// CartLine is a product together with how many of it are in the cart.
type CartLine struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an immutable value: every mutation returns a new Cart and leaves the
// receiver untouched. At most one line exists per product id and every
// quantity is at least 1.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart by adding each line in order, merging duplicate ids.
// Lines with a non-positive quantity are dropped.
func NewCart(lines ...CartLine) Cart {
	c := Cart{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.index(l.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c Cart) index(id int64) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Lines returns a copy of the lines in display order.
func (c Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Len() int { return len(c.lines) }

func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c Cart) Line(id int64) (CartLine, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// Add increments the line for p or appends a new line with quantity 1.
// maxQuantity > 0 caps the quantity of a single line.
func (c Cart) Add(p catalog.Product, maxQuantity int) (Cart, error) {
	i := c.index(p.ID)
	if i < 0 {
		lines := make([]CartLine, len(c.lines), len(c.lines)+1)
		copy(lines, c.lines)
		return Cart{lines: append(lines, CartLine{Product: p, Quantity: 1})}, nil
	}
	if maxQuantity > 0 && c.lines[i].Quantity >= maxQuantity {
		return c, ErrQuantityLimit
	}
	lines := c.Lines()
	lines[i] = CartLine{Product: lines[i].Product, Quantity: lines[i].Quantity + 1}
	return Cart{lines: lines}, nil
}

// Remove drops the line for id. Removing an absent id returns an equal cart.
func (c Cart) Remove(id int64) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := make([]CartLine, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{lines: lines}
}

// Total is the sum of price × quantity over all lines; zero for an empty cart.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
