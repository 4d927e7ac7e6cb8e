package domain

import (
	"fmt"
	"strings"
)

// Page is the logical page the storefront is showing.
type Page int

const (
	PageHome Page = iota
	PageDetail
	PageCart
	PageCheckout
)

var pageNames = map[Page]string{
	PageHome:     "home",
	PageDetail:   "detail",
	PageCart:     "cart",
	PageCheckout: "checkout",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// ParsePage matches a page name case-insensitively.
func ParsePage(s string) (Page, error) {
	for p, name := range pageNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return PageHome, fmt.Errorf("unknown page %q", s)
}

// navigable lists the pages reachable with a plain Navigate from each page.
// Detail is entered only through SelectProduct, and Checkout leaves for Home
// only through OrderCompleted.
var navigable = map[Page][]Page{
	PageHome:     {PageHome, PageCart},
	PageDetail:   {PageHome, PageCart},
	PageCart:     {PageHome, PageCart, PageCheckout},
	PageCheckout: {PageCart},
}

// CanNavigate reports whether Navigate{To: to} is legal from from, ignoring cart contents.
func CanNavigate(from, to Page) bool {
	for _, p := range navigable[from] {
		if p == to {
			return true
		}
	}
	return false
}
