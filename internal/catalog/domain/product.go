package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry as served by GET /api/products.
// Price is in minor currency units (yen).
type Product struct {
	ID              int64           `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Description     string          `json:"description" yaml:"description"`
	LongDescription string          `json:"longDescription" yaml:"longDescription"`
	Category        string          `json:"category" yaml:"category"`
	Price           decimal.Decimal `json:"price" yaml:"price"`
	Logo            string          `json:"logo,omitempty" yaml:"logo,omitempty"`
	Emoji           string          `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Features        []string        `json:"features,omitempty" yaml:"features,omitempty"`
	TargetUsers     string          `json:"targetUsers" yaml:"targetUsers"`
}

// HasLogo reports whether an image reference should be shown instead of the emoji icon.
func (p Product) HasLogo() bool {
	return p.Logo != ""
}
