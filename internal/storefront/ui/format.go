package ui

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormat renders amounts the way the storefront shows them, e.g. "¥1,000 / 月".
type PriceFormat struct {
	printer  *message.Printer
	Currency string
	Suffix   string
}

func NewPriceFormat(locale, currency, suffix string) PriceFormat {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Japanese
	}
	return PriceFormat{printer: message.NewPrinter(tag), Currency: currency, Suffix: suffix}
}

// Amount groups digits per locale; fractional amounts keep up to two places.
func (f PriceFormat) Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.Currency + f.printer.Sprintf("%d", d.IntPart())
	}
	return f.Currency + f.printer.Sprintf("%.2f", d.InexactFloat64())
}

// Price is Amount plus the recurring-billing suffix.
func (f PriceFormat) Price(d decimal.Decimal) string {
	return f.Amount(d) + f.Suffix
}
