package ui

import (
	"fmt"
	"io"
	"strings"

	catalog "github.com/ridloal/saas-storefront/internal/catalog/domain"
	"github.com/ridloal/saas-storefront/internal/storefront/domain"
)

const (
	shopTitle   = "🚀 SaaS エコシステム"
	shopTagline = "Vibe Coding で開発効率を最大化するプロダクト群"
	cartTitle   = "🛒 シンプルなECサイト"
	divider     = "----------------------------------------"
)

// View is everything a page needs, captured at render time.
type View struct {
	State    domain.State
	Loading  bool
	Products []catalog.Product
	Form     CheckoutForm
}

type Renderer struct {
	Price PriceFormat
}

func NewRenderer(price PriceFormat) Renderer {
	return Renderer{Price: price}
}

// Render writes the page selected by v.State.Page.
func (r Renderer) Render(w io.Writer, v View) error {
	var b strings.Builder
	switch v.State.Page {
	case domain.PageDetail:
		r.detail(&b, v)
	case domain.PageCart:
		r.cart(&b, v)
	case domain.PageCheckout:
		r.checkout(&b, v)
	default:
		r.home(&b, v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func line(b *strings.Builder, format string, args ...any) {
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func icon(p catalog.Product) string {
	switch {
	case p.HasLogo():
		return "<" + p.Logo + ">"
	case p.Emoji != "":
		return p.Emoji
	default:
		return "-"
	}
}

func (r Renderer) home(b *strings.Builder, v View) {
	line(b, shopTitle)
	line(b, shopTagline)
	line(b, "[ホーム] [カート (%d)]", v.State.Cart.Len())
	line(b, divider)

	if v.Loading {
		line(b, "読み込み中...")
		return
	}

	line(b, "開発チームの生産性を飛躍的に向上")
	line(b, "AI駆動、自動化、そしてVibe Codingの感覚で、コーディングの未来を体験してください")
	for _, p := range v.Products {
		line(b, "")
		line(b, "[%d] %s %s (%s)", p.ID, icon(p), p.Name, p.Category)
		line(b, "    %s", p.Description)
		line(b, "    %s", r.Price.Price(p.Price))
		line(b, "    詳細を見る: view %d  カートに追加: add %d", p.ID, p.ID)
	}
}

func (r Renderer) detail(b *strings.Builder, v View) {
	line(b, shopTitle)
	line(b, "[← 戻る] [カート (%d)]", v.State.Cart.Len())
	line(b, divider)

	p, ok := v.State.Selected(v.Products)
	if !ok {
		return
	}
	line(b, "%s", icon(p))
	line(b, "%s", p.Category)
	line(b, "%s", p.Name)
	line(b, "%s", p.Description)
	line(b, "%s", r.Price.Price(p.Price))
	line(b, "")
	line(b, "概要")
	line(b, "%s", p.LongDescription)
	line(b, "")
	line(b, "主な機能")
	for _, f := range p.Features {
		line(b, "  ✨ %s", f)
	}
	line(b, "")
	line(b, "対象ユーザー")
	line(b, "%s", p.TargetUsers)
	line(b, "")
	line(b, "💳 カートに追加: add")
}

func (r Renderer) cart(b *strings.Builder, v View) {
	line(b, cartTitle)
	line(b, "[← ショッピングを続ける]")
	line(b, divider)
	line(b, "ショッピングカート")
	line(b, "")

	cart := v.State.Cart
	if cart.IsEmpty() {
		line(b, "カートは空です")
		return
	}
	for _, l := range cart.Lines() {
		line(b, "%s ×%d %s  削除: remove %d", l.Name, l.Quantity, r.Price.Amount(l.Subtotal()), l.ID)
	}
	line(b, "")
	line(b, "合計: %s", r.Price.Amount(cart.Total()))
	line(b, "チェックアウト: checkout")
}

func orBlank(s string) string {
	if s == "" {
		return "(未入力)"
	}
	return s
}

func (r Renderer) checkout(b *strings.Builder, v View) {
	line(b, cartTitle)
	line(b, divider)
	line(b, "チェックアウト")
	line(b, "")
	line(b, "メールアドレス: %s", orBlank(v.Form.Email))
	line(b, "氏名: %s", orBlank(v.Form.Name))
	line(b, "支払い方法: %s", orBlank(v.Form.PaymentMethod))
	line(b, "")
	line(b, "注文内容")
	cart := v.State.Cart
	for _, l := range cart.Lines() {
		line(b, "%s ×%d = %s", l.Name, l.Quantity, r.Price.Amount(l.Subtotal()))
	}
	line(b, "合計: %s", r.Price.Amount(cart.Total()))
	line(b, "")
	line(b, "注文確定: order")
}
