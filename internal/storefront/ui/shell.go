package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ridloal/saas-storefront/internal/storefront/domain"
	"github.com/ridloal/saas-storefront/internal/storefront/service"
)

const helpText = `commands:
  home                 show the product list
  view <id>            show product detail
  add [id]             add to cart (on a detail page the id is optional)
  cart                 show the cart
  remove <id>          remove a product from the cart
  checkout             go to checkout
  go <page>            navigate to home, cart or checkout
  email <address>      set the checkout email
  name <name>          set the checkout name
  pay card|bank        choose the payment label
  order [email name]   place the order
  back                 go back
  help                 show this help
  quit                 leave the shop`

// ErrQuit ends the shell loop.
var ErrQuit = errors.New("quit")

// NewNotifier prints notices the way a blocking alert would interrupt the page.
func NewNotifier(out io.Writer) service.Notifier {
	return service.NotifierFunc(func(msg string) {
		for _, l := range strings.Split(msg, "\n") {
			fmt.Fprintf(out, "!! %s\n", l)
		}
	})
}

// Shell is a line-oriented front end for the store: read a command, apply it, re-render.
type Shell struct {
	store    *service.Store
	loader   *service.CatalogLoader
	renderer Renderer
	form     CheckoutForm
	out      io.Writer
}

func NewShell(store *service.Store, loader *service.CatalogLoader, renderer Renderer, out io.Writer) *Shell {
	return &Shell{
		store:    store,
		loader:   loader,
		renderer: renderer,
		form:     NewCheckoutForm(),
		out:      out,
	}
}

func (s *Shell) Form() CheckoutForm { return s.form }

func (s *Shell) Render() error {
	return s.renderer.Render(s.out, View{
		State:    s.store.State(),
		Loading:  s.loader.Loading(),
		Products: s.loader.Products(),
		Form:     s.form,
	})
}

// Run loads the catalog, then serves commands from in until EOF or quit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	done := s.loader.LoadAsync(ctx)
	if s.loader.Loading() {
		if err := s.Render(); err != nil {
			return err
		}
	}
	<-done
	if err := s.Render(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		err := s.Execute(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "!! %v\n", err)
		}
		if err := s.Render(); err != nil {
			return err
		}
	}
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing product id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}

// Execute applies one command line.
func (s *Shell) Execute(ctx context.Context, input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "home":
		return s.store.Navigate(domain.PageHome)
	case "cart":
		return s.store.Navigate(domain.PageCart)
	case "checkout":
		return s.store.Navigate(domain.PageCheckout)
	case "back":
		return s.store.Back()
	case "go":
		if len(args) == 0 {
			return errors.New("missing page name")
		}
		page, err := domain.ParsePage(args[0])
		if err != nil {
			return err
		}
		return s.store.Navigate(page)
	case "view":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return s.store.SelectProduct(id)
	case "add":
		if len(args) == 0 && s.store.Page() == domain.PageDetail {
			p, ok := s.store.Selected()
			if !ok {
				return service.ErrUnknownProduct
			}
			return s.store.AddToCartAndReturn(p.ID)
		}
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return s.store.AddToCart(id)
	case "remove":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return s.store.RemoveFromCart(id)
	case "email":
		s.form.Email = strings.Join(args, " ")
		return nil
	case "name":
		s.form.Name = strings.Join(args, " ")
		return nil
	case "pay":
		method, err := ParsePaymentMethod(strings.Join(args, " "))
		if err != nil {
			return err
		}
		s.form.PaymentMethod = method
		return nil
	case "order":
		return s.order(ctx, args)
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) order(ctx context.Context, args []string) error {
	if s.store.Page() != domain.PageCheckout {
		return fmt.Errorf("%w: order is only available on the checkout page", domain.ErrIllegalTransition)
	}
	if len(args) > 0 {
		s.form.Email = args[0]
	}
	if len(args) > 1 {
		s.form.Name = strings.Join(args[1:], " ")
	}
	if err := s.form.Validate(); err != nil {
		return err
	}
	if _, err := s.store.SubmitOrder(ctx, s.form.Email, s.form.Name); err != nil {
		// the store already told the user
		return nil
	}
	s.form = NewCheckoutForm()
	return nil
}
