package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridloal/saas-storefront/internal/platform/config"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
	"github.com/ridloal/saas-storefront/internal/storefront/domain"
	"github.com/ridloal/saas-storefront/internal/storefront/service"
	"github.com/ridloal/saas-storefront/internal/storefront/ui"
)

// RootOptions holds the persistent flags; they override the loaded config.
type RootOptions struct {
	APIBaseURL  string
	Timeout     time.Duration
	MaxQuantity int
	LogLevel    string

	cfg *config.Config
}

// NewRootCommand builds the storefront command tree. Running it without a subcommand opens the shop.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Terminal storefront for the SaaS product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIBaseURL, "api", "", "backend base URL (default from config)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "HTTP timeout, 0 keeps the configured value")
	cmd.PersistentFlags().IntVar(&opts.MaxQuantity, "max-quantity", -1, "per-product quantity cap, 0 for unbounded")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewShopCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.APIBaseURL != "" {
		cfg.Client.APIBaseURL = o.APIBaseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Client.HTTPTimeout = o.Timeout
	}
	if o.MaxQuantity >= 0 {
		cfg.Client.MaxQuantity = o.MaxQuantity
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if err := logger.Init(logger.Config(cfg.Log)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.cfg = cfg
	return nil
}

func (o *RootOptions) backend() service.Backend {
	return service.NewHTTPBackend(o.cfg.Client.APIBaseURL, o.cfg.Client.HTTPTimeout)
}

func (o *RootOptions) renderer() ui.Renderer {
	c := o.cfg.Client
	return ui.NewRenderer(ui.NewPriceFormat(c.Locale, c.Currency, c.PriceSuffix))
}

func NewShopCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Browse products, fill the cart and check out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShop(ctx context.Context, opts *RootOptions, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	backend := opts.backend()
	loader := service.NewCatalogLoader(backend)
	store := service.NewStore(loader, backend, ui.NewNotifier(out), service.StoreOptions{
		Rules:           domain.Rules{MaxQuantity: opts.cfg.Client.MaxQuantity},
		IdempotencyKeys: opts.cfg.Client.IdempotencyKeys,
	})
	logger.Info("Storefront connecting to " + opts.cfg.Client.APIBaseURL)
	return ui.NewShell(store, loader, opts.renderer(), out).Run(ctx, in)
}

// NewProductsCommand prints the home page once and exits.
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "Print the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			loader := service.NewCatalogLoader(opts.backend())
			if err := loader.Load(ctx); err != nil {
				return err
			}
			return opts.renderer().Render(cmd.OutOrStdout(), ui.View{
				State:    domain.InitialState(),
				Products: loader.Products(),
			})
		},
	}
}
