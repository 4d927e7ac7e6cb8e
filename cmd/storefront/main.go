package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ridloal/saas-storefront/internal/platform/logger"
	"github.com/ridloal/saas-storefront/internal/storefront/cli"
)

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logger.Sync()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
