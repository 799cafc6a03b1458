package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts the fx application and blocks until the signal context is
// cancelled or the application shuts itself down.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "laadscan failed to start: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "laadscan failed to stop cleanly: %v\n", err)
		os.Exit(1)
	}
}
