// Package cli is the cinema console: cobra commands over the same
// services the HTTP API uses.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/bootstrap"
)

// NewRootCmd returns the cinema command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cinema",
		Short:         "Cinema seat booking console",
		Long:          `Browse screenings, inspect seat maps, hold and book seats, and run the booking API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newMoviesCmd(),
		newScreeningsCmd(),
		newSeatsCmd(),
		newHoldCmd(),
		newSweepCmd(),
		newBookCmd(),
		newRegisterCmd(),
		newBookingsCmd(),
		newServeCmd(),
		newConsumeCmd(),
	)
	return root
}

// withApp builds the dependency graph, fills targets and runs fn.  The
// graph is torn down afterwards, closing database and Redis connections.
func withApp(ctx context.Context, fn func() error, targets ...any) error {
	app := fx.New(bootstrap.Module, fx.NopLogger, fx.Populate(targets...))
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.WithoutCancel(ctx)) }()
	return fn()
}
