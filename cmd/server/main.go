package main // Entry point package for the HTTP API

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/iliyamo/cinema-seat-booking/internal/bootstrap"
)

// main runs the same server as `cinema serve`, for container images that
// only ship the API.
func main() {
	app := fx.New(
		bootstrap.Module,
		bootstrap.HTTPModule,
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("application failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sig := <-app.Wait()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("application failed to stop cleanly", slog.String("error", err.Error()))
	}
	os.Exit(sig.ExitCode)
}
