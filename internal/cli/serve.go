package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/iliyamo/cinema-seat-booking/internal/bootstrap"
	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the hold sweeper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(
				bootstrap.Module,
				bootstrap.HTTPModule,
				fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
					return &fxevent.SlogLogger{Logger: log}
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			sig := <-app.Wait()
			if err := app.Stop(context.Background()); err != nil {
				return err
			}
			if sig.ExitCode != 0 {
				return errs.Newf("server exited with code %d", sig.ExitCode)
			}
			return nil
		},
	}
}

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Append booking events from RabbitMQ to the booking log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg config.Config
				log *slog.Logger
			)
			app := fx.New(bootstrap.ConfigModule, bootstrap.LoggerModule, fx.NopLogger, fx.Populate(&cfg, &log))
			if err := app.Err(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("booking consumer started", slog.String("queue", cfg.AMQP.Queue), slog.String("log_dir", cfg.AMQP.LogDir))
			err := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, cfg.AMQP.LogDir, log).Run(ctx)
			if ctx.Err() != nil {
				log.Info("booking consumer stopped")
				return nil
			}
			return err
		},
	}
}
