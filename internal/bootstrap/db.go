package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/database"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := database.Open(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Debug("mysql connected", slog.String("host", cfg.DB.Host), slog.String("db", cfg.DB.Name))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}
