package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repository.NewBookingRepo,
		repository.NewHallRepo,
		repository.NewSeatRepo,
		repository.NewMovieRepo,
		repository.NewScreeningRepo,
		repository.NewUserRepo,
		NewHoldStore,
	),
)

// NewHoldStore picks the hold backend named by HOLD_BACKEND.
func NewHoldStore(cfg config.Config, db *sql.DB, rdb *redis.Client, log *slog.Logger) (service.HoldStore, error) {
	if cfg.Holds.Backend == config.HoldBackendRedis {
		if rdb == nil {
			return nil, errs.New("HOLD_BACKEND=redis but redis is unavailable")
		}
		log.Debug("seat holds stored in redis")
		return repository.NewRedisHoldStore(rdb), nil
	}
	return repository.NewSeatHoldRepo(db), nil
}
