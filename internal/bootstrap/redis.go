package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

// NewRedis returns nil when Redis is unreachable.  That is fatal only for
// HOLD_BACKEND=redis; caching and rate limiting just switch off.
func NewRedis(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) *redis.Client {
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable; cache and rate limit disabled", slog.String("addr", cfg.Redis.Addr))
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}
