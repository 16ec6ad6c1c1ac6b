package bootstrap

import (
	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		clock.NewRealClock,
	),
)
