package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

var ServiceModule = fx.Module("service",
	fx.Provide(
		NewEventPublisher,
		NewAvailabilityService,
		NewHoldManager,
		NewBookingService,
		NewCatalogService,
		NewHistoryService,
		NewAuthService,
	),
)

// NewEventPublisher returns nil when AMQP_ENABLED is false; the booking
// service then publishes nothing.
func NewEventPublisher(cfg config.Config) service.EventPublisher {
	if !cfg.AMQP.Enabled {
		return nil
	}
	return queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
}

func NewAvailabilityService(seats *repository.SeatRepo, holds service.HoldStore, clk clock.Clock, log *slog.Logger) *service.AvailabilityService {
	return service.NewAvailabilityService(seats, holds, clk, log)
}

func NewHoldManager(holds service.HoldStore, clk clock.Clock, cfg config.Config, log *slog.Logger) *service.HoldManager {
	return service.NewHoldManager(holds, clk, cfg.Holds.TTL, log)
}

func NewBookingService(holds *service.HoldManager, ledger *repository.BookingRepo, events service.EventPublisher, clk clock.Clock, log *slog.Logger) *service.BookingService {
	return service.NewBookingService(holds, ledger, events, clk, log)
}

func NewCatalogService(movies *repository.MovieRepo, screenings *repository.ScreeningRepo, sales *repository.BookingRepo, clk clock.Clock) *service.CatalogService {
	return service.NewCatalogService(movies, screenings, sales, clk)
}

func NewHistoryService(bookings *repository.BookingRepo, clk clock.Clock) *service.HistoryService {
	return service.NewHistoryService(bookings, clk)
}

func NewAuthService(users *repository.UserRepo, cfg config.Config) *service.AuthService {
	return service.NewAuthService(users, cfg.JWT.BcryptCost)
}
