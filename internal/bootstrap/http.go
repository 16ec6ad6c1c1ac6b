package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/router"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// HTTPModule serves the API and runs the hold sweeper for as long as the
// server is up.
var HTTPModule = fx.Module("http",
	fx.Provide(
		NewHandlers,
		NewMiddlewares,
		NewEcho,
	),
	fx.Invoke(
		StartServer,
		StartSweeper,
	),
)

func NewHandlers(
	db *sql.DB,
	rdb *redis.Client,
	cfg config.Config,
	clk clock.Clock,
	auth *service.AuthService,
	catalog *service.CatalogService,
	layouts *service.AvailabilityService,
	holds *service.HoldManager,
	bookings *service.BookingService,
	history *service.HistoryService,
) router.Handlers {
	checks := map[string]handler.Check{"db": db.PingContext, "redis": nil}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return router.Handlers{
		Health:   handler.NewHealthHandler(checks),
		Auth:     handler.NewAuthHandler(auth, cfg.JWT.Secret, cfg.JWT.AccessTTLMin, clk),
		Catalog:  handler.NewCatalogHandler(catalog),
		Seats:    handler.NewSeatHandler(catalog, layouts),
		Holds:    handler.NewHoldHandler(catalog, layouts, holds, clk),
		Bookings: handler.NewBookingHandler(catalog, layouts, bookings),
		Me:       handler.NewMeHandler(history),
	}
}

func NewMiddlewares(cfg config.Config, rdb *redis.Client, clk clock.Clock, log *slog.Logger) (router.Middlewares, error) {
	if err := cfg.RequireServerSecrets(); err != nil {
		return router.Middlewares{}, err
	}
	return router.Middlewares{
		Auth:         middleware.JWTAuth(cfg.JWT.Secret),
		OptionalAuth: middleware.OptionalJWT(cfg.JWT.Secret),
		Cache:        middleware.NewRedisCache(cfg.Cache, rdb, log),
		RateLimit:    middleware.NewTokenBucket(cfg.RateLimit, rdb, clk, log),
	}, nil
}

// NewEcho builds the server with request logging through slog.
func NewEcho(h router.Handlers, mw router.Middlewares, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if msg, ok := c.Get("error").(string); ok {
				attrs = append(attrs, slog.String("error", msg))
				log.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	router.Register(e, h, mw)
	return e
}

// StartServer runs echo in the background.  A server that stops with
// anything but http.ErrServerClosed shuts the whole app down with exit
// code 1.
func StartServer(lc fx.Lifecycle, sd fx.Shutdowner, e *echo.Echo, cfg config.Config, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			addr := ":" + cfg.App.Port
			log.Info("http server starting", slog.String("addr", addr))
			go serve(e, addr, sd, log)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server stopping")
			return e.Shutdown(ctx)
		},
	})
}

func serve(e *echo.Echo, addr string, sd fx.Shutdowner, log *slog.Logger) {
	err := e.Start(addr)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	log.Error("http server failed", slog.String("addr", addr), slog.String("error", err.Error()))
	if serr := sd.Shutdown(fx.ExitCode(1)); serr != nil {
		log.Error("shutdown after server failure", slog.String("error", serr.Error()))
	}
}

func StartSweeper(lc fx.Lifecycle, holds *service.HoldManager, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				holds.RunSweeper(ctx, cfg.Holds.SweepInterval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			case <-time.After(5 * time.Second):
			}
			return nil
		},
	})
}
