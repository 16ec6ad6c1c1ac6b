package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cinema-seat-booking/internal/handler" // handlers implementing each endpoint
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Seats    *handler.SeatHandler
	Holds    *handler.HoldHandler
	Bookings *handler.BookingHandler
	Me       *handler.MeHandler
}

// Middlewares are the cross-cutting middlewares applied to route groups.
// Auth requires a bearer token, OptionalAuth accepts one, Cache wraps
// the catalog and RateLimit the write endpoints.
type Middlewares struct {
	Auth         echo.MiddlewareFunc
	OptionalAuth echo.MiddlewareFunc
	Cache        echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
}

// Register wires every route onto e.
func Register(e *echo.Echo, h Handlers, mw Middlewares) {
	RegisterRoutes(e, h)
	RegisterAuth(e, h.Auth)
	RegisterPublic(e, h, mw.Cache)
	RegisterCustomer(e, h, mw)
}

// RegisterRoutes registers routes that do not belong to the versioned API.
// At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", h.Health.Health)
}

// RegisterAuth registers the account endpoints.  Both issue an access
// token; there is no refresh flow.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterPublic registers unauthenticated browse endpoints.  Movie and
// screening listings go through the response cache; the seat map changes
// with every booking and is registered without it.
func RegisterPublic(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	cached := e.Group("/v1", cache)
	cached.GET("/movies", h.Catalog.ListMovies)
	cached.GET("/movies/:id", h.Catalog.GetMovie)
	cached.GET("/screenings", h.Catalog.ListScreenings)
	cached.GET("/screenings/:id", h.Catalog.GetScreening)

	e.GET("/v1/screenings/:id/seats", h.Seats.GetSeatMap)
}
