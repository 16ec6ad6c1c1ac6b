package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// RegisterCustomer registers the endpoints that change seat state and the
// signed-in customer's own views.  Holds and bookings accept guests, so
// they take an optional token; both are rate limited after the token is
// read so signed-in callers get their own bucket.  /v1/me requires a
// token and the customer role.
func RegisterCustomer(e *echo.Echo, h Handlers, mw Middlewares) {
	e.POST("/v1/screenings/:id/holds", h.Holds.HoldSeats, mw.OptionalAuth, mw.RateLimit)
	e.POST("/v1/screenings/:id/bookings", h.Bookings.BookSeats, mw.OptionalAuth, mw.RateLimit)

	me := e.Group("/v1/me", mw.Auth, middleware.RequireRole(model.RoleCustomer))
	me.GET("/bookings", h.Me.ListBookings)
}
