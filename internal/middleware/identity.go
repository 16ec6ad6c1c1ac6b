package middleware

// identity.go reads the identity left in the Echo context by JWTAuth or
// OptionalJWT.  Handlers use UserID to decide between a user and a guest
// booking; the rate limiter uses purchaserKey to bucket callers.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id, or false for anonymous
// requests.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok && id != 0
}

// Username returns the authenticated user's name, or "" when anonymous.
func Username(c echo.Context) string {
	name, _ := c.Get(CtxUsername).(string)
	return name
}

// purchaserKey identifies the caller for rate limiting.  Guests share
// one bucket per IP, so the key is just "guest" for them.
func purchaserKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return "user-" + strconv.FormatUint(id, 10)
	}
	return "guest"
}
