package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// Booker commits batches of seats.
type Booker interface {
	BookSeats(ctx context.Context, screeningID uint64, positions []model.Position, seatIDs [][]uint64, p model.Purchaser) (*model.BookingResult, error)
}

// BookingHandler books seats for guests and signed-in customers.
type BookingHandler struct {
	catalog Catalog
	layouts LayoutBuilder
	booker  Booker
}

func NewBookingHandler(catalog Catalog, layouts LayoutBuilder, booker Booker) *BookingHandler {
	return &BookingHandler{catalog: catalog, layouts: layouts, booker: booker}
}

type bookingReq struct {
	Seats      []positionDTO `json:"seats"`
	GuestName  string        `json:"guest_name"`
	GuestEmail string        `json:"guest_email"`
}

type bookingResp struct {
	ScreeningID  uint64        `json:"screening_id"`
	AllSucceeded bool          `json:"all_succeeded"`
	Succeeded    []positionDTO `json:"succeeded"`
	Failed       []string      `json:"failed"`
}

// BookSeats handles POST /v1/screenings/:id/bookings.  With a bearer
// token the seats are booked for that user and guest fields must be
// empty; without one guest_name and guest_email are required.  The
// response lists which seats were booked.  It is 201 when at least one
// seat was booked and 409 when none were.
func (h *BookingHandler) BookSeats(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var purchaser model.Purchaser
	if uid, authed := middleware.UserID(c); authed {
		if strings.TrimSpace(req.GuestName) != "" || strings.TrimSpace(req.GuestEmail) != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest fields are not allowed with a bearer token"})
		}
		purchaser = model.ForUser(uid)
	} else {
		purchaser = model.ForGuest(req.GuestName, req.GuestEmail)
	}
	if err := purchaser.Validate(); err != nil {
		return errorJSON(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	_, layout, err := loadLayout(ctx, h.catalog, h.layouts, id)
	if err != nil {
		return errorJSON(c, err)
	}
	res, err := h.booker.BookSeats(ctx, id, toPositions(req.Seats), layout.SeatIDs, purchaser)
	if err != nil {
		return errorJSON(c, err)
	}

	status := http.StatusCreated
	if len(res.Succeeded) == 0 {
		status = http.StatusConflict
	}
	failed := res.Failed
	if failed == nil {
		failed = []string{}
	}
	return c.JSON(status, bookingResp{
		ScreeningID:  id,
		AllSucceeded: res.AllSucceeded,
		Succeeded:    fromPositions(res.Succeeded),
		Failed:       failed,
	})
}
