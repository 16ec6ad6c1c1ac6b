package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// Holder places seat holds.
type Holder interface {
	Hold(ctx context.Context, screeningID, seatID uint64, ttl time.Duration) (bool, error)
	DefaultTTL() time.Duration
}

// HoldHandler lets a client mark seats while it is choosing.  A hold
// only greys the seat out in seat maps; it never stops another client
// from booking it.
type HoldHandler struct {
	catalog Catalog
	layouts LayoutBuilder
	holds   Holder
	clock   clock.Clock
}

func NewHoldHandler(catalog Catalog, layouts LayoutBuilder, holds Holder, clk clock.Clock) *HoldHandler {
	return &HoldHandler{catalog: catalog, layouts: layouts, holds: holds, clock: clk}
}

// maxHoldTTLSeconds caps ttl_seconds.
const maxHoldTTLSeconds = 3600

type holdReq struct {
	Seats      []positionDTO `json:"seats"`
	TTLSeconds *int          `json:"ttl_seconds"`
}

type holdResp struct {
	Held      []positionDTO `json:"held"`
	Rejected  []string      `json:"rejected"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// HoldSeats handles POST /v1/screenings/:id/holds.  Every position is
// held independently; positions without a seat are listed as rejected.
// Holding a seat that someone else holds overwrites their hold.
func (h *HoldHandler) HoldSeats(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Seats) == 0 || len(req.Seats) > service.MaxSeatsPerBooking {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": service.ErrBatchSize.Error()})
	}
	ttl := h.holds.DefaultTTL()
	if req.TTLSeconds != nil {
		if *req.TTLSeconds < 0 || *req.TTLSeconds > maxHoldTTLSeconds {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("ttl_seconds must be between 0 and %d", maxHoldTTLSeconds)})
		}
		ttl = time.Duration(*req.TTLSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	_, layout, err := loadLayout(ctx, h.catalog, h.layouts, id)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := holdResp{Held: []positionDTO{}, Rejected: []string{}, ExpiresAt: h.clock.Now().Add(ttl)}
	for _, p := range toPositions(req.Seats) {
		seatID := layout.SeatID(p)
		if seatID == model.NoSeat {
			resp.Rejected = append(resp.Rejected, p.String()+" (Invalid seat ID)")
			continue
		}
		held, err := h.holds.Hold(ctx, id, seatID, ttl)
		if err != nil {
			return errorJSON(c, err)
		}
		if !held {
			resp.Rejected = append(resp.Rejected, p.String())
			continue
		}
		resp.Held = append(resp.Held, positionDTO{Row: p.Row, Seat: p.Seat})
	}
	return c.JSON(http.StatusOK, resp)
}
