package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// HistoryReader loads a user's grouped bookings.
type HistoryReader interface {
	ForUser(ctx context.Context, userID uint64) (*service.History, error)
}

// MeHandler serves endpoints about the signed-in customer.
type MeHandler struct {
	history HistoryReader
}

func NewMeHandler(history HistoryReader) *MeHandler {
	return &MeHandler{history: history}
}

type historyGroupDTO struct {
	Screening screeningDTO  `json:"screening"`
	Status    string        `json:"status"`
	Seats     []positionDTO `json:"seats"`
	BookedAt  time.Time     `json:"booked_at"`
	Total     string        `json:"total"`
}

type historyResp struct {
	Screenings int               `json:"screenings"`
	Seats      int               `json:"seats"`
	TotalSpent string            `json:"total_spent"`
	Bookings   []historyGroupDTO `json:"bookings"`
}

// ListBookings handles GET /v1/me/bookings.  JWTAuth must run first.
func (h *MeHandler) ListBookings(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	hist, err := h.history.ForUser(ctx, uid)
	if err != nil {
		return errorJSON(c, err)
	}
	resp := historyResp{
		Screenings: hist.Screenings,
		Seats:      hist.Seats,
		TotalSpent: model.FormatPrice(hist.TotalCents),
		Bookings:   make([]historyGroupDTO, 0, len(hist.Groups)),
	}
	for _, g := range hist.Groups {
		resp.Bookings = append(resp.Bookings, historyGroupDTO{
			Screening: toScreeningDTO(model.ScreeningDetail{Screening: g.Screening, Movie: g.Movie, Hall: g.Hall}),
			Status:    string(g.Status),
			Seats:     fromPositions(g.Seats),
			BookedAt:  g.BookedAt,
			Total:     model.FormatPrice(g.TotalCents),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
