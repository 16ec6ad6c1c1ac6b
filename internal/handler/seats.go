package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// SeatHandler serves the seat map of a screening.  The map is rebuilt on
// every request and is never cached.
type SeatHandler struct {
	catalog Catalog
	layouts LayoutBuilder
}

func NewSeatHandler(catalog Catalog, layouts LayoutBuilder) *SeatHandler {
	return &SeatHandler{catalog: catalog, layouts: layouts}
}

type seatCell struct {
	Seat   int    `json:"seat"`
	SeatID uint64 `json:"seat_id,omitempty"`
	Taken  bool   `json:"taken"`
}

type seatRow struct {
	Row   int        `json:"row"`
	Seats []seatCell `json:"seats"`
}

type statsDTO struct {
	Total     int     `json:"total"`
	Taken     int     `json:"taken"`
	Available int     `json:"available"`
	Occupancy float64 `json:"occupancy_percent"`
}

type seatMapResp struct {
	Screening   screeningDTO `json:"screening"`
	Rows        int          `json:"rows"`
	SeatsPerRow int          `json:"seats_per_row"`
	Grid        []seatRow    `json:"grid"`
	Stats       statsDTO     `json:"stats"`
}

// GetSeatMap handles GET /v1/screenings/:id/seats.  A position without a
// provisioned seat is reported with no seat_id and is never bookable.
func (h *SeatHandler) GetSeatMap(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	d, layout, err := loadLayout(ctx, h.catalog, h.layouts, id)
	if err != nil {
		return errorJSON(c, err)
	}

	grid := make([]seatRow, 0, layout.Rows)
	for r := 1; r <= layout.Rows; r++ {
		row := seatRow{Row: r, Seats: make([]seatCell, 0, layout.SeatsPerRow)}
		for s := 1; s <= layout.SeatsPerRow; s++ {
			p := model.Position{Row: r, Seat: s}
			row.Seats = append(row.Seats, seatCell{Seat: s, SeatID: layout.SeatID(p), Taken: layout.Taken(p)})
		}
		grid = append(grid, row)
	}
	st := layout.Stats()
	return c.JSON(http.StatusOK, seatMapResp{
		Screening:   toScreeningDTO(*d),
		Rows:        layout.Rows,
		SeatsPerRow: layout.SeatsPerRow,
		Grid:        grid,
		Stats:       statsDTO{Total: st.Total, Taken: st.Taken, Available: st.Available, Occupancy: st.Occupancy},
	})
}

// loadLayout resolves the screening's hall and builds its seat map.
func loadLayout(ctx context.Context, catalog Catalog, layouts LayoutBuilder, screeningID uint64) (*model.ScreeningDetail, *model.Layout, error) {
	d, err := catalog.Screening(ctx, screeningID)
	if err != nil {
		return nil, nil, err
	}
	layout, err := layouts.BuildLayout(ctx, screeningID, d.Hall)
	if err != nil {
		return nil, nil, err
	}
	return d, layout, nil
}
