package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

func TestRenderProducesPDF(t *testing.T) {
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	h := &service.History{
		UserID: 1, Screenings: 1, Seats: 2, TotalCents: 19000,
		Groups: []service.ScreeningBookings{{
			Screening:  model.Screening{ID: 7, StartTime: at.Add(time.Hour), PriceCents: 9500},
			Movie:      model.Movie{Title: "Arrival"},
			Hall:       model.Hall{Name: "Hall A"},
			Seats:      []model.Position{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}},
			TotalCents: 19000,
			Status:     service.StatusStartingSoon,
		}},
	}

	out, err := Render("alice", h, at)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	empty, err := Render("bob", &service.History{}, at)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestSeatList(t *testing.T) {
	assert.Equal(t, "Row 1, Seat 1; Row 2, Seat 3", seatList([]model.Position{{Row: 1, Seat: 1}, {Row: 2, Seat: 3}}))
}
