package service

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
)

// ScreeningStatus classifies a booked screening relative to now.
type ScreeningStatus string

const (
	StatusPast         ScreeningStatus = "Past"
	StatusStartingSoon ScreeningStatus = "Starting soon"
	StatusUpcoming     ScreeningStatus = "Upcoming"
)

// startingSoonWindow is how close a screening must be to count as
// starting soon.
const startingSoonWindow = 2 * time.Hour

// ScreeningBookings is every seat a user booked for one screening.
type ScreeningBookings struct {
	Screening  model.Screening
	Movie      model.Movie
	Hall       model.Hall
	Seats      []model.Position
	BookedAt   time.Time
	TotalCents int64
	Status     ScreeningStatus
}

// History is a user's bookings grouped by screening, most recent
// screening first.
type History struct {
	UserID     uint64
	Groups     []ScreeningBookings
	Screenings int
	Seats      int
	TotalCents int64
}

type HistoryService struct {
	store BookingHistoryStore
	clock clock.Clock
}

func NewHistoryService(store BookingHistoryStore, clk clock.Clock) *HistoryService {
	return &HistoryService{store: store, clock: clk}
}

// ForUser loads and groups the bookings of userID.
func (s *HistoryService) ForUser(ctx context.Context, userID uint64) (*History, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return GroupBookings(userID, rows, s.clock.Now()), nil
}

// GroupBookings folds booking rows into per-screening groups.  Groups are
// ordered by start time, latest first; seats within a group by row and
// number.  BookedAt is the earliest booking of the group.
func GroupBookings(userID uint64, rows []model.BookingDetail, now time.Time) *History {
	h := &History{UserID: userID}
	index := make(map[uint64]int)
	for _, r := range rows {
		i, ok := index[r.Screening.ID]
		if !ok {
			i = len(h.Groups)
			index[r.Screening.ID] = i
			h.Groups = append(h.Groups, ScreeningBookings{
				Screening: r.Screening,
				Movie:     r.Movie,
				Hall:      r.Hall,
				BookedAt:  r.Booking.BookedAt,
				Status:    statusAt(r.Screening.StartTime, now),
			})
		}
		g := &h.Groups[i]
		g.Seats = append(g.Seats, r.Seat.Position())
		g.TotalCents += r.Screening.PriceCents
		if r.Booking.BookedAt.Before(g.BookedAt) {
			g.BookedAt = r.Booking.BookedAt
		}
	}

	sort.SliceStable(h.Groups, func(a, b int) bool {
		return h.Groups[a].Screening.StartTime.After(h.Groups[b].Screening.StartTime)
	})
	for i := range h.Groups {
		g := &h.Groups[i]
		sort.Slice(g.Seats, func(a, b int) bool {
			if g.Seats[a].Row != g.Seats[b].Row {
				return g.Seats[a].Row < g.Seats[b].Row
			}
			return g.Seats[a].Seat < g.Seats[b].Seat
		})
		h.Seats += len(g.Seats)
		h.TotalCents += g.TotalCents
	}
	h.Screenings = len(h.Groups)
	return h
}

func statusAt(start, now time.Time) ScreeningStatus {
	switch {
	case start.Before(now):
		return StatusPast
	case start.Sub(now) <= startingSoonWindow:
		return StatusStartingSoon
	default:
		return StatusUpcoming
	}
}
