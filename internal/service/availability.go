package service

import (
	"context"
	"log/slog"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// AvailabilityService derives seat occupancy snapshots.  It never writes.
type AvailabilityService struct {
	seats SeatCatalog
	holds HoldStore
	clock clock.Clock
	log   *slog.Logger
}

func NewAvailabilityService(seats SeatCatalog, holds HoldStore, clk clock.Clock, log *slog.Logger) *AvailabilityService {
	return &AvailabilityService{seats: seats, holds: holds, clock: clk, log: log}
}

// BuildLayout returns the occupancy grid of hall for one screening.  A
// seat is occupied when it is booked for the screening or carries a hold
// expiring after now.  Grid positions without a provisioned seat keep
// seat id model.NoSeat; seats outside the hall's grid are skipped.  The
// result is already stale when returned and is meant for display and
// seat-id lookup only.
func (s *AvailabilityService) BuildLayout(ctx context.Context, screeningID uint64, hall model.Hall) (*model.Layout, error) {
	layout := model.NewLayout(screeningID, hall.Rows, hall.SeatsPerRow)

	seats, err := s.seats.ListWithBookings(ctx, hall.ID, screeningID)
	if err != nil {
		return nil, errs.Wrapf(err, "layout of screening %d", screeningID)
	}
	if len(seats) == 0 {
		return layout, nil
	}

	held, err := s.holds.ActiveSeatIDs(ctx, screeningID, s.clock.Now())
	if err != nil {
		return nil, errs.Wrapf(err, "holds of screening %d", screeningID)
	}
	heldSet := make(map[uint64]struct{}, len(held))
	for _, id := range held {
		heldSet[id] = struct{}{}
	}

	skipped := 0
	for _, o := range seats {
		p := o.Seat.Position()
		if !hall.Contains(p) {
			skipped++
			continue
		}
		_, isHeld := heldSet[o.Seat.ID]
		layout.SeatIDs[p.Row-1][p.Seat-1] = o.Seat.ID
		layout.Occupied[p.Row-1][p.Seat-1] = o.Booked || isHeld
	}
	if skipped > 0 && s.log != nil {
		s.log.Warn("seats outside hall grid ignored",
			slog.Uint64("hall_id", hall.ID), slog.Int("count", skipped))
	}
	return layout, nil
}
