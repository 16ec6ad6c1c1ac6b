package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
)

// MaxSeatsPerBooking caps one batch.
const MaxSeatsPerBooking = 10

// ErrBatchSize is returned for an empty batch or one over the cap.
var ErrBatchSize = errs.New("a booking must request between 1 and 10 seats")

// staleHoldExpirer is the part of HoldManager the orchestrator needs.
type staleHoldExpirer interface {
	ExpireStaleHolds(ctx context.Context) error
}

// BookingService books batches of seats.  Each seat is committed on its
// own; a failure on one seat never undoes another.
type BookingService struct {
	holds  staleHoldExpirer
	ledger Ledger
	events EventPublisher
	clock  clock.Clock
	log    *slog.Logger
}

// NewBookingService wires the orchestrator.  events may be nil, in which
// case nothing is published.
func NewBookingService(holds staleHoldExpirer, ledger Ledger, events EventPublisher, clk clock.Clock, log *slog.Logger) *BookingService {
	return &BookingService{holds: holds, ledger: ledger, events: events, clock: clk, log: log}
}

// BookSeatsAsGuest books positions for an anonymous customer.
func (s *BookingService) BookSeatsAsGuest(ctx context.Context, screeningID uint64, positions []model.Position, seatIDs [][]uint64, name, email string) (*model.BookingResult, error) {
	return s.BookSeats(ctx, screeningID, positions, seatIDs, model.ForGuest(name, email))
}

// BookSeatsForUser books positions for a registered account.
func (s *BookingService) BookSeatsForUser(ctx context.Context, screeningID uint64, positions []model.Position, seatIDs [][]uint64, userID uint64) (*model.BookingResult, error) {
	return s.BookSeats(ctx, screeningID, positions, seatIDs, model.ForUser(userID))
}

// BookSeats expires stale holds once and then tries every position in
// the order given.  seatIDs is the grid from an availability snapshot;
// it is used only to turn positions into seat ids, never to decide
// whether a seat is free.  A position that resolves to no seat fails
// with "Row R, Seat S (Invalid seat ID)"; a seat the ledger refuses fails
// with "Row R, Seat S".  Per-seat failures are part of the result.  An
// error is returned only for an invalid purchaser or batch, or when the
// stores fail, in which case seats committed so far stay booked.
func (s *BookingService) BookSeats(ctx context.Context, screeningID uint64, positions []model.Position, seatIDs [][]uint64, p model.Purchaser) (*model.BookingResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(positions) == 0 || len(positions) > MaxSeatsPerBooking {
		return nil, ErrBatchSize
	}
	if err := s.holds.ExpireStaleHolds(ctx); err != nil {
		return nil, err
	}

	res := &model.BookingResult{Outcomes: make([]model.SeatOutcome, 0, len(positions))}
	for _, pos := range positions {
		seatID := seatIDAt(seatIDs, pos)
		if seatID == model.NoSeat {
			res.Failed = append(res.Failed, pos.String()+" (Invalid seat ID)")
			res.Outcomes = append(res.Outcomes, model.SeatOutcome{Position: pos, Status: model.SeatRejectedInvalid})
			continue
		}

		ok, err := s.ledger.TryCommit(ctx, screeningID, seatID, p)
		if err != nil {
			return nil, errs.Wrapf(err, "commit %s", pos)
		}
		if !ok {
			res.Failed = append(res.Failed, pos.String())
			res.Outcomes = append(res.Outcomes, model.SeatOutcome{Position: pos, SeatID: seatID, Status: model.SeatRejectedTaken})
			continue
		}
		res.Succeeded = append(res.Succeeded, pos)
		res.Outcomes = append(res.Outcomes, model.SeatOutcome{Position: pos, SeatID: seatID, Status: model.SeatCommitted})
	}
	res.AllSucceeded = len(res.Failed) == 0

	if s.log != nil {
		s.log.Info("booking batch finished",
			slog.Uint64("screening_id", screeningID),
			slog.String("purchaser", p.String()),
			slog.Int("requested", len(positions)),
			slog.Int("succeeded", len(res.Succeeded)),
			slog.Int("failed", len(res.Failed)))
	}
	if len(res.Succeeded) > 0 {
		s.publish(ctx, screeningID, p, res)
	}
	return res, nil
}

// seatIDAt indexes the grid with 1-based coordinates, treating anything
// outside it as no seat.
func seatIDAt(grid [][]uint64, pos model.Position) uint64 {
	if pos.Row < 1 || pos.Row > len(grid) {
		return model.NoSeat
	}
	row := grid[pos.Row-1]
	if pos.Seat < 1 || pos.Seat > len(row) {
		return model.NoSeat
	}
	return row[pos.Seat-1]
}

// publish is best effort: the seats are already booked, so a broker
// failure is logged and dropped.
func (s *BookingService) publish(ctx context.Context, screeningID uint64, p model.Purchaser, res *model.BookingResult) {
	if s.events == nil {
		return
	}
	labels := make([]string, 0, len(res.Succeeded))
	for _, pos := range res.Succeeded {
		labels = append(labels, pos.String())
	}
	ev := queue.BookingCommittedEvent{
		EventID:     uuid.NewString(),
		ScreeningID: screeningID,
		UserID:      p.UserID,
		GuestName:   p.GuestName,
		GuestEmail:  p.GuestEmail,
		SeatIDs:     res.CommittedSeatIDs(),
		SeatLabels:  labels,
		Failed:      res.Failed,
		CommittedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.events.PublishBookingCommitted(pubCtx, ev); err != nil && s.log != nil {
		s.log.Warn("publish booking event failed",
			slog.String("event_id", ev.EventID), slog.String("error", err.Error()))
	}
}
