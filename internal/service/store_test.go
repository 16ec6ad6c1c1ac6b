package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
)

// memStore is an in-memory ledger, hold store and seat catalog shared by
// the service tests.  Bookings are keyed by (screening, seat) exactly as
// the unique index does it.
type memStore struct {
	mu       sync.Mutex
	seats    map[uint64][]model.Seat // by hall
	bookings map[[2]uint64]model.Purchaser
	holds    map[[2]uint64]time.Time
	commits  int
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		seats:    map[uint64][]model.Seat{},
		bookings: map[[2]uint64]model.Purchaser{},
		holds:    map[[2]uint64]time.Time{},
	}
}

// provision adds a rows x cols hall with seat ids starting at firstID.
func (s *memStore) provision(hallID uint64, rows, cols int, firstID uint64) model.Hall {
	id := firstID
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			s.seats[hallID] = append(s.seats[hallID], model.Seat{ID: id, HallID: hallID, Row: r, Number: c})
			id++
		}
	}
	return model.Hall{ID: hallID, Name: "Test", Rows: rows, SeatsPerRow: cols}
}

func (s *memStore) TryCommit(_ context.Context, screeningID, seatID uint64, p model.Purchaser) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	key := [2]uint64{screeningID, seatID}
	if _, taken := s.bookings[key]; taken {
		return false, nil
	}
	s.bookings[key] = p
	s.commits++
	return true, nil
}

func (s *memStore) Upsert(_ context.Context, screeningID, seatID uint64, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	s.holds[[2]uint64{screeningID, seatID}] = expiresAt
	return true, nil
}

func (s *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	var n int64
	for k, exp := range s.holds {
		if !exp.After(now) {
			delete(s.holds, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) ActiveSeatIDs(_ context.Context, screeningID uint64, now time.Time) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint64
	for k, exp := range s.holds {
		if k[0] == screeningID && exp.After(now) {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

func (s *memStore) ListWithBookings(_ context.Context, hallID, screeningID uint64) ([]model.SeatOccupancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]model.SeatOccupancy, 0, len(s.seats[hallID]))
	for _, seat := range s.seats[hallID] {
		_, booked := s.bookings[[2]uint64{screeningID, seat.ID}]
		out = append(out, model.SeatOccupancy{Seat: seat, Booked: booked})
	}
	return out, nil
}

func (s *memStore) holdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holds)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingCommittedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingCommitted(_ context.Context, ev queue.BookingCommittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
