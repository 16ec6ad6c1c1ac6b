package service

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
)

// Ledger is the durable store of bookings.  TryCommit must be a single
// atomic write guarded by a (screening, seat) uniqueness rule: it returns
// false when the store rejects the row and an error only when the store
// itself failed.
type Ledger interface {
	TryCommit(ctx context.Context, screeningID, seatID uint64, p model.Purchaser) (bool, error)
}

// HoldStore persists seat holds.  Upsert replaces any existing hold for
// the pair; DeleteExpired removes holds with expiry at or before now.
type HoldStore interface {
	Upsert(ctx context.Context, screeningID, seatID uint64, expiresAt time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ActiveSeatIDs(ctx context.Context, screeningID uint64, now time.Time) ([]uint64, error)
}

// SeatCatalog lists a hall's seats joined with one screening's bookings.
type SeatCatalog interface {
	ListWithBookings(ctx context.Context, hallID, screeningID uint64) ([]model.SeatOccupancy, error)
}

// EventPublisher delivers booking events to the message broker.
type EventPublisher interface {
	PublishBookingCommitted(ctx context.Context, ev queue.BookingCommittedEvent) error
}

// BookingHistoryStore returns a user's bookings joined with catalog data.
type BookingHistoryStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
}

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, role string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// MovieStore and ScreeningStore back the catalog.
type MovieStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

type ScreeningStore interface {
	GetDetail(ctx context.Context, id uint64) (*model.ScreeningDetail, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]model.ScreeningDetail, error)
	ListByMovie(ctx context.Context, movieID uint64, now time.Time) ([]model.ScreeningDetail, error)
}

// SalesCounter counts booked seats of a screening.
type SalesCounter interface {
	CountForScreening(ctx context.Context, screeningID uint64) (int, error)
}
