package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// BookingRepo is the booking ledger.  The bookings table carries a unique
// index on (screening_id, seat_id); every commit is a single INSERT and
// the index decides which of several concurrent writers wins.
type BookingRepo struct {
	db    *sql.DB
	clock clock.Clock
}

// NewBookingRepo returns a BookingRepo bound to db.  Booking timestamps
// come from clk.
func NewBookingRepo(db *sql.DB, clk clock.Clock) *BookingRepo {
	return &BookingRepo{db: db, clock: clk}
}

// TryCommit writes one booking row for (screeningID, seatID).  It does not
// look for an existing booking first: the insert either satisfies the
// unique index and returns true, or is rejected by a constraint and
// returns false with a nil error.  Only failures that are not integrity
// rejections (lost connection, missing table) are returned as errors.
func (r *BookingRepo) TryCommit(ctx context.Context, screeningID, seatID uint64, p model.Purchaser) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	var (
		userID     sql.NullInt64
		guestName  sql.NullString
		guestEmail sql.NullString
	)
	if p.IsGuest() {
		guestName = sql.NullString{String: p.GuestName, Valid: true}
		guestEmail = sql.NullString{String: p.GuestEmail, Valid: true}
	} else {
		userID = sql.NullInt64{Int64: int64(p.UserID), Valid: true}
	}

	const q = `INSERT INTO bookings (screening_id, seat_id, user_id, guest_name, guest_email, booked_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, screeningID, seatID, userID, guestName, guestEmail, r.clock.Now()); err != nil {
		if isIntegrityViolation(err) {
			return false, nil
		}
		return false, errs.Wrapf(err, "insert booking screening=%d seat=%d", screeningID, seatID)
	}
	return true, nil
}

// ListByUser returns every booking of a user joined with seat, screening,
// movie and hall.  Rows come back newest screening first, then in seat
// order, which is the order the history view groups them in.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	const q = `SELECT b.id, b.screening_id, b.seat_id, b.booked_at,
	                  s.hall_id, s.row_num, s.seat_number,
	                  sc.movie_id, sc.start_time, sc.price_cents,
	                  m.title, m.description, m.duration_minutes,
	                  h.name, h.seat_rows, h.seat_cols
	           FROM bookings b
	           JOIN seats s       ON s.id = b.seat_id
	           JOIN screenings sc ON sc.id = b.screening_id
	           JOIN movies m      ON m.id = sc.movie_id
	           JOIN halls h       ON h.id = sc.hall_id
	           WHERE b.user_id = ?
	           ORDER BY sc.start_time DESC, b.screening_id, s.row_num, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, errs.Wrapf(err, "list bookings of user %d", userID)
	}
	defer rows.Close()

	var out []model.BookingDetail
	for rows.Next() {
		var d model.BookingDetail
		if err := rows.Scan(
			&d.Booking.ID, &d.Booking.ScreeningID, &d.Booking.SeatID, &d.Booking.BookedAt,
			&d.Seat.HallID, &d.Seat.Row, &d.Seat.Number,
			&d.Screening.MovieID, &d.Screening.StartTime, &d.Screening.PriceCents,
			&d.Movie.Title, &d.Movie.Description, &d.Movie.DurationMinutes,
			&d.Hall.Name, &d.Hall.Rows, &d.Hall.SeatsPerRow,
		); err != nil {
			return nil, errs.Wrap(err, "scan booking row")
		}
		d.Booking.Purchaser = model.ForUser(userID)
		d.Seat.ID = d.Booking.SeatID
		d.Screening.ID = d.Booking.ScreeningID
		d.Screening.HallID = d.Seat.HallID
		d.Movie.ID = d.Screening.MovieID
		d.Hall.ID = d.Seat.HallID
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate booking rows")
	}
	return out, nil
}

// CountForScreening returns how many seats are sold for a screening.
func (r *BookingRepo) CountForScreening(ctx context.Context, screeningID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE screening_id = ?`, screeningID).Scan(&n)
	if err != nil {
		return 0, errs.Wrapf(err, "count bookings of screening %d", screeningID)
	}
	return n, nil
}
