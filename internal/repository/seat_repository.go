package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// SeatRepo is the seat catalog.  Seats are immutable once provisioned;
// (hall_id, row_num, seat_number) is unique.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// CreateGrid provisions every seat of a rows x seatsPerRow hall, one
// multi-row INSERT per hall row.
func (r *SeatRepo) CreateGrid(ctx context.Context, hallID uint64, rows, seatsPerRow int) error {
	if rows <= 0 || seatsPerRow <= 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?, ?),", seatsPerRow), ",")
	q := `INSERT INTO seats (hall_id, row_num, seat_number) VALUES ` + placeholders
	for row := 1; row <= rows; row++ {
		args := make([]any, 0, seatsPerRow*3)
		for n := 1; n <= seatsPerRow; n++ {
			args = append(args, hallID, row, n)
		}
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return errs.Wrapf(err, "insert seats of hall %d row %d", hallID, row)
		}
	}
	return nil
}

// ListByHall returns all seats of a hall ordered by row then number.
func (r *SeatRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hall_id, row_num, seat_number FROM seats WHERE hall_id = ? ORDER BY row_num, seat_number`,
		hallID,
	)
	if err != nil {
		return nil, errs.Wrapf(err, "list seats of hall %d", hallID)
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.HallID, &s.Row, &s.Number); err != nil {
			return nil, errs.Wrap(err, "scan seat row")
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate seat rows")
	}
	return seats, nil
}

// GetSeatID resolves a position typed by a customer to a seat id.  A
// position with no seat yields model.NoSeat and a nil error.
func (r *SeatRepo) GetSeatID(ctx context.Context, hallID uint64, row, seat int) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM seats WHERE hall_id = ? AND row_num = ? AND seat_number = ?`,
		hallID, row, seat,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NoSeat, nil
	}
	if err != nil {
		return model.NoSeat, errs.Wrapf(err, "resolve seat %d:%d in hall %d", row, seat, hallID)
	}
	return id, nil
}

// ListWithBookings returns every seat of the hall left-joined against the
// bookings of one screening.  Booked is true when a booking row exists.
func (r *SeatRepo) ListWithBookings(ctx context.Context, hallID, screeningID uint64) ([]model.SeatOccupancy, error) {
	const q = `SELECT s.id, s.hall_id, s.row_num, s.seat_number, b.id IS NOT NULL AS booked
	           FROM seats s
	           LEFT JOIN bookings b ON b.seat_id = s.id AND b.screening_id = ?
	           WHERE s.hall_id = ?
	           ORDER BY s.row_num, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, screeningID, hallID)
	if err != nil {
		return nil, errs.Wrapf(err, "seat occupancy of screening %d", screeningID)
	}
	defer rows.Close()
	var out []model.SeatOccupancy
	for rows.Next() {
		var o model.SeatOccupancy
		if err := rows.Scan(&o.Seat.ID, &o.Seat.HallID, &o.Seat.Row, &o.Seat.Number, &o.Booked); err != nil {
			return nil, errs.Wrap(err, "scan seat occupancy row")
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate seat occupancy rows")
	}
	return out, nil
}
