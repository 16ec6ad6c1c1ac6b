package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// SeatHoldRepo keeps seat holds in the seat_holds table, which has a
// unique key on (screening_id, seat_id).  Expiry comparisons use the time
// passed in by the caller, always UTC, so the database clock is never
// consulted.
type SeatHoldRepo struct {
	db *sql.DB
}

// NewSeatHoldRepo returns a new SeatHoldRepo bound to the provided database.
func NewSeatHoldRepo(db *sql.DB) *SeatHoldRepo { return &SeatHoldRepo{db: db} }

// holdTime brings t to the DATETIME(6) precision of seat_holds.expires_at
// so that the stored expiry never lands after the instant it was written
// for.  Writes and comparisons both go through it.
func holdTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Upsert creates the hold for (screeningID, seatID) or overwrites the
// expiry of the existing one.  It never checks whether another session
// holds the seat.  A foreign key rejection (unknown screening or seat)
// yields false with a nil error.
func (r *SeatHoldRepo) Upsert(ctx context.Context, screeningID, seatID uint64, expiresAt time.Time) (bool, error) {
	const q = `INSERT INTO seat_holds (screening_id, seat_id, expires_at)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE expires_at = VALUES(expires_at)`
	if _, err := r.db.ExecContext(ctx, q, screeningID, seatID, holdTime(expiresAt)); err != nil {
		if isIntegrityViolation(err) {
			return false, nil
		}
		return false, errs.Wrapf(err, "upsert hold screening=%d seat=%d", screeningID, seatID)
	}
	return true, nil
}

// DeleteExpired removes every hold whose expiry is at or before now and
// reports how many rows went away.
func (r *SeatHoldRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat_holds WHERE expires_at <= ?`, holdTime(now))
	if err != nil {
		return 0, errs.Wrap(err, "delete expired holds")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errs.Wrap(err, "expired holds rows affected")
	}
	return n, nil
}

// ActiveSeatIDs lists the seats of a screening whose hold expires after now.
func (r *SeatHoldRepo) ActiveSeatIDs(ctx context.Context, screeningID uint64, now time.Time) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id FROM seat_holds WHERE screening_id = ? AND expires_at > ?`,
		screeningID, holdTime(now),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "list holds of screening %d", screeningID)
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Wrap(err, "scan hold row")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate hold rows")
	}
	return ids, nil
}
