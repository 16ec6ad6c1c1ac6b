package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// ScreeningRepo reads and writes screenings.  Read methods return
// ScreeningDetail so callers get the movie and hall in one round trip.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

const screeningDetailSelect = `SELECT sc.id, sc.movie_id, sc.hall_id, sc.start_time, sc.price_cents,
       m.title, m.description, m.duration_minutes,
       h.name, h.seat_rows, h.seat_cols
FROM screenings sc
JOIN movies m ON m.id = sc.movie_id
JOIN halls h  ON h.id = sc.hall_id`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreeningDetail(s rowScanner) (model.ScreeningDetail, error) {
	var d model.ScreeningDetail
	err := s.Scan(
		&d.Screening.ID, &d.Screening.MovieID, &d.Screening.HallID, &d.Screening.StartTime, &d.Screening.PriceCents,
		&d.Movie.Title, &d.Movie.Description, &d.Movie.DurationMinutes,
		&d.Hall.Name, &d.Hall.Rows, &d.Hall.SeatsPerRow,
	)
	d.Movie.ID = d.Screening.MovieID
	d.Hall.ID = d.Screening.HallID
	return d, err
}

// Create inserts a screening and sets its ID.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO screenings (movie_id, hall_id, start_time, price_cents) VALUES (?, ?, ?, ?)`,
		s.MovieID, s.HallID, s.StartTime.UTC(), s.PriceCents,
	)
	if err != nil {
		return errs.Wrap(err, "insert screening")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errs.Wrap(err, "screening last insert id")
	}
	s.ID = uint64(id)
	return nil
}

// GetDetail returns one screening with its movie and hall, or
// ErrScreeningNotFound.
func (r *ScreeningRepo) GetDetail(ctx context.Context, id uint64) (*model.ScreeningDetail, error) {
	d, err := scanScreeningDetail(r.db.QueryRowContext(ctx, screeningDetailSelect+` WHERE sc.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, errs.Wrapf(err, "get screening %d", id)
	}
	return &d, nil
}

// ListUpcoming returns screenings starting after now, earliest first.
func (r *ScreeningRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.ScreeningDetail, error) {
	return r.list(ctx, screeningDetailSelect+` WHERE sc.start_time > ? ORDER BY sc.start_time, sc.id`, now.UTC())
}

// ListByMovie returns a movie's screenings starting after now.
func (r *ScreeningRepo) ListByMovie(ctx context.Context, movieID uint64, now time.Time) ([]model.ScreeningDetail, error) {
	return r.list(ctx, screeningDetailSelect+` WHERE sc.movie_id = ? AND sc.start_time > ? ORDER BY sc.start_time, sc.id`, movieID, now.UTC())
}

func (r *ScreeningRepo) list(ctx context.Context, q string, args ...any) ([]model.ScreeningDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Wrap(err, "list screenings")
	}
	defer rows.Close()
	var out []model.ScreeningDetail
	for rows.Next() {
		d, err := scanScreeningDetail(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scan screening row")
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate screening rows")
	}
	return out, nil
}
