package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts m and sets its ID.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (title, description, duration_minutes) VALUES (?, ?, ?)`,
		m.Title, m.Description, m.DurationMinutes,
	)
	if err != nil {
		return errs.Wrapf(err, "insert movie %q", m.Title)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errs.Wrap(err, "movie last insert id")
	}
	m.ID = uint64(id)
	return nil
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, duration_minutes FROM movies ORDER BY title`)
	if err != nil {
		return nil, errs.Wrap(err, "list movies")
	}
	defer rows.Close()
	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes); err != nil {
			return nil, errs.Wrap(err, "scan movie row")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate movie rows")
	}
	return out, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, duration_minutes FROM movies WHERE id = ?`, id,
	).Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, errs.Wrapf(err, "get movie %d", id)
	}
	return &m, nil
}

// Count is used by seeding to detect an already populated catalog.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, errs.Wrap(err, "count movies")
	}
	return n, nil
}
