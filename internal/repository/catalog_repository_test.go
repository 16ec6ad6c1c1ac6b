package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

func TestGetSeatIDMissingSeatIsSentinel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT id FROM seats").WithArgs(uint64(1), 11, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, err := NewSeatRepo(db).GetSeatID(context.Background(), 1, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, model.NoSeat, id)
}

func TestListWithBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("LEFT JOIN bookings b ON b.seat_id = s.id AND b.screening_id = \\?").
		WithArgs(uint64(5), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hall_id", "row_num", "seat_number", "booked"}).
			AddRow(10, 1, 1, 1, true).
			AddRow(11, 1, 1, 2, false))

	got, err := NewSeatRepo(db).ListWithBookings(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.SeatOccupancy{
		{Seat: model.Seat{ID: 10, HallID: 1, Row: 1, Number: 1}, Booked: true},
		{Seat: model.Seat{ID: 11, HallID: 1, Row: 1, Number: 2}, Booked: false},
	}, got)
}

func TestCreateGridInsertsOneStatementPerRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("INSERT INTO seats").WithArgs(uint64(4), 1, 1, uint64(4), 1, 2).WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO seats").WithArgs(uint64(4), 2, 1, uint64(4), 2, 2).WillReturnResult(sqlmock.NewResult(3, 2))

	require.NoError(t, NewSeatRepo(db).CreateGrid(context.Background(), 4, 2, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHallNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("FROM halls").WithArgs(uint64(9)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewHallRepo(db).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestScreeningGetDetail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	start := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM screenings sc").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "movie_id", "hall_id", "start_time", "price_cents",
			"title", "description", "duration_minutes", "name", "seat_rows", "seat_cols",
		}).AddRow(5, 8, 1, start, 12500, "Arrival", "", 116, "Hall B", 8, 10))

	d, err := NewScreeningRepo(db).GetDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.Hall{ID: 1, Name: "Hall B", Rows: 8, SeatsPerRow: 10}, d.Hall)
	assert.Equal(t, uint64(8), d.Movie.ID)
	assert.Equal(t, start, d.Screening.StartTime)

	mock.ExpectQuery("FROM screenings sc").WithArgs(uint64(6)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = NewScreeningRepo(db).GetDetail(context.Background(), 6)
	assert.ErrorIs(t, err, ErrScreeningNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("INSERT INTO users").WithArgs("alice", "hash", model.RoleCustomer).
		WillReturnError(&mysql.MySQLError{Number: mysqlErrDupEntry, Message: "Duplicate entry 'alice'"})

	_, err = NewUserRepo(db).Create(context.Background(), " alice ", "hash", model.RoleCustomer)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("FROM users WHERE username").WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewUserRepo(db).GetByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLookupErrorsCarryStack(t *testing.T) {
	wrapped := errs.Wrapf(ErrScreeningNotFound, "load screening %d", 7)
	assert.ErrorIs(t, wrapped, ErrScreeningNotFound)
	assert.Greater(t, len(errs.StackLines(ErrUserNotFound, 0)), 1)
}
