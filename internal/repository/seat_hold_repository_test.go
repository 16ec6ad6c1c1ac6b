package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeatHoldRepo(t *testing.T) (*SeatHoldRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSeatHoldRepo(db), mock
}

func TestUpsertHoldOverwritesExpiry(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	exp := fixedNow.Add(5 * time.Minute)
	mock.ExpectExec("INSERT INTO seat_holds .* ON DUPLICATE KEY UPDATE expires_at").
		WithArgs(uint64(3), uint64(41), exp).
		WillReturnResult(sqlmock.NewResult(0, 2))

	ok, err := repo.Upsert(context.Background(), 3, 41, exp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldTimesUseColumnPrecision(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	written := fixedNow.Add(700*time.Millisecond + 5*time.Microsecond + 789*time.Nanosecond)
	sweep := written.Add(100 * time.Nanosecond)
	stored := fixedNow.Add(700*time.Millisecond + 5*time.Microsecond)

	mock.ExpectExec("INSERT INTO seat_holds").
		WithArgs(uint64(3), uint64(41), stored).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM seat_holds WHERE expires_at <= ?").
		WithArgs(stored).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Upsert(context.Background(), 3, 41, written)
	require.NoError(t, err)
	n, err := repo.DeleteExpired(context.Background(), sweep)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHoldUnknownSeat(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	mock.ExpectExec("INSERT INTO seat_holds").
		WillReturnError(&mysql.MySQLError{Number: mysqlErrNoReferencedRow})

	ok, err := repo.Upsert(context.Background(), 3, 999, fixedNow)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteExpiredHolds(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	mock.ExpectExec("DELETE FROM seat_holds WHERE expires_at <= ?").
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM seat_holds WHERE expires_at <= ?").
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteExpired(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = repo.DeleteExpired(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredHoldsPropagatesFailure(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	down := errors.New("connection refused")
	mock.ExpectExec("DELETE FROM seat_holds").WillReturnError(down)

	_, err := repo.DeleteExpired(context.Background(), fixedNow)
	assert.ErrorIs(t, err, down)
}

func TestActiveSeatIDs(t *testing.T) {
	repo, mock := newSeatHoldRepo(t)
	mock.ExpectQuery("SELECT seat_id FROM seat_holds WHERE screening_id = \\? AND expires_at > \\?").
		WithArgs(uint64(3), fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(41).AddRow(42))

	ids, err := repo.ActiveSeatIDs(context.Background(), 3, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []uint64{41, 42}, ids)
}
