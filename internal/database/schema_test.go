package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAppliesEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	for range schema {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaKeepsBookingUniqueness(t *testing.T) {
	var bookings string
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS bookings") {
			bookings = stmt
		}
	}
	require.NotEmpty(t, bookings)
	assert.Contains(t, bookings, "UNIQUE KEY uq_bookings_screening_seat (screening_id, seat_id)")
}

func TestSchemaStoresHoldExpiryInMicroseconds(t *testing.T) {
	var holds string
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS seat_holds") {
			holds = stmt
		}
	}
	require.NotEmpty(t, holds)
	assert.Contains(t, holds, "expires_at   DATETIME(6)")
}

func TestSeedSkipsPopulatedCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM movies").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	res, err := Seed(context.Background(), db, time.Now())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPopulatesEmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM movies").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for i := range sampleMovies {
		mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	for i, h := range sampleHalls {
		mock.ExpectExec("INSERT INTO halls").WithArgs(h.Name, h.Rows, h.SeatsPerRow).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		for r := 0; r < h.Rows; r++ {
			mock.ExpectExec("INSERT INTO seats").WillReturnResult(sqlmock.NewResult(1, int64(h.SeatsPerRow)))
		}
	}
	mock.ExpectExec("INSERT INTO screenings").WithArgs(uint64(1), uint64(1), now.Add(24*time.Hour), int64(9500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO screenings").WithArgs(uint64(2), uint64(2), now.Add(48*time.Hour), int64(12500)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO screenings").WithArgs(uint64(3), uint64(1), now.Add(27*time.Hour), int64(10000)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	res, err := Seed(context.Background(), db, now)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Movies: 3, Halls: 2, Seats: 200, Screenings: 3}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}
