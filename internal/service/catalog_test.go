package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

type fakeCatalog struct {
	movies     []model.Movie
	screenings []model.ScreeningDetail
	sold       map[uint64]int
	lastNow    time.Time
}

func (f *fakeCatalog) List(context.Context) ([]model.Movie, error) { return f.movies, nil }

func (f *fakeCatalog) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	for i := range f.movies {
		if f.movies[i].ID == id {
			return &f.movies[i], nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeCatalog) GetDetail(_ context.Context, id uint64) (*model.ScreeningDetail, error) {
	for i := range f.screenings {
		if f.screenings[i].Screening.ID == id {
			return &f.screenings[i], nil
		}
	}
	return nil, repository.ErrScreeningNotFound
}

func (f *fakeCatalog) ListUpcoming(_ context.Context, now time.Time) ([]model.ScreeningDetail, error) {
	f.lastNow = now
	var out []model.ScreeningDetail
	for _, s := range f.screenings {
		if !s.Screening.StartTime.Before(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListByMovie(ctx context.Context, movieID uint64, now time.Time) ([]model.ScreeningDetail, error) {
	all, _ := f.ListUpcoming(ctx, now)
	var out []model.ScreeningDetail
	for _, s := range all {
		if s.Screening.MovieID == movieID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountForScreening(_ context.Context, id uint64) (int, error) {
	return f.sold[id], nil
}

func TestCatalogUsesClockForUpcoming(t *testing.T) {
	fc := &fakeCatalog{
		movies: []model.Movie{{ID: 1, Title: "Arrival"}, {ID: 2, Title: "Heat"}},
		screenings: []model.ScreeningDetail{
			{Screening: model.Screening{ID: 10, MovieID: 1, StartTime: t0.Add(-time.Hour)}},
			{Screening: model.Screening{ID: 11, MovieID: 1, StartTime: t0.Add(time.Hour)}},
			{Screening: model.Screening{ID: 12, MovieID: 2, StartTime: t0.Add(2 * time.Hour)}},
		},
		sold: map[uint64]int{11: 4},
	}
	svc := NewCatalogService(fc, fc, fc, clock.NewMockClock(t0))
	ctx := context.Background()

	movies, err := svc.Movies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	up, err := svc.UpcomingScreenings(ctx)
	require.NoError(t, err)
	assert.Len(t, up, 2)
	assert.Equal(t, t0, fc.lastNow)

	forMovie, err := svc.ScreeningsForMovie(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forMovie, 1)
	assert.Equal(t, uint64(11), forMovie[0].Screening.ID)

	sold, err := svc.SeatsSold(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 4, sold)

	_, err = svc.Screening(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrScreeningNotFound)
	_, err = svc.Movie(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrMovieNotFound)
}
