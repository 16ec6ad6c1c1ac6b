package service

import (
	"context"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
)

// CatalogService serves read-only movie and screening listings.
type CatalogService struct {
	movies     MovieStore
	screenings ScreeningStore
	sales      SalesCounter
	clock      clock.Clock
}

func NewCatalogService(movies MovieStore, screenings ScreeningStore, sales SalesCounter, clk clock.Clock) *CatalogService {
	return &CatalogService{movies: movies, screenings: screenings, sales: sales, clock: clk}
}

func (s *CatalogService) Movies(ctx context.Context) ([]model.Movie, error) {
	return s.movies.List(ctx)
}

func (s *CatalogService) Movie(ctx context.Context, id uint64) (*model.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// UpcomingScreenings lists screenings that have not started, earliest first.
func (s *CatalogService) UpcomingScreenings(ctx context.Context) ([]model.ScreeningDetail, error) {
	return s.screenings.ListUpcoming(ctx, s.clock.Now())
}

func (s *CatalogService) ScreeningsForMovie(ctx context.Context, movieID uint64) ([]model.ScreeningDetail, error) {
	return s.screenings.ListByMovie(ctx, movieID, s.clock.Now())
}

func (s *CatalogService) Screening(ctx context.Context, id uint64) (*model.ScreeningDetail, error) {
	return s.screenings.GetDetail(ctx, id)
}

// SeatsSold counts committed bookings of a screening.
func (s *CatalogService) SeatsSold(ctx context.Context, screeningID uint64) (int, error) {
	return s.sales.CountForScreening(ctx, screeningID)
}
