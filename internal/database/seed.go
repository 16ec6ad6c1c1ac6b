package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

var sampleMovies = []model.Movie{
	{Title: "Demon Slayer: Kimetsu no Yaiba Infinity Castle", Description: "The Demon Slayer Corps faces Muzan Kibutsuji inside the Infinity Castle.", DurationMinutes: 155},
	{Title: "Ternet Ninja 3", Description: "Aske and his vengeful checkered ninja doll are back.", DurationMinutes: 88},
	{Title: "Bring Her Back", Description: "Two orphaned siblings are placed with a new foster mother.", DurationMinutes: 104},
}

var sampleHalls = []model.Hall{
	{Name: "Hall A", Rows: 10, SeatsPerRow: 12},
	{Name: "Hall B", Rows: 8, SeatsPerRow: 10},
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Skipped    bool
	Movies     int
	Halls      int
	Seats      int
	Screenings int
}

// Seed fills an empty catalog with sample movies, two halls with every
// seat provisioned, and three screenings relative to now.  It does
// nothing when any movie already exists.
func Seed(ctx context.Context, db *sql.DB, now time.Time) (SeedResult, error) {
	movies := repository.NewMovieRepo(db)
	n, err := movies.Count(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if n > 0 {
		return SeedResult{Skipped: true}, nil
	}

	var res SeedResult
	movieIDs := make([]uint64, 0, len(sampleMovies))
	for _, m := range sampleMovies {
		m := m
		if err := movies.Create(ctx, &m); err != nil {
			return res, err
		}
		movieIDs = append(movieIDs, m.ID)
		res.Movies++
	}

	halls := repository.NewHallRepo(db)
	seats := repository.NewSeatRepo(db)
	hallIDs := make([]uint64, 0, len(sampleHalls))
	for _, h := range sampleHalls {
		h := h
		if err := halls.Create(ctx, &h); err != nil {
			return res, err
		}
		if err := seats.CreateGrid(ctx, h.ID, h.Rows, h.SeatsPerRow); err != nil {
			return res, err
		}
		hallIDs = append(hallIDs, h.ID)
		res.Halls++
		res.Seats += h.Capacity()
	}

	screenings := repository.NewScreeningRepo(db)
	day := 24 * time.Hour
	plan := []model.Screening{
		{MovieID: movieIDs[0], HallID: hallIDs[0], StartTime: now.Add(day), PriceCents: 9500},
		{MovieID: movieIDs[1], HallID: hallIDs[1], StartTime: now.Add(2 * day), PriceCents: 12500},
		{MovieID: movieIDs[2], HallID: hallIDs[0], StartTime: now.Add(day + 3*time.Hour), PriceCents: 10000},
	}
	for _, s := range plan {
		s := s
		if err := screenings.Create(ctx, &s); err != nil {
			return res, errs.Wrap(err, "seed screenings")
		}
		res.Screenings++
	}
	return res, nil
}
