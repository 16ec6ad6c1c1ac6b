package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-seat-booking/internal/database"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

func newMigrateCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema (and optionally sample data)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				db  *sql.DB
				clk clock.Clock
			)
			return withApp(cmd.Context(), func() error {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				if !seed {
					return nil
				}
				res, err := database.Seed(cmd.Context(), db, clk.Now())
				if err != nil {
					return err
				}
				if res.Skipped {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog already has movies; seed skipped.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d movies, %d halls, %d seats, %d screenings.\n",
					res.Movies, res.Halls, res.Seats, res.Screenings)
				return nil
			}, &db, &clk)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert sample movies, halls and screenings into an empty catalog")
	return cmd
}

func newMoviesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var catalog *service.CatalogService
			return withApp(cmd.Context(), func() error {
				movies, err := catalog.Movies(cmd.Context())
				if err != nil {
					return err
				}
				renderMovies(cmd.OutOrStdout(), movies)
				return nil
			}, &catalog)
		},
	}
}

func newScreeningsCmd() *cobra.Command {
	var movieID uint64
	cmd := &cobra.Command{
		Use:   "screenings",
		Short: "List upcoming screenings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var catalog *service.CatalogService
			return withApp(cmd.Context(), func() error {
				var (
					list []model.ScreeningDetail
					err  error
				)
				if movieID != 0 {
					list, err = catalog.ScreeningsForMovie(cmd.Context(), movieID)
				} else {
					list, err = catalog.UpcomingScreenings(cmd.Context())
				}
				if err != nil {
					return err
				}
				renderScreenings(cmd.OutOrStdout(), list)
				return nil
			}, &catalog)
		},
	}
	cmd.Flags().Uint64Var(&movieID, "movie", 0, "only screenings of this movie id")
	return cmd
}

func newSeatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seats <screening-id>",
		Short: "Show the seat map of a screening",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScreeningID(args[0])
			if err != nil {
				return err
			}
			var (
				catalog *service.CatalogService
				layouts *service.AvailabilityService
			)
			return withApp(cmd.Context(), func() error {
				d, l, err := loadSeatMap(cmd.Context(), catalog, layouts, id)
				if err != nil {
					return err
				}
				renderSeatMap(cmd.OutOrStdout(), d, l)
				return nil
			}, &catalog, &layouts)
		},
	}
}

func parseScreeningID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.Newf("invalid screening id %q", s)
	}
	return id, nil
}

func loadSeatMap(ctx context.Context, catalog *service.CatalogService, layouts *service.AvailabilityService, id uint64) (*model.ScreeningDetail, *model.Layout, error) {
	d, err := catalog.Screening(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	l, err := layouts.BuildLayout(ctx, id, d.Hall)
	if err != nil {
		return nil, nil, err
	}
	return d, l, nil
}
