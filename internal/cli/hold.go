package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

func newHoldCmd() *cobra.Command {
	var (
		seats []string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "hold <screening-id> --seat R:S [--seat R:S ...]",
		Short: "Hold seats so other customers see them as taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScreeningID(args[0])
			if err != nil {
				return err
			}
			positions, err := parsePositions(seats)
			if err != nil {
				return err
			}
			var (
				catalog *service.CatalogService
				layouts *service.AvailabilityService
				holds   *service.HoldManager
			)
			return withApp(cmd.Context(), func() error {
				_, l, err := loadSeatMap(cmd.Context(), catalog, layouts, id)
				if err != nil {
					return err
				}
				d := ttl
				if !cmd.Flags().Changed("ttl") {
					d = holds.DefaultTTL()
				}
				for _, p := range positions {
					seatID := l.SeatID(p)
					if seatID == model.NoSeat {
						fmt.Fprintf(cmd.OutOrStdout(), "%s (Invalid seat ID)\n", p)
						continue
					}
					ok, err := holds.Hold(cmd.Context(), id, seatID, d)
					if err != nil {
						return err
					}
					if ok {
						fmt.Fprintf(cmd.OutOrStdout(), "%s held for %s\n", p, d)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s could not be held\n", p)
					}
				}
				return nil
			}, &catalog, &layouts, &holds)
		},
	}
	cmd.Flags().StringArrayVar(&seats, "seat", nil, "seat as ROW:SEAT, repeatable")
	cmd.Flags().DurationVar(&ttl, "ttl", service.DefaultHoldTTL, "hold duration")
	_ = cmd.MarkFlagRequired("seat")
	return cmd
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired seat holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var holds *service.HoldManager
			return withApp(cmd.Context(), func() error {
				if err := holds.ExpireStaleHolds(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Expired holds removed.")
				return nil
			}, &holds)
		},
	}
}

func parsePositions(raw []string) ([]model.Position, error) {
	out := make([]model.Position, 0, len(raw))
	for _, s := range raw {
		p, err := model.ParsePosition(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
