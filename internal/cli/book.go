package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

type bookOptions struct {
	seats       []string
	guestName   string
	guestEmail  string
	username    string
	password    string
	interactive bool
}

func newBookCmd() *cobra.Command {
	var o bookOptions
	cmd := &cobra.Command{
		Use:   "book [screening-id] --seat R:S ... (--guest-name N --guest-email E | --username U --password P)",
		Short: "Book seats as a guest or a registered user",
		Long: `Book one to ten seats of a screening.  Each seat is booked on its own:
seats that are free are booked even when others in the same request fail.
With -i the screening, seats and identity are chosen interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				catalog  *service.CatalogService
				layouts  *service.AvailabilityService
				bookings *service.BookingService
				auth     *service.AuthService
			)
			return withApp(cmd.Context(), func() error {
				ctx := cmd.Context()
				id, err := o.screening(ctx, catalog, args)
				if err != nil {
					return err
				}
				d, l, err := loadSeatMap(ctx, catalog, layouts, id)
				if err != nil {
					return err
				}
				if o.interactive {
					renderSeatMap(cmd.OutOrStdout(), d, l)
				}
				positions, err := o.positions()
				if err != nil {
					return err
				}
				purchaser, err := o.purchaser(ctx, auth)
				if err != nil {
					return err
				}
				res, err := bookings.BookSeats(ctx, id, positions, l.SeatIDs, purchaser)
				if err != nil {
					return err
				}
				renderBookingResult(cmd.OutOrStdout(), res)
				return nil
			}, &catalog, &layouts, &bookings, &auth)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&o.seats, "seat", nil, "seat as ROW:SEAT, repeatable")
	f.StringVar(&o.guestName, "guest-name", "", "guest name")
	f.StringVar(&o.guestEmail, "guest-email", "", "guest email")
	f.StringVar(&o.username, "username", "", "book as this registered user")
	f.StringVar(&o.password, "password", "", "password of --username")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "choose screening, seats and identity with prompts")
	cmd.MarkFlagsMutuallyExclusive("guest-name", "username")
	cmd.MarkFlagsMutuallyExclusive("guest-email", "username")
	return cmd
}

func (o *bookOptions) screening(ctx context.Context, catalog *service.CatalogService, args []string) (uint64, error) {
	if len(args) == 1 {
		return parseScreeningID(args[0])
	}
	if !o.interactive {
		return 0, errs.New("screening id is required without -i")
	}
	list, err := catalog.UpcomingScreenings(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, errs.New("no upcoming screenings")
	}
	items := make([]string, 0, len(list))
	for _, d := range list {
		items = append(items, fmt.Sprintf("#%d %s | %s | %s | %s",
			d.Screening.ID, d.Movie.Title, d.Hall.Name,
			d.Screening.StartTime.UTC().Format("Mon 02 Jan 15:04"), model.FormatPrice(d.Screening.PriceCents)))
	}
	sel := promptui.Select{Label: "Select screening", Items: items, Size: 10}
	i, _, err := sel.Run()
	if err != nil {
		return 0, err
	}
	return list[i].Screening.ID, nil
}

func (o *bookOptions) positions() ([]model.Position, error) {
	if len(o.seats) > 0 || !o.interactive {
		return parsePositions(o.seats)
	}
	prompt := promptui.Prompt{
		Label: "Seats (e.g. 1:2 1:3)",
		Validate: func(in string) error {
			fields := strings.Fields(in)
			if len(fields) == 0 {
				return errs.New("enter at least one seat")
			}
			_, err := parsePositions(fields)
			return err
		},
	}
	in, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return parsePositions(strings.Fields(in))
}

// purchaser resolves who the booking is for.  A username logs in; guest
// flags build a guest.  Interactive mode prompts for whatever is missing.
func (o *bookOptions) purchaser(ctx context.Context, auth *service.AuthService) (model.Purchaser, error) {
	if o.interactive && o.username == "" && o.guestName == "" {
		sel := promptui.Select{Label: "Book as", Items: []string{"Guest", "Registered user"}}
		i, _, err := sel.Run()
		if err != nil {
			return model.Purchaser{}, err
		}
		if i == 1 {
			if o.username, err = (&promptui.Prompt{Label: "Username"}).Run(); err != nil {
				return model.Purchaser{}, err
			}
		} else {
			if o.guestName, err = (&promptui.Prompt{Label: "Name"}).Run(); err != nil {
				return model.Purchaser{}, err
			}
		}
	}
	if o.username != "" {
		if o.password == "" {
			if !o.interactive {
				return model.Purchaser{}, errs.New("--password is required with --username")
			}
			pw, err := (&promptui.Prompt{Label: "Password", Mask: '*'}).Run()
			if err != nil {
				return model.Purchaser{}, err
			}
			o.password = pw
		}
		u, err := auth.Login(ctx, o.username, o.password)
		if err != nil {
			return model.Purchaser{}, err
		}
		return model.ForUser(u.ID), nil
	}
	if o.interactive && o.guestEmail == "" {
		email, err := (&promptui.Prompt{Label: "Email"}).Run()
		if err != nil {
			return model.Purchaser{}, err
		}
		o.guestEmail = email
	}
	p := model.ForGuest(o.guestName, o.guestEmail)
	return p, p.Validate()
}
