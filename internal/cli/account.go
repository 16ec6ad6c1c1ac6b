package cli

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/receipt"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

func newRegisterCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "register --username U [--password P]",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := (&promptui.Prompt{Label: "Password", Mask: '*'}).Run()
				if err != nil {
					return err
				}
				password = pw
			}
			var auth *service.AuthService
			return withApp(cmd.Context(), func() error {
				u, err := auth.Register(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d).\n", u.Username, u.ID)
				return nil
			}, &auth)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account name, at least 3 characters")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 6 characters; prompted when omitted")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newBookingsCmd() *cobra.Command {
	var username, password, receiptPath string
	cmd := &cobra.Command{
		Use:   "bookings --username U --password P [--receipt file.pdf]",
		Short: "Show a user's bookings grouped by screening",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				return errs.New("--password is required")
			}
			var (
				auth    *service.AuthService
				history *service.HistoryService
				clk     clock.Clock
			)
			return withApp(cmd.Context(), func() error {
				u, err := auth.Login(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				h, err := history.ForUser(cmd.Context(), u.ID)
				if err != nil {
					return err
				}
				renderHistory(cmd.OutOrStdout(), h)
				if receiptPath == "" {
					return nil
				}
				pdf, err := receipt.Render(u.Username, h, clk.Now())
				if err != nil {
					return err
				}
				if err := os.WriteFile(receiptPath, pdf, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Receipt written to %s\n", receiptPath)
				return nil
			}, &auth, &history, &clk)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account name")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&receiptPath, "receipt", "", "also write a PDF receipt to this path")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
