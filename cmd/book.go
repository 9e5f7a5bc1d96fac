package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

var errNotAvailable = errors.New("table is not available")

func newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book <restaurant> <YYYY-MM-DD> <table>",
		Short: "Book one table for one date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := utils.ParseDate(args[1])
			if err != nil {
				return err
			}
			table, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid table number %q", args[2])
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			a.manager.AddBookingListener(services.NewBookingRecorder(a.store, nil))
			if !a.manager.BookTable(args[0], date, table) {
				return fmt.Errorf("%s on %s: %w", reservation.Label(args[0], table), date.Format(utils.DateLayout), errNotAvailable)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booked %s on %s\n", reservation.Label(args[0], table), date.Format(utils.DateLayout))
			return nil
		},
	}
}
