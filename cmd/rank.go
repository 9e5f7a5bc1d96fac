package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-reservation/utils"
)

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank [YYYY-MM-DD]",
		Short: "Reorder restaurants by free tables on a date and print the ranking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			}
			date, err := utils.ParseDate(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.manager.SortRestaurantsByAvailability(date)
			if err := a.persist(ctx); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tRESTAURANT\tFREE\tTABLES")
			for i, st := range a.manager.Restaurants(date) {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i+1, st.Name, st.Available, st.TableCount)
			}
			return tw.Flush()
		},
	}
}
