package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-reservation/utils"
)

func newFreeCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "free [YYYY-MM-DD]",
		Short: "List free tables for a date (default today)",
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

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			n := 0
			for label := range a.manager.FindAllFreeTables(date) {
				if limit > 0 && n == limit {
					break
				}
				fmt.Fprintln(out, label)
				n++
			}
			return nil
		},
	}

	c.Flags().IntVar(&limit, "limit", 0, "stop after this many tables (0 for all)")
	return c
}
