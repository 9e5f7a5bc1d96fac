package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>...",
		Short: `Append restaurants from "name,tableCount" files`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			for _, path := range args {
				report, err := a.manager.LoadRestaurantsFromFile(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d added, %d skipped\n", path, report.Added, len(report.Skipped))
				for _, s := range report.Skipped {
					fmt.Fprintf(out, "  line %d: %q (%s)\n", s.Line, s.Text, s.Reason)
				}
			}
			return a.persist(ctx)
		},
	}
}
