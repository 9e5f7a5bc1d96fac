// Package cmd wires the reservation manager, its store and the HTTP API into
// the table-reservation command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "table-reservation",
		Short:         "Restaurant table reservations: HTTP API, bulk loading and booking from the shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newFreeCmd())
	root.AddCommand(newRankCmd())
	root.AddCommand(newUserCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
