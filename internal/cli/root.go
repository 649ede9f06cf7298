// Package cli wires the rdb-retention commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the rdb-retention CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rdb-retention",
		Short:         "Decide which backups a keep-last/hourly/daily/weekly/monthly/yearly policy retains",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newClassifyCmd(stdout, stderr))
	cmd.AddCommand(newSimulateCmd(stdout, stderr))
	cmd.AddCommand(newTimespecCmd(stdout))
	cmd.AddCommand(newWatchCmd(stdout, stderr))

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
