package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/timespec"
)

func newTimespecCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "timespec SPEC",
		Short: "Show the hours and minutes an hour:minute spec expands to",
		Example: `  rdb-retention timespec 8..17:00/30
  rdb-retention timespec "*/6:0,30"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := timespec.ParseEvent(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "hours:   %s\n", ev.Hours)
			fmt.Fprintf(stdout, "minutes: %s\n", ev.Minutes)
			return nil
		},
	}
}
