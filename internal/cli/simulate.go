package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/retention"
	"github.com/raoulx24/rdb-retention/internal/schedule"
	"github.com/raoulx24/rdb-retention/internal/timespec"
)

func newSimulateCmd(stdout, stderr io.Writer) *cobra.Command {
	var now string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Classify the backups a schedule would have produced",
		Long: `Generate the backup times of a schedule over the last weeks and classify
them, to preview what a retention policy keeps before deploying it.

Examples:
  rdb-retention simulate --schedule 8..17:00/30 --weekdays mon..fri --keep-daily 5
  rdb-retention simulate --cron "0 3 * * *" --weeks 12 --keep-weekly 4 --keep-monthly 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyPolicyFlags(cmd, cfg); err != nil {
				return err
			}
			if err := applySimulationFlags(cmd, cfg); err != nil {
				return err
			}
			loc, err := cfg.Archive.Location()
			if err != nil {
				return err
			}

			at := time.Now()
			if now != "" {
				if at, err = parseTimestamp(now, loc); err != nil {
					return fmt.Errorf("--now: %w", err)
				}
			}

			times, err := candidates(cfg.Simulation, at.In(loc))
			if err != nil {
				return err
			}
			return classifyAndRender(cfg, stdout, stderr, retention.FromTimes(times))
		},
	}
	cmd.Flags().String("schedule", "", `Backup times as hour:minute, e.g. "8..17:00/30"`)
	cmd.Flags().String("weekdays", "", "Days the schedule runs on, e.g. mon..fri (default all)")
	cmd.Flags().String("cron", "", `Standard cron expression instead of --schedule, e.g. "0 3 * * *"`)
	cmd.Flags().Int("weeks", 0, "Number of weeks to simulate (default from config, 8)")
	cmd.Flags().StringVar(&now, "now", "", "Simulate as of this time instead of the current time")
	cmd.MarkFlagsMutuallyExclusive("schedule", "cron")
	cmd.MarkFlagsMutuallyExclusive("weekdays", "cron")
	addPolicyFlags(cmd)
	return cmd
}

func applySimulationFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("schedule") {
		cfg.Simulation.Schedule, _ = flags.GetString("schedule")
		cfg.Simulation.Cron = ""
	}
	if flags.Changed("weekdays") {
		cfg.Simulation.Weekdays, _ = flags.GetString("weekdays")
	}
	if flags.Changed("cron") {
		cfg.Simulation.Cron, _ = flags.GetString("cron")
	}
	if flags.Changed("weeks") {
		weeks, _ := flags.GetInt("weeks")
		if weeks < 0 {
			return fmt.Errorf("--weeks must be >= 0, got %d", weeks)
		}
		cfg.Simulation.Weeks = weeks
	}
	return nil
}

// candidates generates the backup times of the simulation settings,
// newest first. A cron expression wins over hour:minute.
func candidates(sim config.SimulationConfig, now time.Time) ([]time.Time, error) {
	if sim.Cron != "" {
		return schedule.FromCron(sim.Cron, sim.Weeks, now)
	}

	ev, err := timespec.ParseEvent(sim.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", sim.Schedule, err)
	}
	days, err := schedule.ParseWeekdays(sim.Weekdays)
	if err != nil {
		return nil, err
	}
	return schedule.GenerateEvent(days, ev, sim.Weeks, now), nil
}
