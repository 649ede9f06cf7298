package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/config"
)

var policyFlags = []struct {
	name  string
	usage string
	field func(*config.RetentionConfig) *int
}{
	{"keep-last", "Keep the N most recent backups", func(r *config.RetentionConfig) *int { return &r.KeepLast }},
	{"keep-hourly", "Keep the newest backup of the last N hours", func(r *config.RetentionConfig) *int { return &r.KeepHourly }},
	{"keep-daily", "Keep the newest backup of the last N days", func(r *config.RetentionConfig) *int { return &r.KeepDaily }},
	{"keep-weekly", "Keep the newest backup of the last N ISO weeks", func(r *config.RetentionConfig) *int { return &r.KeepWeekly }},
	{"keep-monthly", "Keep the newest backup of the last N months", func(r *config.RetentionConfig) *int { return &r.KeepMonthly }},
	{"keep-yearly", "Keep the newest backup of the last N years", func(r *config.RetentionConfig) *int { return &r.KeepYearly }},
}

func addPolicyFlags(cmd *cobra.Command) {
	for _, f := range policyFlags {
		cmd.Flags().Int(f.name, 0, f.usage)
	}
}

// applyPolicyFlags overrides the configured counts with the flags that
// were set. Negative counts are rejected.
func applyPolicyFlags(cmd *cobra.Command, cfg *config.Config) error {
	for _, f := range policyFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		n, err := cmd.Flags().GetInt(f.name)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("--%s must be >= 0, got %d", f.name, n)
		}
		*f.field(&cfg.Retention) = n
	}
	return nil
}
