package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/logging"
)

// addGlobalFlags adds the persistent flags shared by every command.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "", "Log format: console or json")
	cmd.PersistentFlags().String("timezone", "", "Time zone for calendar buckets (IANA name, Local or UTC)")
	cmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
}

// loadConfig reads --config (or the defaults) and applies the global flag
// overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"log-level", &cfg.Logging.Level},
		{"log-format", &cfg.Logging.Format},
		{"timezone", &cfg.Archive.Timezone},
		{"output", &cfg.Output.Format},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so stdout only
// carries the report.
func newLogger(cfg *config.Config, stderr io.Writer) (logging.ZapLogger, error) {
	return logging.New(cfg.Logging, stderr)
}
