package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/fs"
	"github.com/raoulx24/rdb-retention/internal/report"
	"github.com/raoulx24/rdb-retention/internal/retention"
	"github.com/raoulx24/rdb-retention/internal/snapshot"
)

func newClassifyCmd(stdout, stderr io.Writer) *cobra.Command {
	var fromFile, dir string
	cmd := &cobra.Command{
		Use:   "classify [TIMESTAMP...]",
		Short: "Label backups as keep or remove under a retention policy",
		Long: `Classify backups given as timestamps, read from a file or found in an
archive directory. Nothing is deleted; the command only reports which
backups the policy keeps and why.

Examples:
  rdb-retention classify --keep-daily 7 2024-01-02T10:00:00Z 2024-01-01T10:00:00Z
  rdb-retention classify --keep-last 3 --keep-weekly 4 --from-file backups.txt
  rdb-retention classify --config retention.yaml --dir /srv/redis/archive -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyPolicyFlags(cmd, cfg); err != nil {
				return err
			}
			// the configured archive is the fallback input
			if dir == "" && len(args) == 0 && fromFile == "" {
				dir = cfg.Archive.Path
			}
			if dir == "" && len(args) == 0 && fromFile == "" {
				return errors.New("no backups given: pass timestamps, --from-file or --dir")
			}
			loc, err := cfg.Archive.Location()
			if err != nil {
				return err
			}

			records, err := gatherRecords(cmdContext(cmd), args, fromFile, dir, loc)
			if err != nil {
				return err
			}
			return classifyAndRender(cfg, stdout, stderr, records)
		},
	}
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read timestamps from a file, one per line (- for stdin)")
	cmd.Flags().StringVar(&dir, "dir", "", "Classify the snapshots of an archive directory")
	addPolicyFlags(cmd)
	return cmd
}

// gatherRecords collects records from arguments, a file and an archive
// scan, in that order.
func gatherRecords(ctx context.Context, args []string, fromFile, dir string, loc *time.Location) ([]*retention.Record, error) {
	var times []time.Time
	for _, a := range args {
		ts, err := parseTimestamp(a, loc)
		if err != nil {
			return nil, err
		}
		times = append(times, ts)
	}

	if fromFile != "" {
		fileTimes, err := readTimestampFile(fromFile, loc)
		if err != nil {
			return nil, err
		}
		times = append(times, fileTimes...)
	}

	records := retention.FromTimes(times)
	if dir != "" {
		snaps, err := snapshot.Scan(ctx, fs.New(), dir, loc)
		if err != nil {
			return nil, err
		}
		records = append(records, snapshot.Records(snaps)...)
	}
	return records, nil
}

// parseTimestamp accepts RFC 3339, the archive naming layouts and
// "2006-01-02 15:04:05". Timestamps without a zone are read in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, ok := snapshot.ParseName(s, loc); ok {
		return ts, nil
	}
	for _, layout := range []string{time.DateTime, "2006-01-02 15:04", time.DateOnly} {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func readTimestampFile(path string, loc *time.Location) ([]time.Time, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var times []time.Time
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ts, err := parseTimestamp(text, loc)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		times = append(times, ts)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return times, nil
}

// classifyAndRender runs the records through an engine built from cfg and
// writes the report.
func classifyAndRender(cfg *config.Config, stdout, stderr io.Writer, records []*retention.Record) error {
	log, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer log.Sync()

	engine, err := retention.New(cfg, log)
	if err != nil {
		return err
	}
	if _, err := engine.Apply(records); err != nil {
		return err
	}
	return report.Render(stdout, cfg.Output.Format, engine.Policy(), records)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
