// Package report renders classified backups for people and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raoulx24/rdb-retention/internal/retention"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Document is the machine-readable form of a classification.
type Document struct {
	Policy  retention.Policy    `json:"policy" yaml:"policy"`
	Summary retention.Summary   `json:"summary" yaml:"summary"`
	Backups []*retention.Record `json:"backups" yaml:"backups"`
}

// Render writes records in the requested format. The table format ends
// with a summary line.
func Render(w io.Writer, format string, policy retention.Policy, records []*retention.Record) error {
	sum := retention.Summarize(records)
	switch format {
	case FormatTable, "":
		if err := renderTable(w, records); err != nil {
			return err
		}
		return RenderSummary(w, sum)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Document{Policy: policy, Summary: sum, Backups: records})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Document{Policy: policy, Summary: sum, Backups: records}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderTable(w io.Writer, records []*retention.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tMARK\tRULE\tORDINAL\tPATH")
	for _, r := range records {
		rule, ordinal := "-", "-"
		if r.Mark == retention.Keep {
			rule = string(r.Rule)
			if r.Ordinal > 0 {
				ordinal = strconv.Itoa(r.Ordinal)
			}
		}
		path := r.Path
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Timestamp.Format(time.RFC3339), r.Mark, rule, ordinal, path)
	}
	return tw.Flush()
}

// RenderSummary prints "kept N, removed M" followed by the kept count of
// every rule that kept something, in rule order.
func RenderSummary(w io.Writer, sum retention.Summary) error {
	line := fmt.Sprintf("kept %d, removed %d", sum.Kept, sum.Removed)
	rules := append(retention.Rules(), retention.RuleAll, retention.RulePartial)
	for _, rule := range rules {
		if n := sum.ByRule[rule]; n > 0 {
			line += fmt.Sprintf(", %s %d", rule, n)
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
