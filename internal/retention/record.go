package retention

import (
	"fmt"
	"sort"
	"time"
)

// Mark is the verdict on a single backup.
type Mark int

const (
	Unmarked Mark = iota
	Keep
	Remove
)

func (m Mark) String() string {
	switch m {
	case Keep:
		return "keep"
	case Remove:
		return "remove"
	default:
		return "unmarked"
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case "keep":
		*m = Keep
	case "remove":
		*m = Remove
	case "unmarked", "":
		*m = Unmarked
	default:
		return fmt.Errorf("unknown mark %q", text)
	}
	return nil
}

// Record is one backup being classified. Classify fills Mark, Rule and
// Ordinal; Path and Partial are carried through untouched.
type Record struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Path      string    `json:"path,omitempty" yaml:"path,omitempty"`
	Partial   bool      `json:"partial,omitempty" yaml:"partial,omitempty"` // backup never completed
	Mark      Mark      `json:"mark" yaml:"mark"`
	Rule      Rule      `json:"rule,omitempty" yaml:"rule,omitempty"`
	Ordinal   int       `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
}

func (r *Record) String() string {
	ts := r.Timestamp.Format("2006-01-02T15:04:05")
	if r.Mark != Keep {
		return ts + " " + r.Mark.String()
	}
	if r.Ordinal == 0 {
		return fmt.Sprintf("%s keep %s", ts, r.Rule)
	}
	return fmt.Sprintf("%s keep %s#%d", ts, r.Rule, r.Ordinal)
}

func (r *Record) reset() {
	r.Mark = Unmarked
	r.Rule = ""
	r.Ordinal = 0
}

// FromTimes wraps raw instants into unmarked records, preserving order.
func FromTimes(times []time.Time) []*Record {
	records := make([]*Record, len(times))
	for i, t := range times {
		records[i] = &Record{Timestamp: t}
	}
	return records
}

// SortDescending orders records newest first.
func SortDescending(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}
