package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/robfig/cron/v3"
)

// FromCron returns the fire times of a standard 5-field cron expression
// in (now - weeks*7 days, now], newest first. Times are computed in the
// location of now.
func FromCron(expr string, weeks int, now time.Time) ([]time.Time, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	if weeks <= 0 {
		return nil, nil
	}

	var out []time.Time
	t := now.AddDate(0, 0, -7*weeks)
	for {
		t = sched.Next(t)
		if t.IsZero() || t.After(now) {
			break
		}
		out = append(out, t)
	}
	slices.Reverse(out)
	return out, nil
}
