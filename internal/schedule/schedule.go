// Package schedule synthesizes the timestamps a backup job would have
// produced over the last few weeks, newest first.
package schedule

import (
	"sort"
	"time"

	"github.com/raoulx24/rdb-retention/internal/timespec"
)

// Generate returns every instant in the last weeks*7 days (counting the day
// of now as day 0) that falls on one of days at one of hours:minutes and is
// not after now. The result is strictly descending.
//
// Clock times that do not exist on a day, because a daylight saving change
// skips them, are left out. A clock time that occurs twice is emitted once.
func Generate(days Weekdays, hours, minutes timespec.Set, weeks int, now time.Time) []time.Time {
	if weeks <= 0 || hours.Empty() || minutes.Empty() {
		return nil
	}

	// times of day, latest first
	type clock struct{ hour, minute int }
	var clocks []clock
	for _, h := range hours.Values() {
		for _, m := range minutes.Values() {
			clocks = append(clocks, clock{h, m})
		}
	}
	sort.Slice(clocks, func(i, j int) bool {
		if clocks[i].hour != clocks[j].hour {
			return clocks[i].hour > clocks[j].hour
		}
		return clocks[i].minute > clocks[j].minute
	})

	loc := now.Location()
	var out []time.Time
	for day := 0; day < 7*weeks; day++ {
		date := now.AddDate(0, 0, -day)
		if !days[date.Weekday()] {
			continue
		}
		y, m, d := date.Date()
		for _, c := range clocks {
			ts := time.Date(y, m, d, c.hour, c.minute, 0, 0, loc)
			if ts.After(now) {
				continue
			}
			// time.Date moves a skipped clock time past the gap
			if ts.Hour() != c.hour || ts.Minute() != c.minute {
				continue
			}
			if n := len(out); n > 0 && !ts.Before(out[n-1]) {
				continue
			}
			out = append(out, ts)
		}
	}
	return out
}

// GenerateEvent is Generate with the hours and minutes of a parsed event.
func GenerateEvent(days Weekdays, ev timespec.Event, weeks int, now time.Time) []time.Time {
	return Generate(days, ev.Hours, ev.Minutes, weeks, now)
}
