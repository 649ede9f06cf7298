package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays flags the days a schedule runs on, indexed by time.Weekday.
type Weekdays [7]bool

// AllWeekdays runs every day.
var AllWeekdays = Weekdays{true, true, true, true, true, true, true}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names and
// ranges such as "mon..fri,sun". Ranges may wrap ("sat..mon"). An empty
// string or "*" selects every day.
func ParseWeekdays(spec string) (Weekdays, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "*" {
		return AllWeekdays, nil
	}

	var days Weekdays
	for _, term := range strings.Split(spec, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		fromName, toName, isRange := strings.Cut(term, "..")
		from, err := lookupWeekday(fromName)
		if err != nil {
			return Weekdays{}, err
		}
		if !isRange {
			days[from] = true
			continue
		}
		to, err := lookupWeekday(toName)
		if err != nil {
			return Weekdays{}, err
		}
		for d := from; ; d = (d + 1) % 7 {
			days[d] = true
			if d == to {
				break
			}
		}
	}
	return days, nil
}

func lookupWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.TrimSpace(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return d, nil
}

// String renders the selected days Monday first, e.g. "mon,tue,sun".
func (w Weekdays) String() string {
	var names []string
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if w[d] {
			names = append(names, strings.ToLower(d.String()[:3]))
		}
	}
	return strings.Join(names, ",")
}

// Any reports whether at least one day is selected.
func (w Weekdays) Any() bool {
	for _, on := range w {
		if on {
			return true
		}
	}
	return false
}
