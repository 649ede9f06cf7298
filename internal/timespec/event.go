package timespec

import (
	"fmt"
	"strings"
)

// Event is a parsed hour:minute specification.
type Event struct {
	Hours   Set
	Minutes Set
}

// ParseEvent parses "hours:minutes", e.g. "8..17:00/30". The separator is
// checked before either half is parsed.
func ParseEvent(spec string) (Event, error) {
	hourExpr, minuteExpr, ok := strings.Cut(spec, ":")
	if !ok || strings.Contains(minuteExpr, ":") ||
		strings.TrimSpace(hourExpr) == "" || strings.TrimSpace(minuteExpr) == "" {
		return Event{}, &MissingSeparatorError{Spec: spec}
	}

	hours, err := Parse(hourExpr, 0, 23)
	if err != nil {
		return Event{}, fmt.Errorf("hour: %w", err)
	}
	minutes, err := Parse(minuteExpr, 0, 59)
	if err != nil {
		return Event{}, fmt.Errorf("minute: %w", err)
	}

	return Event{Hours: hours, Minutes: minutes}, nil
}

func (e Event) String() string {
	return e.Hours.String() + ":" + e.Minutes.String()
}
