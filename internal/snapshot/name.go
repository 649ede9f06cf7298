package snapshot

import "time"

// NameLayout is the layout snapshot directories are written with.
const NameLayout = "2006-01-02T15-04-05"

var zonedLayouts = []string{
	time.RFC3339,
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
}

var localLayouts = []string{
	NameLayout,
	"2006-01-02T15:04:05",
	"20060102T150405",
}

// ParseName extracts the timestamp a snapshot entry is named after. Names
// without a zone are read in loc. The result is truncated to seconds.
func ParseName(name string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, name); err == nil {
			return t.Truncate(time.Second), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, name, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatName is the inverse of ParseName for NameLayout.
func FormatName(t time.Time) string {
	return t.Format(NameLayout)
}
