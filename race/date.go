package race

import (
	"fmt"
	"strings"
	"time"
)

const ClockLayout = "15:04"

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006",
	"1/2/2006 15:04:05",
}

// ParseDate reads a race date cell and returns midnight UTC of that calendar
// day. Any time-of-day component is dropped so that entries from the same day
// always land in the same heat.
func ParseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", cell)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseClock reads a wall-clock time such as 18:05 or 18:05:30.
func ParseClock(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range []string{ClockLayout, time.TimeOnly} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q, expected HH:MM", cell)
}
