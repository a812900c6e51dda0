package standings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nydauron/beercan/race"
)

// ErrDataQuality is wrapped by the error of every Warning.
var ErrDataQuality = errors.New("data quality")

// Placing is one boat's result in a heat.
type Placing struct {
	Entry            race.Entry
	CorrectedMinutes float64
	Rank             int
	Points           int
	// Tied is set when another boat in the heat has exactly the same
	// corrected time. Tied boats keep submission order.
	Tied bool
}

// Heat is every scored entry sailed on one calendar date, fastest first.
type Heat struct {
	Date     time.Time
	Placings []Placing
}

func (h Heat) FleetSize() int {
	return len(h.Placings)
}

// Points sums the heat's points per skipper.
func (h Heat) Points() []PointsRow {
	bySkipper := map[string]int{}
	order := []string{}
	for _, p := range h.Placings {
		skipper := strings.TrimSpace(p.Entry.Skipper)
		if _, ok := bySkipper[skipper]; !ok {
			order = append(order, skipper)
		}
		bySkipper[skipper] += p.Points
	}
	rows := make([]PointsRow, 0, len(order))
	for _, skipper := range order {
		rows = append(rows, PointsRow{Skipper: skipper, Points: bySkipper[skipper], Heats: 1})
	}
	sortRows(rows)
	return rows
}

// PointsRow is a skipper's points for one heat or for the season. Heats is
// the number of heats the points were earned over.
type PointsRow struct {
	Skipper string
	Points  int
	Heats   int
}

// Warning describes an entry left out of the standings.
type Warning struct {
	Index   int
	Seq     int
	EntryID string
	Skipper string
	Date    string
	Reason  string
	Err     error
}

func (w Warning) Error() string {
	return fmt.Sprintf("entry %d (%s, %s): %s: %v", w.Seq, w.Skipper, w.Date, w.Reason, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

type Result struct {
	Heats    []Heat
	Season   []PointsRow
	Warnings []Warning
}

// Heat looks a heat up by its race date. Any cell format race.ParseDate
// understands is accepted.
func (r *Result) Heat(date string) (Heat, bool) {
	d, err := race.ParseDate(date)
	if err != nil {
		return Heat{}, false
	}
	for _, h := range r.Heats {
		if h.Date.Equal(d) {
			return h, true
		}
	}
	return Heat{}, false
}

// Skipper returns a skipper's season row.
func (r *Result) Skipper(name string) (PointsRow, bool) {
	name = strings.TrimSpace(name)
	for _, row := range r.Season {
		if row.Skipper == name {
			return row, true
		}
	}
	return PointsRow{}, false
}

func (r *Result) warn(index int, entry race.Entry, reason string, err error) {
	r.Warnings = append(r.Warnings, Warning{
		Index:   index,
		Seq:     entry.Seq,
		EntryID: entry.ID,
		Skipper: entry.Skipper,
		Date:    entry.Date,
		Reason:  reason,
		Err:     fmt.Errorf("%w: %w", ErrDataQuality, err),
	})
}
