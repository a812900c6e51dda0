package race

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nydauron/beercan/handicap"
)

var ErrFinishBeforeStart = errors.New("finish time is before start time")

// Entry is one submitted race result as it is recorded in the entry sheet.
// Numeric and date cells are kept as recorded text: a hand-edited sheet can
// hold anything, and the standings engine decides what is usable.
type Entry struct {
	ID               string   `yaml:"id,omitempty" json:"id,omitempty"`
	Seq              int      `yaml:"seq" json:"seq"`
	Date             string   `yaml:"date" json:"date"`
	BoatName         string   `yaml:"boat" json:"boat"`
	Skipper          string   `yaml:"skipper" json:"skipper"`
	BoatType         string   `yaml:"model" json:"model"`
	StartTime        string   `yaml:"start" json:"start"`
	FinishTime       string   `yaml:"finish" json:"finish"`
	ElapsedMinutes   string   `yaml:"elapsed" json:"elapsed"`
	CorrectedMinutes string   `yaml:"corrected" json:"corrected"`
	Marks            []string `yaml:"marks,omitempty" json:"marks,omitempty"`
	WindDirection    string   `yaml:"wind,omitempty" json:"wind,omitempty"`
	Weather          []string `yaml:"weather,omitempty" json:"weather,omitempty"`
}

// Submission is a filled-in entry form.
type Submission struct {
	Date          time.Time
	BoatName      string
	Skipper       string
	BoatType      string
	StartTime     time.Time
	FinishTime    time.Time
	Marks         []string
	WindDirection string
	Weather       []string
}

// Validate checks the fields every entry needs.
func (s Submission) Validate() error {
	var missing []string
	if s.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(s.BoatName) == "" {
		missing = append(missing, "boat")
	}
	if strings.TrimSpace(s.Skipper) == "" {
		missing = append(missing, "skipper")
	}
	if strings.TrimSpace(s.BoatType) == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Elapsed returns the sailing time between start and finish on the race date.
// Finishing after midnight is not supported.
func (s Submission) Elapsed() (time.Duration, error) {
	start := onDate(s.Date, s.StartTime)
	finish := onDate(s.Date, s.FinishTime)
	if finish.Before(start) {
		return 0, fmt.Errorf("%w: start %s, finish %s", ErrFinishBeforeStart, s.StartTime.Format(ClockLayout), s.FinishTime.Format(ClockLayout))
	}
	return finish.Sub(start), nil
}

// NewEntry builds the recorded entry for a submission: elapsed and corrected
// minutes are computed and rounded to two decimals.
func NewEntry(s Submission, table *handicap.Table) (Entry, error) {
	if err := s.Validate(); err != nil {
		return Entry{}, err
	}
	elapsed, err := s.Elapsed()
	if err != nil {
		return Entry{}, err
	}
	elapsedMinutes := elapsed.Minutes()
	corrected, err := handicap.Correct(elapsedMinutes, s.BoatType, table)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Date:             FormatDate(s.Date),
		BoatName:         strings.TrimSpace(s.BoatName),
		Skipper:          strings.TrimSpace(s.Skipper),
		BoatType:         strings.TrimSpace(s.BoatType),
		StartTime:        s.StartTime.Format(ClockLayout),
		FinishTime:       s.FinishTime.Format(ClockLayout),
		ElapsedMinutes:   FormatMinutes(elapsedMinutes),
		CorrectedMinutes: FormatMinutes(corrected),
		Marks:            s.Marks,
		WindDirection:    s.WindDirection,
		Weather:          s.Weather,
	}, nil
}

func FormatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', 2, 64)
}

func onDate(date, clock time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

const listSeparator = ", "

// JoinList renders a multi-select answer as a single sheet cell.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// SplitList is the inverse of JoinList. Repeated items are kept: a mark can
// be rounded more than once.
func SplitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
