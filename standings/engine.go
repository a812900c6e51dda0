package standings

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Nydauron/beercan/handicap"
	"github.com/Nydauron/beercan/race"
	"github.com/rs/zerolog"
)

// Fleet sizes checked when an engine is built. Compute still checks every
// awarded score.
const policyProbeFleet = 20

type Engine struct {
	table  *handicap.Table
	policy Policy
	log    zerolog.Logger
}

func NewEngine(table *handicap.Table, policy Policy, log zerolog.Logger) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: no points policy", handicap.ErrInvalidConfiguration)
	}
	for fleetSize := 1; fleetSize <= policyProbeFleet; fleetSize++ {
		for rank := 1; rank <= fleetSize; rank++ {
			if err := checkPoints(policy(fleetSize, rank), fleetSize, rank); err != nil {
				return nil, err
			}
		}
	}
	return &Engine{table: table, policy: policy, log: log.With().Str("component", "standings").Logger()}, nil
}

func checkPoints(points, fleetSize, rank int) error {
	if points < 0 {
		return fmt.Errorf("%w: points policy gave %d points to rank %d of %d", handicap.ErrInvalidConfiguration, points, rank, fleetSize)
	}
	return nil
}

type candidate struct {
	entry     race.Entry
	corrected float64
	index     int
}

// Compute ranks every heat in entries and totals the season. Entries that
// cannot be scored are left out and reported in Result.Warnings. A points
// policy that misbehaves fails the whole computation; no partial result is
// returned.
func (e *Engine) Compute(entries []race.Entry) (*Result, error) {
	res := &Result{}
	heats := map[string][]candidate{}
	dates := map[string]time.Time{}

	for i, entry := range entries {
		date, err := race.ParseDate(entry.Date)
		if err != nil {
			res.warn(i, entry, "unparseable race date", err)
			continue
		}
		if strings.TrimSpace(entry.Skipper) == "" {
			res.warn(i, entry, "missing skipper", errors.New("skipper is empty"))
			continue
		}
		corrected, reason, err := e.correctedMinutes(entry)
		if err != nil {
			if errors.Is(err, handicap.ErrInvalidConfiguration) {
				return nil, err
			}
			res.warn(i, entry, reason, err)
			continue
		}
		key := race.FormatDate(date)
		dates[key] = date
		heats[key] = append(heats[key], candidate{entry: entry, corrected: corrected, index: i})
	}

	for _, w := range res.Warnings {
		e.log.Debug().Int("seq", w.Seq).Str("skipper", w.Skipper).Str("reason", w.Reason).Err(w.Err).Msg("entry skipped")
	}

	keys := make([]string, 0, len(heats))
	for key := range heats {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		heat, err := e.rankHeat(dates[key], heats[key])
		if err != nil {
			return nil, err
		}
		e.log.Debug().Str("date", key).Int("fleet", heat.FleetSize()).Msg("heat scored")
		res.Heats = append(res.Heats, heat)
	}

	res.Season = aggregate(res.Heats)
	return res, nil
}

func (e *Engine) rankHeat(date time.Time, boats []candidate) (Heat, error) {
	ranked := slices.Clone(boats)
	slices.SortStableFunc(ranked, func(a, b candidate) int {
		if c := cmp.Compare(a.corrected, b.corrected); c != 0 {
			return c
		}
		if c := cmp.Compare(a.entry.Seq, b.entry.Seq); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	fleetSize := len(ranked)
	heat := Heat{Date: date, Placings: make([]Placing, 0, fleetSize)}
	for i, c := range ranked {
		rank := i + 1
		points := e.policy(fleetSize, rank)
		if err := checkPoints(points, fleetSize, rank); err != nil {
			return Heat{}, err
		}
		tied := (i > 0 && ranked[i-1].corrected == c.corrected) ||
			(i+1 < fleetSize && ranked[i+1].corrected == c.corrected)
		heat.Placings = append(heat.Placings, Placing{
			Entry:            c.entry,
			CorrectedMinutes: c.corrected,
			Rank:             rank,
			Points:           points,
			Tied:             tied,
		})
	}
	return heat, nil
}

// correctedMinutes returns the corrected time of an entry. An empty corrected
// cell is recomputed from the elapsed cell.
func (e *Engine) correctedMinutes(entry race.Entry) (float64, string, error) {
	elapsedCell := strings.TrimSpace(entry.ElapsedMinutes)
	var elapsed float64
	hasElapsed := false
	if elapsedCell != "" {
		if v, err := strconv.ParseFloat(elapsedCell, 64); err == nil {
			if !finiteNonNegative(v) {
				return 0, "invalid elapsed time", fmt.Errorf("elapsed minutes %q must be finite and non-negative", elapsedCell)
			}
			elapsed, hasElapsed = v, true
		}
	}

	cell := strings.TrimSpace(entry.CorrectedMinutes)
	if cell == "" {
		if !hasElapsed {
			return 0, "missing corrected time", errors.New("neither corrected nor elapsed minutes recorded")
		}
		corrected, err := handicap.Correct(elapsed, entry.BoatType, e.table)
		if err != nil {
			return 0, "corrected time not computable", err
		}
		return corrected, "", nil
	}

	corrected, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, "unparseable corrected time", fmt.Errorf("corrected minutes %q: %w", cell, err)
	}
	if !finiteNonNegative(corrected) {
		return 0, "invalid corrected time", fmt.Errorf("corrected minutes %q must be finite and non-negative", cell)
	}
	return corrected, "", nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func aggregate(heats []Heat) []PointsRow {
	totals := map[string]*PointsRow{}
	for _, heat := range heats {
		for _, row := range heat.Points() {
			total, ok := totals[row.Skipper]
			if !ok {
				total = &PointsRow{Skipper: row.Skipper}
				totals[row.Skipper] = total
			}
			total.Points += row.Points
			total.Heats++
		}
	}

	season := make([]PointsRow, 0, len(totals))
	for _, row := range totals {
		season = append(season, *row)
	}
	sortRows(season)
	return season
}

// sortRows orders by points descending, then skipper name ascending.
func sortRows(rows []PointsRow) {
	slices.SortFunc(rows, func(a, b PointsRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Skipper, b.Skipper)
	})
}
