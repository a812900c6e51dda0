package results

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Nydauron/beercan/race"
	"github.com/Nydauron/beercan/standings"
	"gonum.org/v1/gonum/stat"
)

type Options struct {
	SeriesName string
	PolicyName string
	// Now stamps the document; zero means time.Now.
	Now time.Time
	// Leaderboard adds every raw entry sorted by corrected time.
	Leaderboard bool
}

// Generate renders an engine result into the published document. entries is
// the snapshot the result was computed from.
func Generate(res *standings.Result, entries []race.Entry, opts Options) Standings {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	doc := Standings{
		Series: SeriesMetadata{
			Name:        opts.SeriesName,
			Policy:      opts.PolicyName,
			GeneratedOn: race.FormatDate(now),
			Entries:     len(entries),
		},
		Season: make([]Standing, 0, len(res.Season)),
		Heats:  make([]Heat, 0, len(res.Heats)),
	}

	place := 0
	for i, row := range res.Season {
		// Equal totals share a place.
		if i == 0 || res.Season[i-1].Points != row.Points {
			place = i + 1
		}
		doc.Season = append(doc.Season, Standing{Place: place, Skipper: row.Skipper, Points: row.Points, Races: row.Heats})
	}

	for _, h := range res.Heats {
		doc.Heats = append(doc.Heats, generateHeat(h))
	}

	for _, w := range res.Warnings {
		doc.Skipped = append(doc.Skipped, Skipped{Seq: w.Seq, Skipper: w.Skipper, Date: w.Date, Reason: w.Reason, Detail: w.Err.Error()})
	}

	if opts.Leaderboard {
		doc.Leaderboard = Leaderboard(entries)
	}
	return doc
}

func generateHeat(h standings.Heat) Heat {
	corrected := make([]float64, 0, len(h.Placings))
	out := Heat{Date: race.FormatDate(h.Date), Fleet: h.FleetSize(), Placings: make([]Placing, 0, len(h.Placings))}
	for _, p := range h.Placings {
		corrected = append(corrected, p.CorrectedMinutes)
		out.Placings = append(out.Placings, Placing{
			Rank:      p.Rank,
			Skipper:   p.Entry.Skipper,
			Boat:      p.Entry.BoatName,
			Model:     p.Entry.BoatType,
			Elapsed:   p.Entry.ElapsedMinutes,
			Corrected: round2(p.CorrectedMinutes),
			Points:    p.Points,
			Tie:       p.Tied,
			Marks:     p.Entry.Marks,
		})
		out.Conditions.Wind = appendUnique(out.Conditions.Wind, p.Entry.WindDirection)
		for _, w := range p.Entry.Weather {
			out.Conditions.Weather = appendUnique(out.Conditions.Weather, w)
		}
	}
	if len(corrected) > 0 {
		// Placings are ranked, so corrected is already sorted as Quantile needs.
		out.Fastest = round2(corrected[0])
		out.Mean = round2(stat.Mean(corrected, nil))
		out.Median = round2(stat.Quantile(0.5, stat.Empirical, corrected, nil))
	}
	return out
}

// Leaderboard lists entries fastest corrected time first. Entries without a
// usable corrected time go last in submission order.
func Leaderboard(entries []race.Entry) []Row {
	type keyed struct {
		row   Row
		value float64
		ok    bool
	}
	rows := make([]keyed, 0, len(entries))
	for _, e := range entries {
		v, err := strconv.ParseFloat(strings.TrimSpace(e.CorrectedMinutes), 64)
		ok := err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
		rows = append(rows, keyed{
			row:   Row{Date: e.Date, Skipper: e.Skipper, Boat: e.BoatName, Model: e.BoatType, Corrected: e.CorrectedMinutes},
			value: v,
			ok:    ok,
		})
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return cmp.Compare(a.value, b.value)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.row)
	}
	return out
}

func appendUnique(list []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" || slices.Contains(list, item) {
		return list
	}
	return append(list, item)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
