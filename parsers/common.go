package parsers

import (
	"fmt"
	"strings"

	"github.com/Nydauron/beercan/race"
)

// Column headers of the entry sheet.
const (
	DATE_COL_NAME      = "Date"
	BOAT_COL_NAME      = "Boat Name"
	SKIPPER_COL_NAME   = "Skipper"
	MODEL_COL_NAME     = "Make & Model"
	START_COL_NAME     = "Start Time"
	FINISH_COL_NAME    = "Finish Time"
	ELAPSED_COL_NAME   = "Elapsed Time"
	CORRECTED_COL_NAME = "Corrected Time"
	MARKS_COL_NAME     = "Marks Rounded"
	WIND_COL_NAME      = "Wind Direction"
	WEATHER_COL_NAME   = "Weather Conditions"
	ID_COL_NAME        = "ID"
)

// SheetColumns is the column order entries are written in.
var SheetColumns = []string{
	DATE_COL_NAME, BOAT_COL_NAME, SKIPPER_COL_NAME, MODEL_COL_NAME,
	START_COL_NAME, FINISH_COL_NAME, ELAPSED_COL_NAME, CORRECTED_COL_NAME,
	MARKS_COL_NAME, WIND_COL_NAME, WEATHER_COL_NAME,
}

var columnAliases = map[string]string{
	"race date":         DATE_COL_NAME,
	"boat":              BOAT_COL_NAME,
	"model":             MODEL_COL_NAME,
	"make and model":    MODEL_COL_NAME,
	"boat type":         MODEL_COL_NAME,
	"start":             START_COL_NAME,
	"finish":            FINISH_COL_NAME,
	"elapsed":           ELAPSED_COL_NAME,
	"elapsed minutes":   ELAPSED_COL_NAME,
	"corrected":         CORRECTED_COL_NAME,
	"corrected minutes": CORRECTED_COL_NAME,
	"marks":             MARKS_COL_NAME,
	"wind":              WIND_COL_NAME,
	"weather":           WEATHER_COL_NAME,
}

var requiredColumns = []string{DATE_COL_NAME, SKIPPER_COL_NAME}

// header maps a canonical column name to its index in a row.
type header map[string]int

func newHeader(cells []string) (header, error) {
	h := header{}
	for i, cell := range cells {
		name := canonicalColumn(cell)
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func canonicalColumn(cell string) string {
	cell = strings.Trim(cell, " \ufeff")
	for _, col := range SheetColumns {
		if strings.EqualFold(cell, col) {
			return col
		}
	}
	if strings.EqualFold(cell, ID_COL_NAME) {
		return ID_COL_NAME
	}
	return columnAliases[strings.ToLower(cell)]
}

func (h header) cell(cells []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// entry builds the entry recorded in row seq. Rows with every sheet column
// blank return false.
func (h header) entry(cells []string, seq int) (race.Entry, bool) {
	blank := true
	for col := range h {
		if h.cell(cells, col) != "" {
			blank = false
			break
		}
	}
	if blank {
		return race.Entry{}, false
	}
	return race.Entry{
		ID:               h.cell(cells, ID_COL_NAME),
		Seq:              seq,
		Date:             h.cell(cells, DATE_COL_NAME),
		BoatName:         h.cell(cells, BOAT_COL_NAME),
		Skipper:          h.cell(cells, SKIPPER_COL_NAME),
		BoatType:         h.cell(cells, MODEL_COL_NAME),
		StartTime:        h.cell(cells, START_COL_NAME),
		FinishTime:       h.cell(cells, FINISH_COL_NAME),
		ElapsedMinutes:   h.cell(cells, ELAPSED_COL_NAME),
		CorrectedMinutes: h.cell(cells, CORRECTED_COL_NAME),
		Marks:            race.SplitList(h.cell(cells, MARKS_COL_NAME)),
		WindDirection:    h.cell(cells, WIND_COL_NAME),
		Weather:          race.SplitList(h.cell(cells, WEATHER_COL_NAME)),
	}, true
}

// Row renders an entry in SheetColumns order.
func Row(e race.Entry) []string {
	return []string{
		e.Date, e.BoatName, e.Skipper, e.BoatType,
		e.StartTime, e.FinishTime, e.ElapsedMinutes, e.CorrectedMinutes,
		race.JoinList(e.Marks), e.WindDirection, race.JoinList(e.Weather),
	}
}
