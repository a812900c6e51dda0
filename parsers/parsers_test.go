package parsers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Nydauron/beercan/race"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetCSV = `Date,Boat Name,Skipper,Make & Model,Start Time,Finish Time,Elapsed Time,Corrected Time,Marks Rounded,Wind Direction,Weather Conditions
2025-06-12,V&G,Steven Knight,Sirius 21,18:00,19:00,60.0,25.0,"Island A, North Mark, Island A",SW,"Breezy, Cold"
,,,,,,,,,,
2025-06-12,Claire the Cat,Heather Knight,Hobie 16,18:00,19:05,65.0,30.23,South Bay,SW,Breezy
`

func TestParseCSV(t *testing.T) {
	entries, err := ParseCSV(strings.NewReader(sheetCSV))

	require.NoError(t, err)
	require.Len(t, entries, 2)
	first := entries[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, "2025-06-12", first.Date)
	assert.Equal(t, "V&G", first.BoatName)
	assert.Equal(t, "Sirius 21", first.BoatType)
	assert.Equal(t, "25.0", first.CorrectedMinutes)
	assert.Equal(t, []string{"Island A", "North Mark", "Island A"}, first.Marks)
	assert.Equal(t, []string{"Breezy", "Cold"}, first.Weather)
	assert.Equal(t, 3, entries[1].Seq)
	assert.Equal(t, "Heather Knight", entries[1].Skipper)
}

func TestParseCSV_ColumnsByName(t *testing.T) {
	input := "Notes,skipper,Corrected,race date\nwet,Steven Knight,25.5,2025-06-12\n"

	entries, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Steven Knight", entries[0].Skipper)
	assert.Equal(t, "25.5", entries[0].CorrectedMinutes)
	assert.Equal(t, "2025-06-12", entries[0].Date)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Boat Name,Corrected Time\nV&G,25\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date")
	assert.Contains(t, err.Error(), "Skipper")

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	entries := []race.Entry{{
		Seq: 1, Date: "2025-06-12", BoatName: "V&G", Skipper: "Steven Knight", BoatType: "Sirius 21",
		StartTime: "18:00", FinishTime: "19:00", ElapsedMinutes: "60.00", CorrectedMinutes: "25.00",
		Marks: []string{"Island A", "Island B"}, WindDirection: "N", Weather: []string{"Calm"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))
	parsed, err := ParseCSV(&buf)

	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

const sheetHTML = `<html><body>
<table class="waffle">
<thead><tr><th></th><th>A</th><th>B</th><th>C</th><th>D</th></tr></thead>
<tbody>
<tr><th>1</th><td>Date</td><td>Boat Name</td><td>Skipper</td><td>Corrected Time</td></tr>
<tr><th>2</th><td>2025-06-12</td><td>V&amp;G</td><td>Steven   Knight</td><td>25.00</td></tr>
<tr><th>3</th><td></td><td></td><td></td><td></td></tr>
<tr><th>4</th><td>2025-06-12</td><td>Claire the Cat</td><td>Heather Knight</td><td>DNF</td></tr>
</tbody>
</table>
<table><tr><td>Date</td><td>Skipper</td></tr><tr><td>2030-01-01</td><td>Nobody</td></tr></table>
</body></html>`

func TestParseHTML(t *testing.T) {
	entries, err := ParseHTML(strings.NewReader(sheetHTML))

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "V&G", entries[0].BoatName)
	assert.Equal(t, "Steven Knight", entries[0].Skipper)
	assert.Equal(t, "25.00", entries[0].CorrectedMinutes)
	assert.Equal(t, "DNF", entries[1].CorrectedMinutes)
	assert.Equal(t, 3, entries[1].Seq)
}

func TestParseHTML_NoTable(t *testing.T) {
	_, err := ParseHTML(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	assert.Error(t, err)

	_, err = ParseHTML(strings.NewReader("<table><tr><td>a</td></tr></table>"))
	assert.Error(t, err)
}
