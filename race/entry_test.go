package race

import (
	"testing"
	"time"

	"github.com/Nydauron/beercan/handicap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestNewEntry(t *testing.T) {
	sub := Submission{
		Date:          time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		BoatName:      "V&G",
		Skipper:       " Steven Knight ",
		BoatType:      "Sirius 21",
		StartTime:     clock(t, "18:00"),
		FinishTime:    clock(t, "19:00"),
		Marks:         []string{"Island A", "North Mark", "Island A"},
		WindDirection: "SW",
		Weather:       []string{"Breezy"},
	}

	entry, err := NewEntry(sub, handicap.ShippedTable())

	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", entry.Date)
	assert.Equal(t, "Steven Knight", entry.Skipper)
	assert.Equal(t, "18:00", entry.StartTime)
	assert.Equal(t, "19:00", entry.FinishTime)
	assert.Equal(t, "60.00", entry.ElapsedMinutes)
	assert.Equal(t, "25.00", entry.CorrectedMinutes)
	assert.Equal(t, []string{"Island A", "North Mark", "Island A"}, entry.Marks)
}

func TestNewEntry_UnknownModelUsesDefaultRating(t *testing.T) {
	sub := Submission{
		Date:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		BoatName:   "Claire the Cat",
		Skipper:    "Heather Knight",
		BoatType:   "Laser",
		StartTime:  clock(t, "18:00"),
		FinishTime: clock(t, "18:44"),
	}

	entry, err := NewEntry(sub, handicap.ShippedTable())

	require.NoError(t, err)
	assert.Equal(t, "44.00", entry.ElapsedMinutes)
	assert.Equal(t, "20.00", entry.CorrectedMinutes)
}

func TestNewEntry_FinishBeforeStart(t *testing.T) {
	sub := Submission{
		Date:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		BoatName:   "V&G",
		Skipper:    "Steven Knight",
		BoatType:   "Sirius 21",
		StartTime:  clock(t, "23:30"),
		FinishTime: clock(t, "00:15"),
	}

	_, err := NewEntry(sub, handicap.ShippedTable())

	assert.ErrorIs(t, err, ErrFinishBeforeStart)
}

func TestNewEntry_MissingFields(t *testing.T) {
	_, err := NewEntry(Submission{BoatType: "Hobie 16"}, handicap.ShippedTable())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "skipper")
}

func TestNewEntry_BadRating(t *testing.T) {
	sub := Submission{
		Date:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		BoatName:   "V&G",
		Skipper:    "Steven Knight",
		BoatType:   "Sirius 21",
		StartTime:  clock(t, "18:00"),
		FinishTime: clock(t, "19:00"),
	}

	_, err := NewEntry(sub, handicap.NewTable(map[string]float64{"Sirius 21": 0}, 220))

	assert.ErrorIs(t, err, handicap.ErrInvalidConfiguration)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	for _, cell := range []string{
		"2025-06-12",
		" 2025-06-12 ",
		"2025-06-12 18:45:00",
		"2025-06-12T18:45:00Z",
		"2025-06-12T18:45:00",
		"6/12/2025",
	} {
		got, err := ParseDate(cell)
		require.NoError(t, err, cell)
		assert.True(t, want.Equal(got), "%q parsed as %v", cell, got)
	}

	for _, cell := range []string{"", "yesterday", "2025-13-01", "12.06.2025"} {
		_, err := ParseDate(cell)
		assert.Error(t, err, cell)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("18:05:30")
	require.NoError(t, err)
	assert.Equal(t, 18, c.Hour())
	assert.Equal(t, 30, c.Second())

	_, err = ParseClock("6pm")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"Island A", "Big Channel", "Island A"}, SplitList("Island A, Big Channel,Island A, "))
	assert.Equal(t, "Calm, Fog", JoinList([]string{"Calm", "Fog"}))
	assert.Equal(t, []string{"Calm", "Fog"}, SplitList(JoinList([]string{"Calm", "Fog"})))
}
