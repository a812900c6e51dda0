package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Nydauron/beercan/race"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "entries.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndAll(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.Append(ctx, race.Entry{
		Date: "2025-06-12", BoatName: "V&G", Skipper: "Steven Knight", BoatType: "Sirius 21",
		StartTime: "18:00", FinishTime: "19:00", ElapsedMinutes: "60.00", CorrectedMinutes: "25.00",
		Marks: []string{"Island A", "South Bay", "Island A"}, WindDirection: "SW", Weather: []string{"Breezy", "Cold"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.Seq)

	second, err := s.Append(ctx, race.Entry{ID: "fixed-id", Date: "2025-06-12", Skipper: "Heather Knight", CorrectedMinutes: "bad"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", second.ID)
	assert.Equal(t, 2, second.Seq)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
	assert.Equal(t, "bad", all[1].CorrectedMinutes)
	assert.Nil(t, all[1].Marks)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAppend_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, race.Entry{ID: "dup", Date: "2025-06-12", Skipper: "A"})
	require.NoError(t, err)
	_, err = s.Append(ctx, race.Entry{ID: "dup", Date: "2025-06-12", Skipper: "B"})
	assert.Error(t, err)
}

func TestImport_AllOrNothing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, []race.Entry{
		{ID: "a", Date: "2025-06-12", Skipper: "A"},
		{ID: "a", Date: "2025-06-12", Skipper: "B"},
	})
	require.Error(t, err)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stored, err := s.Import(ctx, []race.Entry{
		{Date: "2025-06-12", Skipper: "A"},
		{Date: "2025-06-19", Skipper: "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, []int{stored[0].Seq, stored[1].Seq})
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.db")
	ctx := context.Background()

	s, err := Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	_, err = s.Append(ctx, race.Entry{Date: "2025-06-12", Skipper: "A"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
