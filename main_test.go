package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const sheet = "Date,Boat Name,Skipper,Make & Model,Start Time,Finish Time,Elapsed Time,Corrected Time\n" +
	"2025-06-12,V&G,Steven Knight,Sirius 21,18:00,19:00,60.00,25.00\n"

func TestReadEntries_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0644))

	entries, err := readEntries(path, true, zerolog.Nop())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Steven Knight", entries[0].Skipper)
}

func TestReadEntries_URL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sheet))
	}))
	defer ts.Close()

	entries, err := readEntries(ts.URL, true, zerolog.Nop())

	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadEntries_ExitCodes(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := readEntries(filepath.Join(t.TempDir(), "missing.csv"), true, zerolog.Nop())
	assertExitCode(t, err, exitInput)

	_, err = readEntries(ts.URL, false, zerolog.Nop())
	assertExitCode(t, err, exitInput)

	path := filepath.Join(t.TempDir(), "no-skipper.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Boat Name\n2025-06-12,V&G\n"), 0644))
	_, err = readEntries(path, true, zerolog.Nop())
	assertExitCode(t, err, exitParsing)
}

func TestEncodeDocument(t *testing.T) {
	doc := map[string]int{"points": 3}

	var yamlOut bytes.Buffer
	require.NoError(t, encodeDocument(&yamlOut, "yaml", doc))
	assert.Equal(t, "points: 3\n", yamlOut.String())

	var jsonOut bytes.Buffer
	require.NoError(t, encodeDocument(&jsonOut, "json", doc))
	assert.JSONEq(t, `{"points":3}`, jsonOut.String())

	assertExitCode(t, encodeDocument(&bytes.Buffer{}, "toml", doc), exitConfiguration)
}

func TestWithRequired(t *testing.T) {
	f := &cli.StringFlag{Name: inputFlag}

	r := withRequired(f)

	assert.True(t, r.Required)
	assert.False(t, f.Required)
}

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, code, exit.ExitCode())
}
