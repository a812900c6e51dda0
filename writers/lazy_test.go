package writers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyWriteCloser_OpensOnFirstWrite(t *testing.T) {
	calls := 0
	path := filepath.Join(t.TempDir(), "standings.yaml")
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) {
		calls++
		return os.Create(path)
	})

	assert.False(t, w.Opened())
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = w.Write([]byte("a"))
	require.NoError(t, err)
	_, err = w.Write([]byte("b"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 1, calls)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}

func TestLazyWriteCloser_CloseWithoutWrite(t *testing.T) {
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) {
		t.Fatal("open must not be called")
		return nil, nil
	})
	assert.NoError(t, w.Close())
}

func TestLazyWriteCloser_OpenError(t *testing.T) {
	boom := errors.New("boom")
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) { return nil, boom })

	n, err := w.Write([]byte("x"))

	assert.Zero(t, n)
	assert.ErrorIs(t, err, boom)
	assert.False(t, w.Opened())
}

func TestOutput_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous document"), 0644))

	w := Output(path)
	_, err := w.Write([]byte("short"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestOutput_Stdout(t *testing.T) {
	w := Output(StdoutName)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
