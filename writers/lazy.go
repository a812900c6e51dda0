package writers

import (
	"io"
	"os"
)

// StdoutName is the output location that means standard output.
const StdoutName = "-"

// LazyWriteCloser delays opening its destination until the first write, so a
// command that fails before producing output leaves no empty file behind.
type LazyWriteCloser struct {
	open   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// NewLazyWriteCloser creates a LazyWriteCloser. open is called once, on the
// first Write.
func NewLazyWriteCloser(open func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{open: open}
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		w, err := f.open()
		if err != nil {
			return 0, err
		}
		f.writer = w
	}
	return f.writer.Write(p)
}

// Opened reports whether the destination has been opened.
func (f *LazyWriteCloser) Opened() bool {
	return f.writer != nil
}

func (f *LazyWriteCloser) Close() error {
	if f.writer == nil {
		return nil
	}
	return f.writer.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Output resolves a CLI output location: "-" is stdout (never closed), any
// other value is a file truncated on first write.
func Output(location string) io.WriteCloser {
	if location == StdoutName {
		return nopCloser{os.Stdout}
	}
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}
