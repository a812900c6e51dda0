package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Nydauron/beercan/race"
)

// ParseCSV reads a CSV export of the entry sheet. The first row must hold
// the column headers; columns are matched by name, so their order and any
// extra columns do not matter.
func ParseCSV(r io.Reader) ([]race.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	columns, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty sheet")
		}
		return nil, err
	}
	h, err := newHeader(columns)
	if err != nil {
		return nil, err
	}

	entries := []race.Entry{}
	for row := 1; ; row++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if e, ok := h.entry(cells, row); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// WriteCSV writes entries with a header row, in the layout ParseCSV reads.
func WriteCSV(w io.Writer, entries []race.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{}, SheetColumns...)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write(Row(e)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
