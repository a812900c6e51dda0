package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/Nydauron/beercan/race"
	"golang.org/x/net/html"
)

// ParseHTML reads the first table of an HTML export of the entry sheet (a
// published sheet or "download as web page"). Rows above the header row are
// skipped, which drops the column-letter banner sheets put on top.
func ParseHTML(r io.Reader) ([]race.Entry, error) {
	rows, err := tableRows(r)
	if err != nil {
		return nil, err
	}

	var h header
	headerRow := -1
	for i, cells := range rows {
		if candidate, err := newHeader(cells); err == nil {
			h = candidate
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return nil, fmt.Errorf("no header row found in table")
	}

	entries := []race.Entry{}
	for i, cells := range rows[headerRow+1:] {
		if e, ok := h.entry(cells, i+1); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// tableRows collects the text of every th/td cell of the first table.
func tableRows(r io.Reader) ([][]string, error) {
	z := html.NewTokenizer(r)
	rows := [][]string{}
	tableDepth := 0
	tableDone := false
	isTableRow := false
	isTableCell := false
	var row []string
	var cell strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			if tableDepth == 0 && len(rows) == 0 {
				return nil, fmt.Errorf("no table found")
			}
			return rows, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if tableDone {
				continue
			}
			switch t.Data {
			case "table":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					isTableRow = true
					row = []string{}
				}
			case "th", "td":
				if tableDepth == 1 && isTableRow {
					isTableCell = true
					cell.Reset()
				}
			case "br":
				if isTableCell {
					cell.WriteString(" ")
				}
			}
		case html.TextToken:
			if isTableCell {
				cell.Write(z.Text())
			}
		case html.EndTagToken:
			t := z.Token()
			if tableDone {
				continue
			}
			switch t.Data {
			case "th", "td":
				if isTableCell {
					row = append(row, strings.Join(strings.Fields(cell.String()), " "))
					isTableCell = false
				}
			case "tr":
				if isTableRow && tableDepth == 1 {
					rows = append(rows, row)
					isTableRow = false
				}
			case "table":
				tableDepth--
				if tableDepth == 0 {
					tableDone = true
				}
			}
		}
	}
}
