package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/Nydauron/beercan/parsers"
	"github.com/Nydauron/beercan/race"
	"github.com/rs/zerolog"
)

const (
	exitInput         = 2
	exitEncoding      = 3
	exitParsing       = 4
	exitConfiguration = 5
)

// openInput opens a spreadsheet export given as a URL or a file path.
func openInput(location string, log zerolog.Logger) (io.ReadCloser, error) {
	if u, err := url.ParseRequestURI(location); err == nil && u.Scheme != "" && u.Host != "" {
		log.Info().Str("url", u.String()).Msg("URL detected")
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("error occurred when trying to fetch page: %w", err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("invalid HTTP status code received: %v", resp.Status)
		}
		contentType := resp.Header.Get("content-type")
		if !strings.HasPrefix(contentType, "text/html") && !strings.HasPrefix(contentType, "text/csv") {
			log.Warn().Str("content_type", contentType).Msg("Page content received is neither HTML nor CSV")
		}
		return resp.Body, nil
	}
	if f, err := os.Open(location); err == nil {
		log.Info().Str("path", location).Msg("File detected")
		return f, nil
	}
	return nil, fmt.Errorf("provided input was neither a valid URL or a path to existing file: %v", location)
}

// readEntries loads entries from an export, exiting with the input or parsing
// code on failure.
func readEntries(location string, isCSV bool, log zerolog.Logger) ([]race.Entry, error) {
	body, err := openInput(location, log)
	if err != nil {
		return nil, exitError(exitInput, err)
	}
	defer body.Close()

	var entries []race.Entry
	if isCSV {
		entries, err = parsers.ParseCSV(body)
	} else {
		entries, err = parsers.ParseHTML(body)
	}
	if err != nil {
		return nil, exitError(exitParsing, fmt.Errorf("failed to parse entry sheet: %w", err))
	}
	log.Info().Int("entries", len(entries)).Msg("Entry sheet loaded")
	return entries, nil
}
