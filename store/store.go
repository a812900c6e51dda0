// Package store keeps submitted race entries in SQLite, in submission order.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nydauron/beercan/race"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// Store is the durable entry sheet.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open opens (creating if needed) the entry database at path and applies the
// schema.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := absPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Debug().Str("path", absPath).Msg("entry store opened")
	return &Store{db: db, path: absPath, log: log.With().Str("component", "store").Logger()}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

const insertEntry = `INSERT INTO entries
	(id, race_date, boat_name, skipper, boat_type, start_time, finish_time,
	 elapsed_minutes, corrected_minutes, marks, wind_direction, weather, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Append records an entry and returns it with its ID and submission sequence
// filled in. Entries without an ID get a fresh UUID.
func (s *Store) Append(ctx context.Context, e race.Entry) (race.Entry, error) {
	e, err := s.insert(ctx, s.db, e)
	if err != nil {
		return race.Entry{}, err
	}
	s.log.Info().Str("id", e.ID).Int("seq", e.Seq).Str("skipper", e.Skipper).Str("date", e.Date).Msg("entry logged")
	return e, nil
}

// Import appends entries in order inside one transaction. Either all of them
// are stored or none.
func (s *Store) Import(ctx context.Context, entries []race.Entry) ([]race.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stored := make([]race.Entry, 0, len(entries))
	for i, e := range entries {
		e, err := s.insert(ctx, tx, e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		stored = append(stored, e)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	s.log.Info().Int("entries", len(stored)).Msg("entries imported")
	return stored, nil
}

func (s *Store) insert(ctx context.Context, db execer, e race.Entry) (race.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	res, err := db.ExecContext(ctx, insertEntry,
		e.ID, e.Date, e.BoatName, e.Skipper, e.BoatType, e.StartTime, e.FinishTime,
		e.ElapsedMinutes, e.CorrectedMinutes, race.JoinList(e.Marks), e.WindDirection,
		race.JoinList(e.Weather), time.Now().Unix(),
	)
	if err != nil {
		return race.Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return race.Entry{}, fmt.Errorf("failed to read entry sequence: %w", err)
	}
	e.Seq = int(seq)
	return e, nil
}

// All returns a snapshot of every entry in submission order.
func (s *Store) All(ctx context.Context) ([]race.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, id, race_date, boat_name, skipper, boat_type,
		start_time, finish_time, elapsed_minutes, corrected_minutes, marks, wind_direction, weather
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []race.Entry{}
	for rows.Next() {
		var e race.Entry
		var marks, weather string
		if err := rows.Scan(&e.Seq, &e.ID, &e.Date, &e.BoatName, &e.Skipper, &e.BoatType,
			&e.StartTime, &e.FinishTime, &e.ElapsedMinutes, &e.CorrectedMinutes,
			&marks, &e.WindDirection, &weather); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Marks = race.SplitList(marks)
		e.Weather = race.SplitList(weather)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}
