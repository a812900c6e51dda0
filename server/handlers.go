package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Nydauron/beercan/handicap"
	"github.com/Nydauron/beercan/race"
	"github.com/Nydauron/beercan/results"
	"github.com/Nydauron/beercan/standings"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// entryRequest is the JSON form submission.
type entryRequest struct {
	Date          string   `json:"date"`
	BoatName      string   `json:"boat"`
	Skipper       string   `json:"skipper"`
	BoatType      string   `json:"model"`
	StartTime     string   `json:"start"`
	FinishTime    string   `json:"finish"`
	Marks         []string `json:"marks"`
	WindDirection string   `json:"wind"`
	Weather       []string `json:"weather"`
}

func (req entryRequest) submission(today string) (race.Submission, error) {
	dateCell := req.Date
	if strings.TrimSpace(dateCell) == "" {
		dateCell = today
	}
	date, err := race.ParseDate(dateCell)
	if err != nil {
		return race.Submission{}, err
	}
	start, err := race.ParseClock(req.StartTime)
	if err != nil {
		return race.Submission{}, err
	}
	finish, err := race.ParseClock(req.FinishTime)
	if err != nil {
		return race.Submission{}, err
	}
	return race.Submission{
		Date:          date,
		BoatName:      req.BoatName,
		Skipper:       req.Skipper,
		BoatType:      req.BoatType,
		StartTime:     start,
		FinishTime:    finish,
		Marks:         req.Marks,
		WindDirection: req.WindDirection,
		Weather:       req.Weather,
	}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cfg.Store.All(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read entries")
		s.writeError(w, http.StatusInternalServerError, "failed to read entries")
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sub, err := req.submission(race.FormatDate(s.cfg.Now()))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry, err := race.NewEntry(sub, s.cfg.Table)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, handicap.ErrInvalidConfiguration) {
			status = http.StatusInternalServerError
		}
		s.writeError(w, status, err.Error())
		return
	}
	entry, err = s.cfg.Store.Append(r.Context(), entry)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to store entry")
		s.writeError(w, http.StatusInternalServerError, "failed to store entry")
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

// compute scores a fresh snapshot of the store.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) ([]race.Entry, *standings.Result, bool) {
	entries, err := s.cfg.Store.All(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read entries")
		s.writeError(w, http.StatusInternalServerError, "failed to read entries")
		return nil, nil, false
	}
	res, err := s.cfg.Engine.Compute(entries)
	if err != nil {
		s.log.Error().Err(err).Msg("Standings computation failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return entries, res, true
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	entries, res, ok := s.compute(w, r)
	if !ok {
		return
	}
	doc := results.Generate(res, entries, results.Options{
		SeriesName:  s.cfg.SeriesName,
		PolicyName:  s.cfg.PolicyName,
		Now:         s.cfg.Now(),
		Leaderboard: r.URL.Query().Get("leaderboard") == "true",
	})
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			s.log.Error().Err(err).Msg("Failed to encode YAML response")
		}
		if err := enc.Close(); err != nil {
			s.log.Error().Err(err).Msg("Failed to finish YAML response")
		}
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleHeat(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := race.ParseDate(date); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, res, ok := s.compute(w, r)
	if !ok {
		return
	}
	heat, found := res.Heat(date)
	if !found {
		s.writeError(w, http.StatusNotFound, "no heat sailed on "+date)
		return
	}
	doc := results.Generate(&standings.Result{Heats: []standings.Heat{heat}}, entries, results.Options{Now: s.cfg.Now()})
	s.writeJSON(w, http.StatusOK, doc.Heats[0])
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cfg.Store.All(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read entries")
		s.writeError(w, http.StatusInternalServerError, "failed to read entries")
		return
	}
	s.writeJSON(w, http.StatusOK, results.Leaderboard(entries))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
