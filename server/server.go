// Package server exposes entry submission and standings over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Nydauron/beercan/handicap"
	"github.com/Nydauron/beercan/race"
	"github.com/Nydauron/beercan/standings"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// EntryStore is the entry sheet the server reads and appends to.
type EntryStore interface {
	Append(ctx context.Context, e race.Entry) (race.Entry, error)
	All(ctx context.Context) ([]race.Entry, error)
}

type Config struct {
	Port       int
	SeriesName string
	PolicyName string
	Table      *handicap.Table
	Engine     *standings.Engine
	Store      EntryStore
	Log        zerolog.Logger
	// Now is used for the default race date and document stamps.
	Now func() time.Time
}

type Server struct {
	cfg    Config
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

func New(cfg Config) *Server {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleCreateEntry)
		r.Get("/standings", s.handleStandings)
		r.Get("/heats/{date}", s.handleHeat)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
