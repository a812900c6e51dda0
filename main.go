package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nydauron/beercan/config"
	"github.com/Nydauron/beercan/handicap"
	"github.com/Nydauron/beercan/logger"
	"github.com/Nydauron/beercan/parsers"
	"github.com/Nydauron/beercan/prompts"
	"github.com/Nydauron/beercan/race"
	"github.com/Nydauron/beercan/results"
	"github.com/Nydauron/beercan/server"
	"github.com/Nydauron/beercan/standings"
	"github.com/Nydauron/beercan/store"
	"github.com/Nydauron/beercan/ui"
	"github.com/Nydauron/beercan/writers"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	configFlag      = "config"
	dbFlag          = "db"
	logLevelFlag    = "log-level"
	inputFlag       = "input"
	outputFlag      = "output"
	csvFlag         = "csv"
	policyFlag      = "policy"
	formatFlag      = "format"
	leaderboardFlag = "leaderboard"
	plainFlag       = "plain"
	portFlag        = "port"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func exitError(code int, err error) error {
	return cli.Exit(err.Error(), code)
}

// app is what every command needs: configuration and a logger.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func setup(cCtx *cli.Context) (*app, error) {
	cfg, err := config.Load(cCtx.String(configFlag))
	if err != nil {
		return nil, exitError(exitConfiguration, err)
	}
	if db := cCtx.String(dbFlag); db != "" {
		cfg.Database = db
	}
	if level := cCtx.String(logLevelFlag); level != "" {
		cfg.LogLevel = level
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.PrettyLogs})
	logger.SetGlobalLogger(log)
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, a.cfg.Database, a.log)
	if err != nil {
		return nil, exitError(exitInput, err)
	}
	return s, nil
}

func (a *app) engine(policyName string) (*standings.Engine, string, error) {
	if policyName == "" {
		policyName = a.cfg.PointsPolicy
	}
	policy, err := standings.PolicyByName(policyName)
	if err != nil {
		return nil, "", exitError(exitConfiguration, err)
	}
	engine, err := standings.NewEngine(a.cfg.HandicapTable(), policy, a.log)
	if err != nil {
		return nil, "", exitError(exitConfiguration, err)
	}
	return engine, policyName, nil
}

func standingsAction(cCtx *cli.Context) error {
	a, err := setup(cCtx)
	if err != nil {
		return err
	}
	engine, policyName, err := a.engine(cCtx.String(policyFlag))
	if err != nil {
		return err
	}

	var entries []race.Entry
	if input := cCtx.String(inputFlag); input != "" {
		entries, err = readEntries(input, cCtx.Bool(csvFlag), a.log)
		if err != nil {
			return err
		}
	} else {
		s, err := a.openStore(cCtx.Context)
		if err != nil {
			return err
		}
		defer s.Close()
		if entries, err = s.All(cCtx.Context); err != nil {
			return exitError(exitInput, err)
		}
	}

	res, err := engine.Compute(entries)
	if err != nil {
		if errors.Is(err, handicap.ErrInvalidConfiguration) {
			return exitError(exitConfiguration, err)
		}
		return err
	}
	for _, w := range res.Warnings {
		a.log.Warn().Int("seq", w.Seq).Str("skipper", w.Skipper).Str("reason", w.Reason).Msg("Entry skipped")
	}

	doc := results.Generate(res, entries, results.Options{
		SeriesName:  a.cfg.Series,
		PolicyName:  policyName,
		Leaderboard: cCtx.Bool(leaderboardFlag),
	})

	out := writers.Output(cCtx.String(outputFlag))
	defer out.Close()
	return encodeDocument(out, cCtx.String(formatFlag), &doc)
}

func encodeDocument(w io.Writer, format string, doc any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return exitError(exitEncoding, fmt.Errorf("encoding to JSON failed: %w", err))
		}
		return nil
	case "", "yaml":
		yamlEncoder := yaml.NewEncoder(w)
		yamlEncoder.SetIndent(2)
		if err := yamlEncoder.Encode(doc); err != nil {
			return exitError(exitEncoding, fmt.Errorf("encoding to YAML failed: %w", err))
		}
		if err := yamlEncoder.Close(); err != nil {
			return exitError(exitEncoding, fmt.Errorf("encoding to YAML failed on close: %w", err))
		}
		return nil
	}
	return exitError(exitConfiguration, fmt.Errorf("unknown output format %q", format))
}

func logAction(cCtx *cli.Context) error {
	a, err := setup(cCtx)
	if err != nil {
		return err
	}
	table := a.cfg.HandicapTable()
	boatTypes := table.BoatTypes()

	var sub race.Submission
	if cCtx.Bool(plainFlag) {
		sub, err = prompts.NewPrompter(os.Stdin, os.Stderr).EntryFormPrompt(boatTypes)
	} else {
		sub, err = ui.RunEntryForm(os.Stdin, os.Stderr, boatTypes, time.Now())
	}
	if errors.Is(err, ui.ErrCancelled) || errors.Is(err, prompts.ErrNoInput) {
		a.log.Info().Msg("Entry form cancelled, nothing recorded")
		return nil
	}
	if err != nil {
		return exitError(exitInput, err)
	}

	entry, err := race.NewEntry(sub, table)
	if err != nil {
		return exitError(exitInput, err)
	}

	s, err := a.openStore(cCtx.Context)
	if err != nil {
		return err
	}
	defer s.Close()
	entry, err = s.Append(cCtx.Context, entry)
	if err != nil {
		return exitError(exitInput, err)
	}
	a.log.Info().
		Str("skipper", entry.Skipper).
		Str("elapsed", entry.ElapsedMinutes).
		Str("corrected", entry.CorrectedMinutes).
		Msg("Your race time has been logged")
	return encodeDocument(os.Stdout, "yaml", &entry)
}

func importAction(cCtx *cli.Context) error {
	a, err := setup(cCtx)
	if err != nil {
		return err
	}
	entries, err := readEntries(cCtx.String(inputFlag), cCtx.Bool(csvFlag), a.log)
	if err != nil {
		return err
	}
	s, err := a.openStore(cCtx.Context)
	if err != nil {
		return err
	}
	defer s.Close()
	stored, err := s.Import(cCtx.Context, entries)
	if err != nil {
		return exitError(exitInput, err)
	}
	a.log.Info().Int("imported", len(stored)).Str("database", s.Path()).Msg("Entries imported")
	return nil
}

func exportAction(cCtx *cli.Context) error {
	a, err := setup(cCtx)
	if err != nil {
		return err
	}
	s, err := a.openStore(cCtx.Context)
	if err != nil {
		return err
	}
	defer s.Close()
	entries, err := s.All(cCtx.Context)
	if err != nil {
		return exitError(exitInput, err)
	}
	out := writers.Output(cCtx.String(outputFlag))
	defer out.Close()
	if err := parsers.WriteCSV(out, entries); err != nil {
		return exitError(exitEncoding, err)
	}
	return nil
}

func serveAction(cCtx *cli.Context) error {
	a, err := setup(cCtx)
	if err != nil {
		return err
	}
	if cCtx.IsSet(portFlag) {
		a.cfg.Port = cCtx.Int(portFlag)
	}
	engine, policyName, err := a.engine("")
	if err != nil {
		return err
	}
	s, err := a.openStore(cCtx.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(server.Config{
		Port:       a.cfg.Port,
		SeriesName: a.cfg.Series,
		PolicyName: policyName,
		Table:      a.cfg.HandicapTable(),
		Engine:     engine,
		Store:      s,
		Log:        a.log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	inputSource := &cli.StringFlag{
		Name:    inputFlag,
		Aliases: []string{"i"},
		Usage:   "The URL or path to the HTML (or CSV, with --csv) export of the entry sheet",
	}
	csvSource := &cli.BoolFlag{
		Name:  csvFlag,
		Usage: "File passed in is a CSV rather than an HTML file",
	}
	output := &cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Usage:   "The location to write the result. Can be a file path or \"-\" (for stdout).",
		Value:   writers.StdoutName,
	}

	app := &cli.App{
		Name:    "beercan",
		Usage:   "Log handicap race times and score a beer-can race series",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "YAML file with ratings and the points policy",
			},
			&cli.StringFlag{
				Name:  dbFlag,
				Usage: "Path to the entry database",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "standings",
				Usage: "Score the series and write the standings document",
				Flags: []cli.Flag{
					inputSource,
					csvSource,
					output,
					&cli.StringFlag{
						Name:  policyFlag,
						Usage: fmt.Sprintf("Points policy, one of %v", standings.PolicyNames()),
					},
					&cli.StringFlag{
						Name:  formatFlag,
						Usage: "yaml or json",
						Value: "yaml",
					},
					&cli.BoolFlag{
						Name:  leaderboardFlag,
						Usage: "Include every entry sorted by corrected time",
					},
				},
				Action: standingsAction,
			},
			{
				Name:  "log",
				Usage: "Fill in the entry form and record a race time",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  plainFlag,
						Usage: "Line-by-line prompts instead of the interactive form",
					},
				},
				Action: logAction,
			},
			{
				Name:   "import",
				Usage:  "Load a spreadsheet export into the entry database",
				Flags:  []cli.Flag{withRequired(inputSource), csvSource},
				Action: importAction,
			},
			{
				Name:   "export",
				Usage:  "Write every recorded entry as CSV",
				Flags:  []cli.Flag{output},
				Action: exportAction,
			},
			{
				Name:  "serve",
				Usage: "Serve entry submission and standings over HTTP",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  portFlag,
						Usage: "Port to listen on",
					},
				},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withRequired(f *cli.StringFlag) *cli.StringFlag {
	required := *f
	required.Required = true
	return &required
}
