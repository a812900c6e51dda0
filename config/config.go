// Package config loads the series configuration: handicap ratings, the points
// policy and where entries are kept.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Nydauron/beercan/handicap"
	"github.com/Nydauron/beercan/standings"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSeriesName = "Beer Can Scrimmage"
	DefaultDatabase   = "./data/beercan.db"
	DefaultPort       = 8080
)

// Config holds application configuration
type Config struct {
	Series        string             `yaml:"series"`
	Ratings       map[string]float64 `yaml:"ratings"`
	DefaultRating float64            `yaml:"default_rating"`
	PointsPolicy  string             `yaml:"points_policy"`
	Database      string             `yaml:"database"`
	Port          int                `yaml:"port"`
	LogLevel      string             `yaml:"log_level"`
	PrettyLogs    bool               `yaml:"pretty_logs"`
}

// Default is the configuration the series ran with before any file existed.
func Default() *Config {
	return &Config{
		Series:        DefaultSeriesName,
		Ratings:       handicap.ShippedTable().Ratings(),
		DefaultRating: handicap.DefaultRating,
		PointsPolicy:  standings.GraduatedName,
		Database:      DefaultDatabase,
		Port:          DefaultPort,
		LogLevel:      "info",
		PrettyLogs:    true,
	}
}

// Load reads configuration in order of increasing precedence: defaults, the
// YAML file at path (skipped when path is empty or the file does not exist),
// then environment variables (a .env file in the working directory is loaded
// first).
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = getEnv("BEERCAN_CONFIG", "")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Database = getEnv("BEERCAN_DB", cfg.Database)
	cfg.PointsPolicy = getEnv("BEERCAN_POLICY", cfg.PointsPolicy)
	cfg.Series = getEnv("BEERCAN_SERIES", cfg.Series)
	cfg.Port = getEnvAsInt("BEERCAN_PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLogs = getEnvAsBool("PRETTY_LOGS", cfg.PrettyLogs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// Ratings in the file replace the shipped table rather than merging into it.
	c.Ratings = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if c.Ratings == nil {
		c.Ratings = handicap.ShippedTable().Ratings()
	}
	return nil
}

// Validate checks ratings and the points policy. Failures wrap
// handicap.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := c.HandicapTable().Validate(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database path is empty", handicap.ErrInvalidConfiguration)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", handicap.ErrInvalidConfiguration, c.Port)
	}
	return nil
}

func (c *Config) HandicapTable() *handicap.Table {
	return handicap.NewTable(c.Ratings, c.DefaultRating)
}

func (c *Config) Policy() (standings.Policy, error) {
	return standings.PolicyByName(c.PointsPolicy)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
