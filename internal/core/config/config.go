// Package config handles configuration loading and validation for reel.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Search providers.
const (
	ProviderBackend = "backend"
	ProviderTMDB    = "tmdb"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Search   SearchConfig   `yaml:"search"`
	TUI      TUIConfig      `yaml:"tui"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// APIConfig points the client at the review backend.
type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	ReviewsPath string        `yaml:"reviews_path"`
	SearchPath  string        `yaml:"search_path"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SearchConfig selects where movie searches go.
type SearchConfig struct {
	Provider    string `yaml:"provider"` // backend or tmdb
	TMDBBaseURL string `yaml:"tmdb_base_url"`
	// TMDBToken is the bearer token for TMDB. Usually supplied through
	// REEL_TMDB_TOKEN rather than written to disk.
	TMDBToken string `yaml:"tmdb_token"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// ServerConfig holds settings for `reel serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	SearchSource string `yaml:"search_source"` // backend (local catalog) or tmdb
}

// DatabaseConfig holds backend storage settings.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"` // empty = <data-dir>/reel.db for sqlite
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	BusyTimeout  int    `yaml:"busy_timeout"` // milliseconds, sqlite only
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:3333",
			ReviewsPath: "/reviews",
			SearchPath:  "/rdbms",
			Timeout:     10 * time.Second,
		},
		Search: SearchConfig{
			Provider:    ProviderBackend,
			TMDBBaseURL: "https://api.themoviedb.org/3",
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Server: ServerConfig{
			Addr:         ":3333",
			SearchSource: ProviderBackend,
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and validates it.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and fills defaults without validating, so
// `reel config validate` can report every problem instead of failing early.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.ReviewsPath == "" {
		c.API.ReviewsPath = defaults.API.ReviewsPath
	}
	if c.API.SearchPath == "" {
		c.API.SearchPath = defaults.API.SearchPath
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Search.Provider == "" {
		c.Search.Provider = defaults.Search.Provider
	}
	if c.Search.TMDBBaseURL == "" {
		c.Search.TMDBBaseURL = defaults.Search.TMDBBaseURL
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.SearchSource == "" {
		c.Server.SearchSource = defaults.Server.SearchSource
	}
	if c.Database.Driver == "" {
		c.Database.Driver = defaults.Database.Driver
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// DatabaseDSN returns the configured DSN, or the sqlite file under the data
// directory when none is set.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return filepath.Join(c.DataDir, "reel.db")
}

// LogFile returns the default log file location inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "reel.log")
}
