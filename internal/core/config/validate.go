package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/reel/internal/core/styles"
)

// Validate checks that the configuration is valid. Every failing key is
// reported, not just the first.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api.base_url", c.API.BaseURL, httpURL),
		criterio.Run("api.reviews_path", c.API.ReviewsPath, absPath),
		criterio.Run("api.search_path", c.API.SearchPath, absPath),
		criterio.Run("api.timeout", c.API.Timeout, positiveDuration),
		criterio.Run("search.provider", c.Search.Provider, oneOf(ProviderBackend, ProviderTMDB)),
		criterio.Run("search.tmdb_base_url", c.Search.TMDBBaseURL, httpURL),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("server.addr", c.Server.Addr, nonEmpty),
		criterio.Run("server.search_source", c.Server.SearchSource, oneOf(ProviderBackend, ProviderTMDB)),
		criterio.Run("database.driver", c.Database.Driver, oneOf(DriverSQLite, DriverPostgres)),
		c.validateDatabase(),
		criterio.Run("data_dir", c.DataDir, nonEmpty),
	)
}

// ValidateDeep runs Validate and adds checks that touch the filesystem.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Warnings returns non-fatal configuration issues. tokenSet reports whether a
// TMDB token is available from any source (file or environment).
func (c *Config) Warnings(tokenSet bool) []ValidationWarning {
	var warnings []ValidationWarning

	usesTMDB := c.Search.Provider == ProviderTMDB || c.Server.SearchSource == ProviderTMDB
	if usesTMDB && !tokenSet {
		warnings = append(warnings, ValidationWarning{
			Category: "Search",
			Message:  "tmdb is selected but no token is configured; set REEL_TMDB_TOKEN",
		})
	}

	return warnings
}

func (c *Config) validateDatabase() error {
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return criterio.NewFieldErrors("database.dsn", fmt.Errorf("required for the %s driver", DriverPostgres))
	}

	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot be negative"))
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func httpURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http or https url, got %q", s)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", s)
	}
	return nil
}

func absPath(s string) error {
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("must start with /, got %q", s)
	}
	return nil
}

func positiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func oneOf(values ...string) func(string) error {
	return func(s string) error {
		for _, v := range values {
			if s == v {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s, got %q", strings.Join(values, ", "), s)
	}
}
