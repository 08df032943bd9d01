package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/config"
	"github.com/colonyops/reel/internal/tui"
)

// Flags holds global flag values and the state built from them in the root
// Before hook. Commands share one instance.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIURL     string
	TMDBToken  string

	// ProfilerPort enables the pprof endpoint while the TUI runs.
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Build is the version metadata shown in the TUI header.
	Build tui.BuildInfo

	clientOnce sync.Once
	client     *api.Client
	clientErr  error
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "reel", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "reel")
}

// Client returns the review backend client, built on first use. --api-url
// overrides api.base_url.
func (f *Flags) Client() (*api.Client, error) {
	f.clientOnce.Do(func() {
		cfg := f.Config
		baseURL := cfg.API.BaseURL
		if f.APIURL != "" {
			baseURL = f.APIURL
		}

		f.client, f.clientErr = api.New(api.Options{
			BaseURL:     baseURL,
			ReviewsPath: cfg.API.ReviewsPath,
			SearchPath:  cfg.API.SearchPath,
			Timeout:     cfg.API.Timeout,
			UserAgent:   "reel/" + f.Build.Version,
		})
		if f.clientErr != nil {
			f.clientErr = fmt.Errorf("create api client: %w", f.clientErr)
		}
	})
	return f.client, f.clientErr
}

// Token returns the TMDB bearer token from the flag/environment, falling back
// to the config file.
func (f *Flags) Token() string {
	if f.TMDBToken != "" {
		return f.TMDBToken
	}
	if f.Config != nil {
		return f.Config.Search.TMDBToken
	}
	return ""
}

// Searcher returns the movie search provider selected by search.provider.
func (f *Flags) Searcher() (api.Searcher, error) {
	if f.Config.Search.Provider == config.ProviderTMDB {
		return f.tmdbSearcher()
	}
	return f.Client()
}

func (f *Flags) tmdbSearcher() (api.Searcher, error) {
	token := f.Token()
	if token == "" {
		return nil, fmt.Errorf("tmdb search needs a token; set REEL_TMDB_TOKEN")
	}
	return api.NewTMDBSearcher(f.Config.Search.TMDBBaseURL, token, f.Config.API.Timeout), nil
}

// Warnings returns non-fatal configuration issues as display strings.
func (f *Flags) Warnings() []string {
	var out []string
	for _, w := range f.Config.Warnings(f.Token() != "") {
		out = append(out, w.Category+": "+w.Message)
	}
	return out
}
