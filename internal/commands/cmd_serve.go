package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/config"
	"github.com/colonyops/reel/internal/data/stores"
	"github.com/colonyops/reel/internal/printer"
	"github.com/colonyops/reel/internal/server"
)

type ServeCmd struct {
	flags *Flags

	// flags
	addr         string
	searchSource string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the review backend",
		UsageText: "reel serve [--addr :3333] [--search-source backend|tmdb]",
		Description: `Serves the review endpoints (/reviews) and the movie search endpoint
(POST /rdbms) that the TUI talks to.

Reviews are stored in the configured database (sqlite under the data
directory by default). Searches are answered from the local movie catalog
(see 'reel movies import') or proxied to TMDB with --search-source tmdb.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr)",
				Sources:     cli.EnvVars("REEL_SERVER_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "search-source",
				Usage:       "where POST /rdbms searches go: backend or tmdb (defaults to server.search_source)",
				Destination: &cmd.searchSource,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	cfg := cmd.flags.Config

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	source := cmd.searchSource
	if source == "" {
		source = cfg.Server.SearchSource
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	var searcher api.Searcher
	switch source {
	case config.ProviderBackend:
		searcher = server.CatalogSearcher{Store: stores.NewMovieStore(database)}
	case config.ProviderTMDB:
		searcher, err = cmd.flags.tmdbSearcher()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown search source %q (want %s or %s)", source, config.ProviderBackend, config.ProviderTMDB)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(stores.NewReviewStore(database), searcher)

	p.Infof("Listening on %s (database: %s, search: %s)", addr, database.Driver(), source)
	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	p.Infof("Server stopped")
	return nil
}
