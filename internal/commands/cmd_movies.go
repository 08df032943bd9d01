package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reel/internal/core/movie"
	"github.com/colonyops/reel/internal/data/stores"
	"github.com/colonyops/reel/internal/printer"
	"github.com/colonyops/reel/pkg/iojson"
)

type MoviesCmd struct {
	flags    *Flags
	importer iojson.FileReader[[]movie.Movie]
}

// NewMoviesCmd creates a new movies command
func NewMoviesCmd(flags *Flags) *MoviesCmd {
	return &MoviesCmd{flags: flags}
}

// Register adds the movies command to the application
func (cmd *MoviesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "movies",
		Usage: "Manage the backend's local movie catalog",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Load movies into the local catalog",
				UsageText: "reel movies import [-f movies.json]",
				Description: `Reads a JSON array of movies (TMDB result format) from a file or stdin
and writes them to the catalog that 'reel serve' searches. Movies are keyed
by id; importing the same id again replaces the record.`,
				Flags:  []cli.Flag{cmd.importer.Flag()},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *MoviesCmd) runImport(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	movies, err := cmd.importer.Read()
	if err != nil {
		return fmt.Errorf("read movies: %w", err)
	}

	valid := movies[:0]
	for i, m := range movies {
		if m.ID <= 0 || m.DisplayTitle() == "" {
			p.Warnf("entry %d: id and title are required", i)
			continue
		}
		valid = append(valid, m)
	}

	database, err := openDatabase(cmd.flags.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	n, err := stores.NewMovieStore(database).Upsert(ctx, valid)
	if err != nil {
		return fmt.Errorf("import movies: %w", err)
	}

	p.Successf("Imported %d movie(s), skipped %d", n, len(movies)-len(valid))
	return nil
}
