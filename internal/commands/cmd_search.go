package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/reel/internal/core/movie"
	"github.com/colonyops/reel/pkg/iojson"
)

type SearchCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search for movies by title",
		UsageText: "reel search [--json] <query>",
		Description: `Runs a single movie search against the configured provider and prints
the results as a table.

The query is sent as-is; an empty query is allowed and returns whatever the
provider answers for it. Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	searcher, err := cmd.flags.Searcher()
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	movies, err := searcher.SearchMovies(ctx, query)
	if err != nil {
		return fmt.Errorf("search movies: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, m := range movies {
			if err := iojson.WriteLine(out, m); err != nil {
				return fmt.Errorf("encode movie: %w", err)
			}
		}
		return nil
	}

	if len(movies) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No movies found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tRELEASED\tRATING")
	for _, m := range movies {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.DisplayTitle(), releaseDate(m), m.RatingLabel())
	}
	return w.Flush()
}

func releaseDate(m movie.Movie) string {
	if m.ReleaseDate == "" {
		return "-"
	}
	return m.ReleaseDate
}
