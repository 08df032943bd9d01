package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/movie"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/printer"
	"github.com/colonyops/reel/pkg/iojson"
)

// reviewClient is the part of the API client the reviews commands use.
type reviewClient interface {
	ListReviews(ctx context.Context) ([]review.Review, error)
	CreateReview(ctx context.Context, r review.Review) (review.Review, error)
	UpdateReview(ctx context.Context, r review.Review) error
	DeleteReview(ctx context.Context, id int64) error
}

type ReviewsCmd struct {
	flags *Flags

	// ls flags
	jsonOutput bool
	match      string

	// add/edit flags
	movie       string
	title       string
	description string
	rating      string

	// rm flags
	yes bool

	importer iojson.FileReader[[]review.Review]

	// interactive reports whether huh prompts may be shown.
	interactive func() bool
}

// NewReviewsCmd creates a new reviews command
func NewReviewsCmd(flags *Flags) *ReviewsCmd {
	return &ReviewsCmd{
		flags: flags,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Register adds the reviews command to the application
func (cmd *ReviewsCmd) Register(app *cli.Command) *cli.Command {
	draftFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "review title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "review text",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "rating",
				Aliases:     []string{"r"},
				Usage:       "rating from 0 to 10",
				Destination: &cmd.rating,
			},
		}
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:    "reviews",
		Aliases: []string{"review"},
		Usage:   "List and manage movie reviews",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Aliases:   []string{"list"},
				Usage:     "List reviews",
				UsageText: "reel reviews ls [--json] [--match <glob>]",
				Description: `Lists every review, newest first.

--match filters by review title or movie title using glob syntax
(e.g. "The *", "*[Mm]atrix*"). Matching is case-insensitive.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
					&cli.StringFlag{
						Name:        "match",
						Aliases:     []string{"m"},
						Usage:       "glob pattern applied to review and movie titles",
						Destination: &cmd.match,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "add",
				Usage:     "Write a review for a movie",
				UsageText: "reel reviews add --movie <title> [--title <t>] [--description <d>] [--rating <n>]",
				Description: `Creates a review. The movie is looked up with the configured search
provider so the review carries its poster.

When any field is missing and stdin is a terminal, an interactive form
collects the rest. Title and description are required; the rating must be a
number between 0 and 10.`,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:        "movie",
						Aliases:     []string{"m"},
						Usage:       "title of the movie being reviewed",
						Destination: &cmd.movie,
					},
				}, draftFlags()...),
				Action: cmd.runAdd,
			},
			{
				Name:          "edit",
				Usage:         "Edit an existing review",
				UsageText:     "reel reviews edit <id> [--title <t>] [--description <d>] [--rating <n>]",
				Flags:         draftFlags(),
				ShellComplete: ReviewIDCompleter(cmd.flags),
				Action:        cmd.runEdit,
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "Delete a review",
				UsageText: "reel reviews rm [--yes] <id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				ShellComplete: ReviewIDCompleter(cmd.flags),
				Action:        cmd.runRemove,
			},
			{
				Name:      "import",
				Usage:     "Create reviews from a JSON array",
				UsageText: "reel reviews import [-f reviews.json]",
				Description: `Reads a JSON array of reviews from a file or stdin and creates each one.

Each entry uses the review wire format:
  {"movie_title": "...", "original_title": "...", "description": "...", "vote_average": 8}

Invalid entries are reported and skipped; ids in the input are ignored.`,
				Flags:  []cli.Flag{cmd.importer.Flag()},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *ReviewsCmd) client() (reviewClient, error) {
	client, err := cmd.flags.Client()
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (cmd *ReviewsCmd) runList(ctx context.Context, c *cli.Command) error {
	client, err := cmd.client()
	if err != nil {
		return err
	}

	reviews, err := client.ListReviews(ctx)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	reviews, err = filterReviews(reviews, cmd.match)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range reviews {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode review: %w", err)
			}
		}
		return nil
	}

	if len(reviews) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No reviews found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tMOVIE\tTITLE\tRATING")
	for _, r := range reviews {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.MovieTitle, r.Title, r.RatingLabel())
	}
	return w.Flush()
}

// filterReviews keeps reviews whose title or movie title matches pattern.
// An empty pattern keeps everything.
func filterReviews(reviews []review.Review, pattern string) ([]review.Review, error) {
	if pattern == "" {
		return reviews, nil
	}

	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern %q", pattern)
	}

	var out []review.Review
	for _, r := range reviews {
		for _, candidate := range []string{r.Title, r.MovieTitle} {
			ok, _ := doublestar.Match(pattern, strings.ToLower(candidate))
			if ok {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (cmd *ReviewsCmd) draft() review.Draft {
	return review.Draft{
		Title:       cmd.title,
		Description: cmd.description,
		Rating:      cmd.rating,
	}
}

func (cmd *ReviewsCmd) runAdd(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	client, err := cmd.client()
	if err != nil {
		return err
	}

	if cmd.needsForm() && cmd.interactive() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if strings.TrimSpace(cmd.movie) == "" {
		return fmt.Errorf("--movie is required")
	}

	draft := cmd.draft()
	if err := draft.Validate(); err != nil {
		return validationError(err)
	}

	m := cmd.lookupMovie(ctx, cmd.movie)
	created, err := client.CreateReview(ctx, review.NewReview(m, draft))
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	detail := m.DisplayTitle()
	if created.ID != 0 {
		detail = fmt.Sprintf("#%d %s", created.ID, detail)
	}
	p.Success("Review created", detail)
	return nil
}

func (cmd *ReviewsCmd) needsForm() bool {
	return strings.TrimSpace(cmd.movie) == "" ||
		strings.TrimSpace(cmd.title) == "" ||
		strings.TrimSpace(cmd.description) == "" ||
		strings.TrimSpace(cmd.rating) == ""
}

// lookupMovie resolves title through the search provider so the review can
// carry the poster. Any failure falls back to a bare movie with that title.
func (cmd *ReviewsCmd) lookupMovie(ctx context.Context, title string) movie.Movie {
	fallback := movie.Movie{Title: strings.TrimSpace(title)}

	searcher, err := cmd.flags.Searcher()
	if err != nil {
		log.Debug().Err(err).Msg("no searcher for movie lookup")
		return fallback
	}

	movies, err := searcher.SearchMovies(ctx, fallback.Title)
	if err != nil {
		log.Warn().Err(err).Str("movie", fallback.Title).Msg("movie lookup failed")
		return fallback
	}

	for _, m := range movies {
		if strings.EqualFold(m.DisplayTitle(), fallback.Title) {
			return m
		}
	}
	return fallback
}

func (cmd *ReviewsCmd) runForm() error {
	var fields []huh.Field

	if strings.TrimSpace(cmd.movie) == "" {
		fields = append(fields, huh.NewInput().
			Title("Movie").
			Description("Title of the movie you are reviewing").
			Validate(requiredField("movie")).
			Value(&cmd.movie))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Title").
			Validate(requiredField("title")).
			Value(&cmd.title),
		huh.NewText().
			Title("Review").
			Validate(requiredField("description")).
			Value(&cmd.description),
		huh.NewInput().
			Title("Rating").
			Description(fmt.Sprintf("%d to %d", review.MinRating, review.MaxRating)).
			Validate(func(s string) error {
				_, err := review.ParseRating(s)
				return err
			}).
			Value(&cmd.rating),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validationError(err error) error {
	return fmt.Errorf("invalid review: %s", strings.Join(review.FieldMessages(err), "; "))
}

func parseReviewID(c *cli.Command) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("review id is required")
	}
	// completions print "id:title"; accept that form too
	arg, _, _ = strings.Cut(arg, ":")

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid review id %q", c.Args().First())
	}
	return id, nil
}

func findReview(ctx context.Context, client reviewClient, id int64) (review.Review, error) {
	reviews, err := client.ListReviews(ctx)
	if err != nil {
		return review.Review{}, fmt.Errorf("list reviews: %w", err)
	}
	for _, r := range reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return review.Review{}, fmt.Errorf("review %d: %w", id, review.ErrNotFound)
}

func (cmd *ReviewsCmd) runEdit(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := parseReviewID(c)
	if err != nil {
		return err
	}

	client, err := cmd.client()
	if err != nil {
		return err
	}

	current, err := findReview(ctx, client, id)
	if err != nil {
		return err
	}

	draft := current.Draft()
	if c.IsSet("title") {
		draft.Title = cmd.title
	}
	if c.IsSet("description") {
		draft.Description = cmd.description
	}
	if c.IsSet("rating") {
		draft.Rating = cmd.rating
	}

	if draft == current.Draft() {
		p.Infof("Nothing to change; pass --title, --description or --rating")
		return nil
	}

	if err := draft.Validate(); err != nil {
		return validationError(err)
	}

	if err := client.UpdateReview(ctx, current.Apply(draft)); err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	p.Success("Review updated", fmt.Sprintf("#%d", id))
	return nil
}

func (cmd *ReviewsCmd) runRemove(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := parseReviewID(c)
	if err != nil {
		return err
	}

	client, err := cmd.client()
	if err != nil {
		return err
	}

	if !cmd.yes && cmd.interactive() {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete review #%d?", id)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(styles.FormTheme()).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			p.Infof("Delete cancelled")
			return nil
		}
	}

	if err := client.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	p.Success("Review deleted", fmt.Sprintf("#%d", id))
	return nil
}

func (cmd *ReviewsCmd) runImport(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	client, err := cmd.client()
	if err != nil {
		return err
	}

	input, err := cmd.importer.Read()
	if err != nil {
		return fmt.Errorf("read reviews: %w", err)
	}

	created, skipped := 0, 0
	for i, r := range input {
		if strings.TrimSpace(r.MovieTitle) == "" {
			p.Warnf("entry %d: movie_title is required", i)
			skipped++
			continue
		}
		if err := r.Draft().Validate(); err != nil {
			p.Warnf("entry %d (%s): %s", i, r.MovieTitle, strings.Join(review.FieldMessages(err), "; "))
			skipped++
			continue
		}

		r.ID = 0
		if _, err := client.CreateReview(ctx, r); err != nil {
			p.Errorf("entry %d (%s): %s", i, r.MovieTitle, api.UserMessage(err))
			log.Error().Err(err).Int("entry", i).Msg("import review failed")
			skipped++
			continue
		}
		created++
	}

	p.Successf("Imported %d review(s), skipped %d", created, skipped)
	if skipped > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
