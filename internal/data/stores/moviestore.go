package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/reel/internal/core/movie"
	"github.com/colonyops/reel/internal/data/db"
	"github.com/jmoiron/sqlx"
)

// searchLimit caps the rows a search for a non-empty query returns. An empty
// query lists the whole catalog.
const searchLimit = 50

// MovieStore implements movie.Store on top of sqlx.
type MovieStore struct {
	db *db.DB
}

var _ movie.Store = (*MovieStore)(nil)

// NewMovieStore creates a new database-backed movie catalog.
func NewMovieStore(db *db.DB) *MovieStore {
	return &MovieStore{db: db}
}

// Search matches query against title and original_title, case-insensitively.
// Results are ordered by rating, best first. An empty query returns every
// movie in the catalog.
func (s *MovieStore) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	conn := s.db.Conn()
	query = strings.ToLower(strings.TrimSpace(query))

	const columns = `SELECT id, title, original_title, overview, poster_path, vote_average, release_date
		FROM movies`
	const order = `ORDER BY vote_average DESC, id ASC`

	movies := []movie.Movie{}
	var err error
	if query == "" {
		err = conn.SelectContext(ctx, &movies, columns+" "+order)
	} else {
		pattern := "%" + escapeLike(query) + "%"
		err = conn.SelectContext(ctx, &movies, conn.Rebind(columns+`
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(original_title) LIKE ? ESCAPE '\'
		`+order+`
		LIMIT ?`),
			pattern, pattern, searchLimit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

// Upsert writes movies in one transaction, replacing rows with the same ID.
func (s *MovieStore) Upsert(ctx context.Context, movies []movie.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
			INSERT INTO movies (id, title, original_title, overview, poster_path, vote_average, release_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				title          = excluded.title,
				original_title = excluded.original_title,
				overview       = excluded.overview,
				poster_path    = excluded.poster_path,
				vote_average   = excluded.vote_average,
				release_date   = excluded.release_date`))
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, m := range movies {
			_, err := stmt.ExecContext(ctx,
				m.ID, m.Title, m.OriginalTitle, m.Overview, m.PosterPath, m.VoteAverage, m.ReleaseDate)
			if err != nil {
				return fmt.Errorf("failed to upsert movie %d: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
