package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/data/db"
	"github.com/jmoiron/sqlx"
)

// ReviewStore implements review.Store on top of sqlx.
type ReviewStore struct {
	db *db.DB
}

var _ review.Store = (*ReviewStore)(nil)

// NewReviewStore creates a new database-backed review store.
func NewReviewStore(db *db.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = "id, movie_title, poster_path, original_title, description, vote_average"

// List returns all reviews, newest first.
func (s *ReviewStore) List(ctx context.Context) ([]review.Review, error) {
	reviews := []review.Review{}
	err := s.db.Conn().SelectContext(ctx, &reviews,
		"SELECT "+reviewColumns+" FROM reviews ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Get returns a review by ID. Returns review.ErrNotFound if not found.
func (s *ReviewStore) Get(ctx context.Context, id int64) (review.Review, error) {
	conn := s.db.Conn()

	var r review.Review
	err := conn.GetContext(ctx, &r,
		conn.Rebind("SELECT "+reviewColumns+" FROM reviews WHERE id = ?"), id)
	if IsNotFoundError(err) {
		return review.Review{}, review.ErrNotFound
	}
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}

// Create inserts r and returns it with the assigned ID. r.ID is ignored.
func (s *ReviewStore) Create(ctx context.Context, r review.Review) (review.Review, error) {
	conn := s.db.Conn()
	now := time.Now().UnixNano()

	var id int64
	err := conn.QueryRowxContext(ctx, conn.Rebind(`
		INSERT INTO reviews (movie_title, poster_path, original_title, description, vote_average, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`),
		r.MovieTitle, r.PosterPath, r.Title, r.Description, r.Rating, now, now,
	).Scan(&id)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to create review: %w", err)
	}

	r.ID = id
	return r, nil
}

// Update replaces the user-entered fields of the review keyed by r.ID. The
// movie binding is kept when r leaves it empty. Returns review.ErrNotFound
// if no row matches.
func (s *ReviewStore) Update(ctx context.Context, r review.Review) (review.Review, error) {
	var out review.Review
	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &out,
			tx.Rebind("SELECT "+reviewColumns+" FROM reviews WHERE id = ?"), r.ID)
		if IsNotFoundError(err) {
			return review.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}

		if r.MovieTitle != "" {
			out.MovieTitle = r.MovieTitle
		}
		if r.PosterPath != "" {
			out.PosterPath = r.PosterPath
		}
		out.Title = r.Title
		out.Description = r.Description
		out.Rating = r.Rating

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE reviews SET
				movie_title = ?, poster_path = ?, original_title = ?,
				description = ?, vote_average = ?, updated_at = ?
			WHERE id = ?`),
			out.MovieTitle, out.PosterPath, out.Title,
			out.Description, out.Rating, time.Now().UnixNano(),
			out.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		return nil
	})
	if err != nil {
		return review.Review{}, err
	}
	return out, nil
}

// Delete removes the review keyed by id. Returns review.ErrNotFound if no
// row matches.
func (s *ReviewStore) Delete(ctx context.Context, id int64) error {
	conn := s.db.Conn()

	res, err := conn.ExecContext(ctx, conn.Rebind("DELETE FROM reviews WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if n == 0 {
		return review.ErrNotFound
	}
	return nil
}
