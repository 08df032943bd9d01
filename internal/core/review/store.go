package review

import "context"

// Store persists reviews. Implementations return ErrNotFound when an id does
// not exist.
type Store interface {
	// List returns every review, newest first.
	List(ctx context.Context) ([]Review, error)

	// Get returns a single review.
	Get(ctx context.Context, id int64) (Review, error)

	// Create inserts r and returns it with the assigned id. r.ID is ignored.
	Create(ctx context.Context, r Review) (Review, error)

	// Update replaces the review keyed by r.ID.
	Update(ctx context.Context, r Review) (Review, error)

	// Delete removes the review keyed by id.
	Delete(ctx context.Context, id int64) error
}
