package movie

import "context"

// Store is the backend's local movie catalog.
type Store interface {
	// Search returns movies whose title or original title contains query,
	// case-insensitively. An empty query matches everything.
	Search(ctx context.Context, query string) ([]Movie, error)
	// Upsert inserts or replaces movies keyed by ID and returns how many were written.
	Upsert(ctx context.Context, movies []Movie) (int, error)
}
