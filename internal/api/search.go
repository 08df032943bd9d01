package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colonyops/reel/internal/core/movie"
)

// Searcher finds movies by free-text query.
type Searcher interface {
	SearchMovies(ctx context.Context, query string) ([]movie.Movie, error)
}

var (
	_ Searcher = (*Client)(nil)
	_ Searcher = (*TMDBSearcher)(nil)
)

type searchRequest struct {
	OriginalTitle string `json:"original_title"`
}

// SearchMovies queries the backend search endpoint. A null response body is
// treated as no results.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	var out []movie.Movie
	err := c.call(ctx, "search movies", http.MethodPost, c.searchPath, searchRequest{OriginalTitle: query}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []movie.Movie{}
	}
	return out, nil
}

// TMDBSearcher queries The Movie Database search API directly.
type TMDBSearcher struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewTMDBSearcher creates a TMDB searcher. token is sent as a bearer token.
func NewTMDBSearcher(baseURL, token string, timeout time.Duration) *TMDBSearcher {
	return &TMDBSearcher{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

type tmdbSearchResponse struct {
	Results []movie.Movie `json:"results"`
}

// SearchMovies calls GET /search/movie.
func (s *TMDBSearcher) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	const op = "search tmdb"

	endpoint := s.baseURL + "/search/movie?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	var out tmdbSearchResponse
	if err := send(s.http, req, op, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []movie.Movie{}
	}
	return out.Results, nil
}
