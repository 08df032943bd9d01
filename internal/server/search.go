package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/logging"
	"github.com/colonyops/reel/internal/core/movie"
)

// CatalogSearcher adapts a movie.Store to api.Searcher.
type CatalogSearcher struct {
	Store movie.Store
}

var _ api.Searcher = CatalogSearcher{}

// SearchMovies searches the local catalog.
func (c CatalogSearcher) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	return c.Store.Search(ctx, query)
}

type searchRequest struct {
	OriginalTitle string `json:"original_title"`
}

// handleSearch answers POST /rdbms. An empty body is an empty query.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	movies, err := s.search.SearchMovies(r.Context(), req.OriginalTitle)
	if err != nil {
		ctx := logging.WithOperation(r.Context(), "search movies")
		s.log.Error().Ctx(ctx).Err(err).Str("query", req.OriginalTitle).Msg("search failed")

		code := http.StatusInternalServerError
		if api.IsTransport(err) || api.IsStatus(err) {
			code = http.StatusBadGateway
		}
		writeError(w, code, "search failed", nil)
		return
	}

	if movies == nil {
		movies = []movie.Movie{}
	}
	writeJSON(w, http.StatusOK, movies)
}
