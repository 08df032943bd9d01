package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/colonyops/reel/internal/core/logging"
	"github.com/colonyops/reel/internal/core/review"
)

// reviewRequest is the body of POST /reviews and PUT /reviews/{id}. Rating
// is a pointer so that a missing vote_average is distinguishable from 0.
type reviewRequest struct {
	MovieTitle  string   `json:"movie_title"    validate:"max=500"`
	PosterPath  string   `json:"poster_path"    validate:"max=500"`
	Title       string   `json:"original_title" validate:"required,notblank,max=200"`
	Description string   `json:"description"    validate:"required,notblank,max=5000"`
	Rating      *float64 `json:"vote_average"   validate:"required,gte=0,lte=10"`
}

func (req reviewRequest) toReview(id int64) review.Review {
	return review.Review{
		ID:          id,
		MovieTitle:  req.MovieTitle,
		PosterPath:  req.PosterPath,
		Title:       req.Title,
		Description: req.Description,
		Rating:      *req.Rating,
	}
}

// decodeReview reads and validates a review body. On failure the response
// has been written and ok is false.
func decodeReview(w http.ResponseWriter, r *http.Request) (req reviewRequest, ok bool) {
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return req, false
	}
	if fields := validateStruct(req); fields != nil {
		writeError(w, http.StatusBadRequest, "validation failed", fields)
		return req, false
	}
	return req, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid review id", nil)
		return 0, false
	}
	return id, true
}

// storeError maps a store error to a response.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, review.ErrNotFound) {
		writeError(w, http.StatusNotFound, "review not found", nil)
		return
	}

	ctx := logging.WithOperation(r.Context(), op)
	s.log.Error().Ctx(ctx).Err(err).Msg("review store failed")
	writeError(w, http.StatusInternalServerError, "internal server error", nil)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.List(r.Context())
	if err != nil {
		s.storeError(w, r, "list reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rev, err := s.reviews.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, r, "get review", err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeReview(w, r)
	if !ok {
		return
	}

	created, err := s.reviews.Create(r.Context(), req.toReview(0))
	if err != nil {
		s.storeError(w, r, "create review", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := decodeReview(w, r)
	if !ok {
		return
	}

	updated, err := s.reviews.Update(r.Context(), req.toReview(id))
	if err != nil {
		s.storeError(w, r, "update review", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.reviews.Delete(r.Context(), id); err != nil {
		s.storeError(w, r, "delete review", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
