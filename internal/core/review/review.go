// Package review defines movie reviews and the client-side rules a review
// must satisfy before it is sent to the review store.
package review

import (
	"errors"
	"strconv"

	"github.com/colonyops/reel/internal/core/movie"
)

// ErrNotFound is returned by stores when no review has the requested id.
var ErrNotFound = errors.New("review not found")

// Review is a free-text review attached to a movie. The JSON names match the
// review endpoint: original_title carries the review's own title and
// vote_average its rating.
type Review struct {
	ID          int64   `json:"id"                    db:"id"`
	MovieTitle  string  `json:"movie_title,omitempty" db:"movie_title"`
	PosterPath  string  `json:"poster_path,omitempty" db:"poster_path"`
	Title       string  `json:"original_title"        db:"original_title"`
	Description string  `json:"description"           db:"description"`
	Rating      float64 `json:"vote_average"          db:"vote_average"`
}

// RatingLabel formats the rating without trailing zeros.
func (r Review) RatingLabel() string {
	return strconv.FormatFloat(r.Rating, 'f', -1, 64)
}

// Draft returns an editable copy of the review's user-entered fields.
func (r Review) Draft() Draft {
	return Draft{
		Title:       r.Title,
		Description: r.Description,
		Rating:      r.RatingLabel(),
	}
}

// Apply returns a copy of r with the draft's values. The draft must already
// be valid; callers run Validate first.
func (r Review) Apply(d Draft) Review {
	rating, _ := ParseRating(d.Rating)
	r.Title = d.Title
	r.Description = d.Description
	r.Rating = rating
	return r
}

// NewReview binds a validated draft to the movie it reviews. The identifier is
// left zero; the store assigns it.
func NewReview(m movie.Movie, d Draft) Review {
	return Review{
		MovieTitle: m.DisplayTitle(),
		PosterPath: m.PosterPath,
	}.Apply(d)
}
