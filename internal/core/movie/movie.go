// Package movie defines the read-only movie records returned by search providers.
package movie

import (
	"strconv"
	"strings"
)

// PosterBaseURL is the image CDN prefix for poster paths.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

// NoSynopsis is shown when a movie has no overview text.
const NoSynopsis = "No description available."

// Movie is a movie-like record as returned by the search endpoint or TMDB.
type Movie struct {
	ID            int64   `json:"id"             db:"id"`
	Title         string  `json:"title"          db:"title"`
	OriginalTitle string  `json:"original_title" db:"original_title"`
	Overview      string  `json:"overview"       db:"overview"`
	PosterPath    string  `json:"poster_path"    db:"poster_path"`
	VoteAverage   float64 `json:"vote_average"   db:"vote_average"`
	ReleaseDate   string  `json:"release_date"   db:"release_date"`
}

// DisplayTitle returns the title to render in lists. The backend search keys
// rows by original_title, TMDB fills title, so either may be empty.
func (m Movie) DisplayTitle() string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	return strings.TrimSpace(m.OriginalTitle)
}

// PosterURL returns the absolute poster URL, or "" when the movie has no poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	if strings.HasPrefix(m.PosterPath, "http://") || strings.HasPrefix(m.PosterPath, "https://") {
		return m.PosterPath
	}
	if !strings.HasPrefix(m.PosterPath, "/") {
		return PosterBaseURL + "/" + m.PosterPath
	}
	return PosterBaseURL + m.PosterPath
}

// Synopsis returns the overview or a placeholder.
func (m Movie) Synopsis() string {
	if strings.TrimSpace(m.Overview) == "" {
		return NoSynopsis
	}
	return m.Overview
}

// RatingLabel formats the average rating for display. A zero average with no
// votes is indistinguishable from "unknown" on the wire, so it renders as N/A.
func (m Movie) RatingLabel() string {
	if m.VoteAverage == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}
