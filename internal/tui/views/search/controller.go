package search

import (
	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/movie"
)

// EmptyMessage is shown when a search succeeds with no results.
const EmptyMessage = "No movies found"

// State is the lifecycle of the most recent search.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

// Controller holds the search screen state. It contains pure data logic with
// no Bubble Tea dependencies.
type Controller struct {
	query   string
	results []movie.Movie
	state   State
	errMsg  string
	cursor  int
	offset  int
	seq     int
}

// NewController creates an idle controller with no results.
func NewController() *Controller {
	return &Controller{}
}

// Begin records query as in flight and returns its sequence number. Earlier
// results stay visible until the response arrives.
func (c *Controller) Begin(query string) int {
	c.seq++
	c.query = query
	c.state = StateLoading
	c.errMsg = ""
	return c.seq
}

// Apply replaces the result set with the response to search seq. A failure
// clears the results and records the user-facing error. Responses to any
// search but the latest are dropped and Apply returns false.
func (c *Controller) Apply(seq int, results []movie.Movie, err error) bool {
	if seq != c.seq {
		return false
	}

	c.cursor = 0
	c.offset = 0

	if err != nil {
		c.results = nil
		c.state = StateError
		c.errMsg = api.UserMessage(err)
		return true
	}

	c.results = results
	c.state = StateLoaded
	c.errMsg = ""
	return true
}

// Query returns the last submitted query.
func (c *Controller) Query() string { return c.query }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Loading reports whether a search is in flight.
func (c *Controller) Loading() bool { return c.state == StateLoading }

// Err returns the user-facing error of the last failed search.
func (c *Controller) Err() string { return c.errMsg }

// Results returns the current result set.
func (c *Controller) Results() []movie.Movie { return c.results }

// Empty reports whether the last search succeeded with no results.
func (c *Controller) Empty() bool {
	return c.state == StateLoaded && len(c.results) == 0
}

// Cursor returns the current cursor position.
func (c *Controller) Cursor() int { return c.cursor }

// Offset returns the current scroll offset.
func (c *Controller) Offset() int { return c.offset }

// Selected returns the movie under the cursor.
func (c *Controller) Selected() (movie.Movie, bool) {
	if c.cursor < 0 || c.cursor >= len(c.results) {
		return movie.Movie{}, false
	}
	return c.results[c.cursor], true
}

// MoveUp moves the cursor up one position. It reports false when the cursor
// was already at the top.
func (c *Controller) MoveUp(visibleLines int) bool {
	if c.cursor == 0 {
		return false
	}
	c.cursor--
	c.clampOffset(visibleLines)
	return true
}

// MoveDown moves the cursor down one position.
func (c *Controller) MoveDown(visibleLines int) {
	if c.cursor < len(c.results)-1 {
		c.cursor++
		c.clampOffset(visibleLines)
	}
}

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visibleLines int) {
	c.clampOffset(visibleLines)
}

func (c *Controller) clampOffset(visible int) {
	if visible < 1 {
		visible = 1
	}
	total := len(c.results)

	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	maxOffset := max(total-visible, 0)
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}
