package reviews

import (
	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/review"
)

// EmptyMessage is shown when the review list is empty.
const EmptyMessage = "No reviews found"

// Controller holds the review list state. It contains pure data logic with no
// Bubble Tea dependencies.
type Controller struct {
	reviews []review.Review
	loaded  bool
	loading bool
	errMsg  string
	cursor  int
	offset  int
	seq     int
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Begin marks a fetch as in flight and returns its sequence number.
func (c *Controller) Begin() int {
	c.seq++
	c.loading = true
	return c.seq
}

// Apply records the result of fetch seq. A failed fetch keeps the previously
// displayed list and only records the error. Results of any fetch but the
// latest are dropped and Apply returns false, so loading stays set until the
// newest list arrives.
func (c *Controller) Apply(seq int, reviews []review.Review, err error) bool {
	if seq != c.seq {
		return false
	}
	c.loading = false

	if err != nil {
		c.errMsg = api.UserMessage(err)
		return true
	}

	c.errMsg = ""
	c.loaded = true
	c.reviews = reviews
	if c.cursor >= len(c.reviews) {
		c.cursor = max(len(c.reviews)-1, 0)
	}
	return true
}

// Reviews returns the displayed reviews.
func (c *Controller) Reviews() []review.Review { return c.reviews }

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Loaded reports whether any fetch has succeeded.
func (c *Controller) Loaded() bool { return c.loaded }

// Err returns the user-facing error of the last failed fetch.
func (c *Controller) Err() string { return c.errMsg }

// Empty reports whether a successful fetch returned no reviews.
func (c *Controller) Empty() bool {
	return c.loaded && len(c.reviews) == 0
}

// Cursor returns the current cursor position.
func (c *Controller) Cursor() int { return c.cursor }

// Offset returns the index of the first visible card.
func (c *Controller) Offset() int { return c.offset }

// Selected returns the review under the cursor.
func (c *Controller) Selected() (review.Review, bool) {
	if c.cursor < 0 || c.cursor >= len(c.reviews) {
		return review.Review{}, false
	}
	return c.reviews[c.cursor], true
}

// MoveUp moves the cursor up one card.
func (c *Controller) MoveUp(visibleCards int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visibleCards)
	}
}

// MoveDown moves the cursor down one card.
func (c *Controller) MoveDown(visibleCards int) {
	if c.cursor < len(c.reviews)-1 {
		c.cursor++
		c.clampOffset(visibleCards)
	}
}

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visibleCards int) {
	c.clampOffset(visibleCards)
}

func (c *Controller) clampOffset(visible int) {
	if visible < 1 {
		visible = 1
	}

	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	maxOffset := max(len(c.reviews)-visible, 0)
	c.offset = max(min(c.offset, maxOffset), 0)
}
