package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/colonyops/reel/internal/core/review"
)

// ListReviews fetches every review.
func (c *Client) ListReviews(ctx context.Context) ([]review.Review, error) {
	var out []review.Review
	if err := c.call(ctx, "list reviews", http.MethodGet, c.reviewsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []review.Review{}
	}
	return out, nil
}

// CreateReview posts a new review and returns whatever record the server
// echoed back. Servers that answer with an empty body yield a zero Review.
func (c *Client) CreateReview(ctx context.Context, r review.Review) (review.Review, error) {
	var created review.Review
	if err := c.call(ctx, "create review", http.MethodPost, c.reviewsPath, r, &created); err != nil {
		return review.Review{}, err
	}
	return created, nil
}

// UpdateReview sends the full record, keyed by r.ID.
func (c *Client) UpdateReview(ctx context.Context, r review.Review) error {
	return c.call(ctx, "update review", http.MethodPut, c.reviewPath(r.ID), r, nil)
}

// DeleteReview removes the review keyed by id.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.call(ctx, "delete review", http.MethodDelete, c.reviewPath(id), nil, nil)
}

func (c *Client) reviewPath(id int64) string {
	return c.reviewsPath + "/" + strconv.FormatInt(id, 10)
}
