package review

import (
	"errors"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reel/internal/core/movie"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"zero", "0", 0, false},
		{"ten", "10", 10, false},
		{"decimal", "7.5", 7.5, false},
		{"padded", "  8 ", 8, false},
		{"letters", "abc", 0, true},
		{"negative", "-1", 0, true},
		{"just above max", "10.1", 0, true},
		{"empty", "", 0, true},
		{"nan", "NaN", 0, true},
		{"inf", "Inf", 0, true},
		{"numeric prefix", "7abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "ParseRating(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			if !tt.wantErr {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		d := Draft{Title: "Great", Description: "Loved it", Rating: "9"}
		assert.NoError(t, d.Validate())
	})

	t.Run("empty title rejected with valid rating", func(t *testing.T) {
		d := Draft{Title: "", Description: "Loved it", Rating: "9"}

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, d.Validate(), &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "title", fieldErrs[0].Field)
	})

	t.Run("blank description rejected", func(t *testing.T) {
		d := Draft{Title: "Great", Description: "   ", Rating: "5"}

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, d.Validate(), &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "description", fieldErrs[0].Field)
	})

	t.Run("everything wrong", func(t *testing.T) {
		d := Draft{Rating: "abc"}

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, d.Validate(), &fieldErrs)
		assert.Len(t, fieldErrs, 3)
		assert.Len(t, FieldMessages(d.Validate()), 3)
	})
}

func TestFieldMessages(t *testing.T) {
	assert.Nil(t, FieldMessages(nil))

	msgs := FieldMessages(Draft{Title: "t", Description: "d", Rating: "11"}.Validate())
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "rating: ")
}

func TestNewReview(t *testing.T) {
	m := movie.Movie{ID: 603, Title: "The Matrix", PosterPath: "/m.jpg"}
	r := NewReview(m, Draft{Title: "Whoa", Description: "Red pill", Rating: "9.5"})

	assert.Zero(t, r.ID)
	assert.Equal(t, "The Matrix", r.MovieTitle)
	assert.Equal(t, "/m.jpg", r.PosterPath)
	assert.Equal(t, "Whoa", r.Title)
	assert.Equal(t, "Red pill", r.Description)
	assert.InDelta(t, 9.5, r.Rating, 0.0001)
}

func TestReview_DraftRoundTrip(t *testing.T) {
	r := Review{ID: 4, Title: "Old", Description: "desc", Rating: 7}
	d := r.Draft()
	assert.Equal(t, "7", d.Rating)

	d.Title = "New"
	updated := r.Apply(d)
	assert.Equal(t, int64(4), updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Old", r.Title, "original is not mutated")
}

func TestFieldErrorMap(t *testing.T) {
	assert.Nil(t, FieldErrorMap(nil))

	got := FieldErrorMap(Draft{Title: "ok", Rating: "11"}.Validate())
	assert.Len(t, got, 2)
	assert.Equal(t, "is required", got["description"])
	assert.Contains(t, got["rating"], "between 0 and 10")

	assert.Equal(t, map[string]string{"": "boom"}, FieldErrorMap(errors.New("boom")))
}
