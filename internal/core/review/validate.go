package review

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"
)

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 10
)

// ValidationMessage is the user-facing summary shown when a draft is rejected.
const ValidationMessage = "Fill in every field. The rating must be a number between 0 and 10."

// Draft is the raw form input for a review, before validation.
type Draft struct {
	Title       string
	Description string
	Rating      string
}

// ParseRating parses s as a finite number in [MinRating, MaxRating].
// Trailing garbage ("7abc") is rejected rather than truncated.
func ParseRating(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("rating is required")
	}

	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q is not a number", s)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("rating %q is not a finite number", s)
	}
	if r < MinRating || r > MaxRating {
		return 0, fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return r, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("is required")
	}
	return nil
}

func rating(s string) error {
	_, err := ParseRating(s)
	return err
}

// Validate checks the draft. Empty title or description is rejected no matter
// what the rating is. The returned error is a criterio.FieldErrors.
func (d Draft) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("title", d.Title, required),
		criterio.Run("description", d.Description, required),
		criterio.Run("rating", d.Rating, rating),
	)
}

// FieldMessages flattens a validation error into "field: reason" lines.
func FieldMessages(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field+": "+fe.Err.Error())
	}
	return out
}

// FieldErrorMap returns the validation error for each field keyed by field
// name. Errors that are not field errors are reported under "".
func FieldErrorMap(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field] = fe.Err.Error()
	}
	return out
}
