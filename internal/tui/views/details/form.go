package details

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/logging"
	"github.com/colonyops/reel/internal/core/movie"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components/form"
	"github.com/colonyops/reel/internal/tui/notify"
)

// Form field variables. They match the field names reported by
// review.Draft.Validate.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldRating      = "rating"
)

// Creator persists a new review.
type Creator interface {
	CreateReview(ctx context.Context, r review.Review) (review.Review, error)
}

// ReviewSubmittedMsg reports a review that was created from the form. It
// carries the values the user entered, not the stored record.
type ReviewSubmittedMsg struct {
	MovieTitle  string
	Title       string
	Description string
	Rating      float64
}

type createdMsg struct {
	draft review.Draft
	err   error
}

// Form is the review authoring form for one movie.
type Form struct {
	movie   movie.Movie
	creator Creator
	dialog  *form.Dialog
	saving  bool
	done    bool
}

// NewForm creates an empty review form for m.
func NewForm(m movie.Movie, creator Creator, width int) *Form {
	// Required fields and the rating range are checked by review.Draft on submit.
	title := form.NewTextField("Title", "headline for your review", "").
		WithValidation(form.FieldValidation{MaxLength: 200})
	desc := form.NewTextAreaField("Description", "what did you think?", "").
		WithValidation(form.FieldValidation{MaxLength: 5000})
	rating := form.NewTextField("Rating", "0-10", "").
		WithValidation(form.FieldValidation{MaxLength: 8})

	fieldWidth := max(width-4, 20)
	title.SetWidth(fieldWidth)
	desc.SetWidth(fieldWidth)
	rating.SetWidth(10)

	dialog := form.NewDialog(
		"Review "+m.DisplayTitle(),
		[]form.Field{title, desc, rating},
		[]string{fieldTitle, fieldDescription, fieldRating},
	)

	return &Form{movie: m, creator: creator, dialog: dialog}
}

// Update handles messages for the form.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if msg, ok := msg.(createdMsg); ok {
		return f.handleCreated(msg)
	}

	if f.saving {
		// The request is in flight; the draft is frozen until it answers.
		if _, ok := msg.(tea.KeyMsg); ok {
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.dialog, cmd = f.dialog.Update(msg)
	if f.dialog.Submitted() && !f.saving {
		return f.submit(cmd)
	}
	return f, cmd
}

// View renders the form.
func (f *Form) View() string {
	out := f.dialog.View()
	if f.saving {
		out += "\n" + styles.TextMutedStyle.Render("Saving...")
	}
	return out
}

// Draft returns the form's current values.
func (f *Form) Draft() review.Draft {
	return review.Draft{
		Title:       f.dialog.Value(fieldTitle),
		Description: f.dialog.Value(fieldDescription),
		Rating:      f.dialog.Value(fieldRating),
	}
}

// Saving reports whether a create request is in flight.
func (f *Form) Saving() bool { return f.saving }

// Done reports whether the review was created.
func (f *Form) Done() bool { return f.done }

// Cancelled reports whether the user dismissed the form.
func (f *Form) Cancelled() bool { return f.dialog.Cancelled() }

// Message returns the form-level error line.
func (f *Form) Message() string { return f.dialog.Message() }

func (f *Form) submit(cmd tea.Cmd) (*Form, tea.Cmd) {
	draft := f.Draft()
	f.dialog.ClearErrors()

	if err := draft.Validate(); err != nil {
		for field, msg := range review.FieldErrorMap(err) {
			f.dialog.SetFieldError(field, msg)
		}
		f.dialog.Reject(review.ValidationMessage)
		return f, tea.Batch(cmd, notify.Cmd(corenotify.Error(review.ValidationMessage)))
	}

	f.saving = true
	return f, tea.Batch(cmd, createCmd(f.creator, review.NewReview(f.movie, draft), draft))
}

func (f *Form) handleCreated(msg createdMsg) (*Form, tea.Cmd) {
	f.saving = false

	if msg.err != nil {
		logging.Failure("details", "create review", msg.err).
			Str("movie", f.movie.DisplayTitle()).
			Msg("create review failed")

		text := api.UserMessage(msg.err)
		f.dialog.Reject(text)
		return f, notify.Cmd(corenotify.Error(text))
	}

	f.done = true
	rating, _ := review.ParseRating(msg.draft.Rating)
	submitted := ReviewSubmittedMsg{
		MovieTitle:  f.movie.DisplayTitle(),
		Title:       msg.draft.Title,
		Description: msg.draft.Description,
		Rating:      rating,
	}
	return f, tea.Batch(
		func() tea.Msg { return submitted },
		notify.Cmd(corenotify.Success("Review saved")),
	)
}

func createCmd(c Creator, r review.Review, draft review.Draft) tea.Cmd {
	return func() tea.Msg {
		_, err := c.CreateReview(context.Background(), r)
		return createdMsg{draft: draft, err: err}
	}
}
