package reviews

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/logging"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components"
	"github.com/colonyops/reel/internal/tui/components/form"
	"github.com/colonyops/reel/internal/tui/notify"
)

// EditorState is the step of the edit modal.
type EditorState int

const (
	EditorViewing EditorState = iota
	EditorEditing
	EditorConfirmDelete
	EditorSaving
	EditorDeleting
	EditorClosed
)

func (s EditorState) String() string {
	switch s {
	case EditorViewing:
		return "viewing"
	case EditorEditing:
		return "editing"
	case EditorConfirmDelete:
		return "confirm-delete"
	case EditorSaving:
		return "saving"
	case EditorDeleting:
		return "deleting"
	case EditorClosed:
		return "closed"
	default:
		return fmt.Sprintf("EditorState(%d)", int(s))
	}
}

// Outcome is how the edit modal was closed.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSaved
	OutcomeDeleted
	OutcomeCancelled
)

// Mutator updates and deletes stored reviews.
type Mutator interface {
	UpdateReview(ctx context.Context, r review.Review) error
	DeleteReview(ctx context.Context, id int64) error
}

type savedMsg struct {
	id  int64
	err error
}

type deletedMsg struct {
	id  int64
	err error
}

const (
	viewHelp    = "e: edit  ctrl+d: delete  esc: close"
	editHelp    = "tab: next  shift+tab: prev  ctrl+s: save  ctrl+d: delete  esc: discard"
	editorWidth = 72
)

// Editor is the edit modal for one review. Edits change only the local draft
// until a save succeeds.
type Editor struct {
	original  review.Review
	draft     review.Draft
	mutator   Mutator
	dialog    *form.Dialog
	confirm   components.ConfirmModal
	state     EditorState
	prevState EditorState
	outcome   Outcome
	message   string
	width     int
}

// NewEditor opens the edit modal on r in the viewing state.
func NewEditor(r review.Review, mutator Mutator, width int) *Editor {
	return &Editor{
		original: r,
		draft:    r.Draft(),
		mutator:  mutator,
		state:    EditorViewing,
		width:    width,
	}
}

// Update handles messages for the edit modal.
func (e *Editor) Update(msg tea.Msg) (*Editor, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.id == e.original.ID && e.state == EditorSaving {
			return e.handleSaved(msg)
		}
		return e, nil
	case deletedMsg:
		if msg.id == e.original.ID && e.state == EditorDeleting {
			return e.handleDeleted(msg)
		}
		return e, nil
	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	if e.state == EditorEditing {
		var cmd tea.Cmd
		e.dialog, cmd = e.dialog.Update(msg)
		return e, cmd
	}
	return e, nil
}

// View renders the modal box.
func (e *Editor) View() string {
	var body string
	switch e.state {
	case EditorConfirmDelete:
		return e.confirm.View()
	case EditorEditing, EditorSaving:
		if e.dialog != nil {
			body = e.dialog.View()
		}
	default:
		body = e.renderReview()
	}

	switch e.state {
	case EditorSaving:
		body += "\n" + styles.TextMutedStyle.Render("Saving...")
	case EditorDeleting:
		body += "\n" + styles.TextMutedStyle.Render("Deleting...")
	}
	if e.message != "" && e.state != EditorEditing {
		body += "\n" + styles.FormErrorStyle.Render(e.message)
	}

	return styles.ModalStyle.Width(e.modalWidth()).Render(body)
}

// Overlay renders the modal centered over background.
func (e *Editor) Overlay(background string, width, height int) string {
	return components.Overlay(background, e.View(), width, height)
}

// State returns the current step.
func (e *Editor) State() EditorState { return e.state }

// Closed reports whether the modal is finished.
func (e *Editor) Closed() bool { return e.state == EditorClosed }

// Outcome reports how the modal closed.
func (e *Editor) Outcome() Outcome { return e.outcome }

// Original returns the review the modal was opened on.
func (e *Editor) Original() review.Review { return e.original }

// Draft returns the local draft, including unsaved edits.
func (e *Editor) Draft() review.Draft {
	if e.dialog != nil {
		e.syncDraft()
	}
	return e.draft
}

// Message returns the modal's error line.
func (e *Editor) Message() string {
	if e.dialog != nil && e.state == EditorEditing {
		return e.dialog.Message()
	}
	return e.message
}

// SetWidth resizes the modal.
func (e *Editor) SetWidth(width int) {
	e.width = width
}

func (e *Editor) handleKey(msg tea.KeyMsg) (*Editor, tea.Cmd) {
	switch e.state {
	case EditorViewing:
		switch msg.String() {
		case "e":
			e.startEditing()
		case "ctrl+d":
			e.askDelete()
		case "esc", "q":
			e.close(OutcomeCancelled)
		}
		return e, nil

	case EditorEditing:
		if msg.String() == "ctrl+d" {
			e.syncDraft()
			e.askDelete()
			return e, nil
		}
		var cmd tea.Cmd
		e.dialog, cmd = e.dialog.Update(msg)
		switch {
		case e.dialog.Cancelled():
			e.close(OutcomeCancelled)
			return e, nil
		case e.dialog.Submitted():
			return e.save(cmd)
		}
		return e, cmd

	case EditorConfirmDelete:
		e.confirm, _ = e.confirm.Update(msg)
		switch {
		case e.confirm.Confirmed():
			e.state = EditorDeleting
			e.message = ""
			return e, deleteCmd(e.mutator, e.original.ID)
		case e.confirm.Cancelled():
			e.state = e.prevState
		}
		return e, nil
	}

	// Saving and deleting ignore keys until the request answers.
	return e, nil
}

func (e *Editor) startEditing() {
	title := form.NewTextField("Title", "review title", e.draft.Title).
		WithValidation(form.FieldValidation{MaxLength: 200})
	desc := form.NewTextAreaField("Description", "review text", e.draft.Description).
		WithValidation(form.FieldValidation{MaxLength: 5000})
	rating := form.NewTextField("Rating", "0-10", e.draft.Rating).
		WithValidation(form.FieldValidation{MaxLength: 8})

	fieldWidth := e.modalWidth() - 8
	title.SetWidth(fieldWidth)
	desc.SetWidth(fieldWidth)
	rating.SetWidth(10)

	e.dialog = form.NewDialog(
		"Edit review",
		[]form.Field{title, desc, rating},
		[]string{"title", "description", "rating"},
	)
	e.dialog.Help = editHelp
	e.state = EditorEditing
	e.message = ""
}

func (e *Editor) askDelete() {
	e.prevState = e.state
	e.state = EditorConfirmDelete
	e.confirm = components.NewConfirmModal(
		"Delete review",
		fmt.Sprintf("Delete %q? This cannot be undone.", e.original.Title),
	)
}

func (e *Editor) syncDraft() {
	e.draft = review.Draft{
		Title:       e.dialog.Value("title"),
		Description: e.dialog.Value("description"),
		Rating:      e.dialog.Value("rating"),
	}
}

func (e *Editor) save(cmd tea.Cmd) (*Editor, tea.Cmd) {
	e.syncDraft()
	e.dialog.ClearErrors()

	if err := e.draft.Validate(); err != nil {
		for field, msg := range review.FieldErrorMap(err) {
			e.dialog.SetFieldError(field, msg)
		}
		e.dialog.Reject(review.ValidationMessage)
		return e, tea.Batch(cmd, notify.Cmd(corenotify.Error(review.ValidationMessage)))
	}

	e.state = EditorSaving
	return e, tea.Batch(cmd, saveCmd(e.mutator, e.original.Apply(e.draft)))
}

func (e *Editor) handleSaved(msg savedMsg) (*Editor, tea.Cmd) {
	if msg.err != nil {
		logging.Failure("reviews", "update review", msg.err).
			Int64("review_id", e.original.ID).
			Msg("update review failed")

		text := api.UserMessage(msg.err)
		e.state = EditorEditing
		e.dialog.Reject(text)
		return e, notify.Cmd(corenotify.Error(text))
	}

	e.close(OutcomeSaved)
	return e, notify.Cmd(corenotify.Success("Review updated"))
}

func (e *Editor) handleDeleted(msg deletedMsg) (*Editor, tea.Cmd) {
	if msg.err != nil {
		logging.Failure("reviews", "delete review", msg.err).
			Int64("review_id", e.original.ID).
			Msg("delete review failed")

		text := api.UserMessage(msg.err)
		e.state = e.prevState
		if e.state == EditorEditing {
			e.dialog.SetMessage(text)
		} else {
			e.message = text
		}
		return e, notify.Cmd(corenotify.Error(text))
	}

	e.close(OutcomeDeleted)
	return e, notify.Cmd(corenotify.Success("Review deleted"))
}

func (e *Editor) close(outcome Outcome) {
	e.state = EditorClosed
	e.outcome = outcome
}

func (e *Editor) modalWidth() int {
	return max(min(e.width-8, editorWidth), 30)
}

func (e *Editor) renderReview() string {
	r := e.original
	parts := []string{
		styles.ModalTitleStyle.Render(r.Title) + "  " + styles.RatingStyle.Render("★ "+r.RatingLabel()),
	}
	if r.MovieTitle != "" {
		parts = append(parts, styles.TextMutedStyle.Render(r.MovieTitle))
	}
	parts = append(parts,
		"",
		lipgloss.NewStyle().Width(e.modalWidth()-6).Render(r.Description),
		"",
		styles.ModalHelpStyle.Render(viewHelp),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func saveCmd(m Mutator, r review.Review) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{id: r.ID, err: m.UpdateReview(context.Background(), r)}
	}
}

func deleteCmd(m Mutator, id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.DeleteReview(context.Background(), id)}
	}
}
