// Package reviews renders the stored review list and the edit modal.
package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/reel/internal/core/logging"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/review"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/notify"
)

// Service is the remote review collection.
type Service interface {
	Mutator
	ListReviews(ctx context.Context) ([]review.Review, error)
}

// LoadedMsg carries the outcome of one list request.
type LoadedMsg struct {
	Seq     int
	Reviews []review.Review
	Err     error
}

// lines per card, including the gap below it.
const cardLines = 4

// View is the Bubble Tea sub-model for the reviews tab.
type View struct {
	ctrl    *Controller
	service Service
	editor  *Editor
	spinner spinner.Model
	width   int
	height  int
}

// New creates a reviews view backed by service. Nothing is fetched until
// Activate is called.
func New(service Service) View {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SelectedStyle

	return View{
		ctrl:    NewController(),
		service: service,
		spinner: sp,
	}
}

// Activate fetches the review list. The root model calls it every time the
// tab is shown.
func (v View) Activate() (View, tea.Cmd) {
	return v.Refresh()
}

// Refresh re-fetches the review list.
func (v View) Refresh() (View, tea.Cmd) {
	seq := v.ctrl.Begin()
	return v, tea.Batch(v.spinner.Tick, listCmd(v.service, seq))
}

// Update handles messages for the reviews view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		return v.handleLoaded(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case savedMsg, deletedMsg:
		return v.updateEditor(msg)
	case tea.KeyMsg:
		if v.editor != nil {
			return v.updateEditor(msg)
		}
		return v.handleKey(msg)
	}

	if v.editor != nil {
		return v.updateEditor(msg)
	}
	return v, nil
}

// View renders the review list.
func (v View) View() string {
	var b strings.Builder
	b.WriteString(v.renderStatus())

	reviews := v.ctrl.Reviews()
	if len(reviews) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	offset := v.ctrl.Offset()
	end := min(offset+v.visibleCards(), len(reviews))
	cards := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		cards = append(cards, v.renderCard(reviews[i], i == v.ctrl.Cursor()))
	}
	b.WriteString(strings.Join(cards, "\n\n"))
	return b.String()
}

// Overlay renders the edit modal over background, if open.
func (v View) Overlay(background string, width, height int) string {
	if v.editor == nil {
		return background
	}
	return v.editor.Overlay(background, width, height)
}

// EditorOpen reports whether the edit modal is showing. Key presses go to it
// while it is.
func (v View) EditorOpen() bool {
	return v.editor != nil
}

// Editor returns the open edit modal, or nil.
func (v View) Editor() *Editor {
	return v.editor
}

// Controller exposes the list state.
func (v View) Controller() *Controller {
	return v.ctrl
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleCards())
	if v.editor != nil {
		v.editor.SetWidth(width)
	}
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.ctrl.MoveUp(v.visibleCards())
	case "down", "j":
		v.ctrl.MoveDown(v.visibleCards())
	case "r":
		return v.Refresh()
	case "enter":
		if r, ok := v.ctrl.Selected(); ok {
			v.editor = NewEditor(r, v.service, v.width)
		}
	}
	return v, nil
}

func (v View) updateEditor(msg tea.Msg) (View, tea.Cmd) {
	if v.editor == nil {
		return v, nil
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	if !v.editor.Closed() {
		return v, cmd
	}

	outcome := v.editor.Outcome()
	v.editor = nil
	if outcome == OutcomeSaved || outcome == OutcomeDeleted {
		var refresh tea.Cmd
		v, refresh = v.Refresh()
		return v, tea.Batch(cmd, refresh)
	}
	return v, cmd
}

func (v View) handleLoaded(msg LoadedMsg) (View, tea.Cmd) {
	if !v.ctrl.Apply(msg.Seq, msg.Reviews, msg.Err) {
		return v, nil
	}
	if msg.Err != nil {
		logging.Failure("reviews", "list reviews", msg.Err).Msg("list reviews failed")
		return v, notify.Cmd(corenotify.Error(v.ctrl.Err()))
	}
	return v, nil
}

func listCmd(s Service, seq int) tea.Cmd {
	return func() tea.Msg {
		reviews, err := s.ListReviews(context.Background())
		return LoadedMsg{Seq: seq, Reviews: reviews, Err: err}
	}
}

func (v View) visibleCards() int {
	return max((v.height-2)/cardLines, 1)
}

func (v View) renderStatus() string {
	switch {
	case v.ctrl.Loading():
		return v.spinner.View() + " " + styles.TextMutedStyle.Render("Loading reviews...")
	case v.ctrl.Err() != "":
		return styles.ErrorStyle.Render(v.ctrl.Err())
	case v.ctrl.Empty():
		return styles.TextMutedStyle.Render(EmptyMessage)
	case v.ctrl.Loaded():
		return styles.TextMutedStyle.Render(fmt.Sprintf("%d reviews  enter: open  r: refresh", len(v.ctrl.Reviews())))
	default:
		return ""
	}
}

func (v View) renderCard(r review.Review, selected bool) string {
	width := max(v.width-4, 20)
	inner := width - 4

	header := styles.TitleStyle.Render(ansi.Truncate(r.Title, inner-8, "…")) +
		"  " + styles.RatingStyle.Render("★ "+r.RatingLabel())

	movieLine := styles.TextMutedStyle.Render(ansi.Truncate(r.MovieTitle, inner, "…"))
	desc := ansi.Truncate(firstLine(r.Description), inner, "…")

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, movieLine, desc))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
