package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reel/internal/api"
	"github.com/colonyops/reel/internal/core/logging"
	"github.com/colonyops/reel/internal/core/movie"
	corenotify "github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/notify"
)

// ResultsMsg carries the outcome of one search request.
type ResultsMsg struct {
	Seq    int
	Query  string
	Movies []movie.Movie
	Err    error
}

// OpenMovieMsg asks the root model to show the details modal for Movie.
type OpenMovieMsg struct {
	Movie movie.Movie
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// reserved lines above the list: input, blank, status.
const headerLines = 3

// View is the Bubble Tea sub-model for the search tab.
type View struct {
	ctrl     *Controller
	searcher api.Searcher
	input    textinput.Model
	spinner  spinner.Model
	focus    focusArea
	width    int
	height   int
}

// New creates a search view backed by searcher. The query input starts focused.
func New(searcher api.Searcher) View {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "movie title"
	ti.CharLimit = 200
	ti.PromptStyle = styles.TextMutedStyle
	ti.PlaceholderStyle = styles.TextMutedStyle
	ti.Cursor.Style = styles.SelectedStyle
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SelectedStyle

	return View{
		ctrl:     NewController(),
		searcher: searcher,
		input:    ti,
		spinner:  sp,
	}
}

// Init returns the initial command for the search view.
func (v View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the search view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultsMsg:
		return v.handleResults(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		if v.focus == focusInput {
			return v.handleInputKey(msg)
		}
		return v.handleListKey(msg)
	}

	if v.focus == focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the search view.
func (v View) View() string {
	var b strings.Builder
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderStatus())
	b.WriteString("\n")
	b.WriteString(v.renderResults())
	return b.String()
}

// InputFocused reports whether key presses go to the query input.
func (v View) InputFocused() bool {
	return v.focus == focusInput
}

// Value returns the text currently in the query input.
func (v View) Value() string { return v.input.Value() }

// Controller exposes the view's state for tests and the root model.
func (v View) Controller() *Controller {
	return v.ctrl
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = max(width-len(v.input.Prompt)-2, 10)
	v.ctrl.SetSize(v.visibleLines())
}

// Submit starts a search for query. The input keeps its text.
func (v View) Submit(query string) (View, tea.Cmd) {
	seq := v.ctrl.Begin(query)
	return v, tea.Batch(v.spinner.Tick, searchCmd(v.searcher, seq, query))
}

func (v View) handleInputKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v.Submit(v.input.Value())
	case "down":
		if len(v.ctrl.Results()) > 0 {
			v.focus = focusList
			v.input.Blur()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v View) handleListKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if !v.ctrl.MoveUp(v.visibleLines()) {
			return v, v.focusInput()
		}
	case "down", "j":
		v.ctrl.MoveDown(v.visibleLines())
	case "/", "esc":
		return v, v.focusInput()
	case "enter":
		if m, ok := v.ctrl.Selected(); ok {
			return v, func() tea.Msg { return OpenMovieMsg{Movie: m} }
		}
	}
	return v, nil
}

func (v *View) focusInput() tea.Cmd {
	v.focus = focusInput
	return v.input.Focus()
}

func (v View) handleResults(msg ResultsMsg) (View, tea.Cmd) {
	if !v.ctrl.Apply(msg.Seq, msg.Movies, msg.Err) {
		return v, nil
	}

	if msg.Err != nil {
		logging.Failure("search", "search movies", msg.Err).
			Str("query", msg.Query).
			Msg("movie search failed")

		if v.focus == focusList {
			return v, tea.Batch(v.focusInput(), notify.Cmd(corenotify.Error(v.ctrl.Err())))
		}
		return v, notify.Cmd(corenotify.Error(v.ctrl.Err()))
	}

	return v, nil
}

func searchCmd(searcher api.Searcher, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		movies, err := searcher.SearchMovies(context.Background(), query)
		return ResultsMsg{Seq: seq, Query: query, Movies: movies, Err: err}
	}
}

func (v View) visibleLines() int {
	return max(v.height-headerLines, 1)
}

func (v View) renderStatus() string {
	switch v.ctrl.State() {
	case StateLoading:
		return v.spinner.View() + " " + styles.TextMutedStyle.Render("Searching...")
	case StateError:
		return styles.ErrorStyle.Render(v.ctrl.Err())
	case StateLoaded:
		if v.ctrl.Empty() {
			return styles.TextMutedStyle.Render(EmptyMessage)
		}
		return styles.TextMutedStyle.Render(fmt.Sprintf("%d results", len(v.ctrl.Results())))
	default:
		return styles.TextMutedStyle.Render("Type a title and press enter")
	}
}

func (v View) renderResults() string {
	results := v.ctrl.Results()
	if len(results) == 0 {
		return ""
	}

	offset := v.ctrl.Offset()
	end := min(offset+v.visibleLines(), len(results))
	cursor := v.ctrl.Cursor()

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		selected := i == cursor && v.focus == focusList
		lines = append(lines, renderMovieLine(results[i], selected))
	}
	return strings.Join(lines, "\n")
}

func renderMovieLine(m movie.Movie, selected bool) string {
	prefix := "  "
	title := m.DisplayTitle()
	if selected {
		prefix = "> "
		title = styles.SelectedStyle.Render(title)
	}

	meta := "★ " + m.RatingLabel()
	if year := releaseYear(m.ReleaseDate); year != "" {
		meta = year + "  " + meta
	}
	return prefix + title + "  " + styles.TextMutedStyle.Render(meta)
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
