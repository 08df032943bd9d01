// Package details renders the movie details modal and the review form opened
// from it.
package details

import (
	"strings"

	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/reel/internal/core/movie"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components"
)

const modalHelp = "a: write review  ↑/↓: scroll  esc: close"

// Modal shows the cached fields of one movie. No request is made to open it.
type Modal struct {
	movie   movie.Movie
	creator Creator
	info    *components.InfoDialog
	form    *Form
	closed  bool
	width   int
	height  int
}

// NewModal creates a details modal for m sized for a width x height screen.
func NewModal(m movie.Movie, creator Creator, width, height int) *Modal {
	md := &Modal{movie: m, creator: creator}
	md.SetSize(width, height)
	return md
}

// SetSize resizes the modal and the open form, if any.
func (m *Modal) SetSize(width, height int) {
	m.width, m.height = width, height
	m.info = components.NewInfoDialog(
		m.movie.DisplayTitle(),
		movieSections(m.movie),
		renderSynopsis(m.movie.Synopsis(), components.BodyWidth(width)),
		modalHelp,
		width, height,
	)
}

// Update handles messages for the modal and its form.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		switch {
		case m.form.Done():
			// The review exists now; leave the details modal too.
			m.form = nil
			m.closed = true
		case m.form.Cancelled():
			m.form = nil
		}
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		m.closed = true
		return m, nil
	case "a":
		m.form = NewForm(m.movie, m.creator, formWidth(m.width))
		return m, nil
	}
	return m, m.info.Update(msg)
}

// View renders the form when open, otherwise the details.
func (m *Modal) View() string {
	if m.form != nil {
		return styles.ModalStyle.Width(formWidth(m.width)).Render(m.form.View())
	}
	return m.info.View()
}

// Overlay renders the modal centered over background.
func (m *Modal) Overlay(background string, width, height int) string {
	return components.Overlay(background, m.View(), width, height)
}

// Movie returns the movie the modal describes.
func (m *Modal) Movie() movie.Movie { return m.movie }

// Closed reports whether the modal should be dismissed.
func (m *Modal) Closed() bool { return m.closed }

// FormOpen reports whether the review form is showing.
func (m *Modal) FormOpen() bool { return m.form != nil }

// Form returns the open review form, or nil.
func (m *Modal) Form() *Form { return m.form }

func formWidth(width int) int {
	return max(min(width-8, 80), 30)
}

func movieSections(m movie.Movie) []components.InfoSection {
	items := []components.InfoItem{
		{Label: "Rating", Value: m.RatingLabel()},
	}
	if m.ReleaseDate != "" {
		items = append(items, components.InfoItem{Label: "Released", Value: m.ReleaseDate})
	}
	if m.OriginalTitle != "" && m.OriginalTitle != m.DisplayTitle() {
		items = append(items, components.InfoItem{Label: "Original", Value: m.OriginalTitle})
	}
	if url := m.PosterURL(); url != "" {
		items = append(items, components.InfoItem{Label: "Poster", Value: url})
	}
	return []components.InfoSection{{Title: "Movie", Items: items}}
}

// renderSynopsis renders the overview as markdown, falling back to wrapped
// plain text when glamour fails.
func renderSynopsis(text string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw synopsis")
		return lipgloss.NewStyle().Width(width).Render(text)
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render synopsis, showing raw text")
		return lipgloss.NewStyle().Width(width).Render(text)
	}
	return strings.Trim(rendered, "\n")
}
