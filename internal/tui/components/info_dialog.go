package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
)

const (
	infoModalMaxHeight = 30
	infoModalMargin    = 4
	infoModalChrome    = 6 // title + divider + help + spacing
	infoModalMinWidth  = 50
)

// InfoItem is a single labeled row in an info section.
type InfoItem struct {
	Label string
	Value string
}

// InfoSection groups related info items under a section title.
type InfoSection struct {
	Title string
	Items []InfoItem
}

// InfoDialog displays labeled rows followed by a free-form body in a
// scrollable modal.
type InfoDialog struct {
	title    string
	sections []InfoSection
	body     string
	helpText string
	viewport viewport.Model
	width    int
	height   int
}

// NewInfoDialog creates a new info dialog sized for a width x height screen.
// body is rendered below the sections as-is (it may already be styled).
func NewInfoDialog(title string, sections []InfoSection, body, helpText string, width, height int) *InfoDialog {
	d := &InfoDialog{
		title:    title,
		sections: sections,
		body:     body,
		helpText: helpText,
	}
	d.SetSize(width, height)
	return d
}

// BodyWidth returns the usable content width for a width-wide screen, for
// callers that pre-render the body.
func BodyWidth(width int) int {
	return max(modalWidth(width)-6, 1)
}

func modalWidth(width int) int {
	return max(min(max(int(float64(width)*0.65), infoModalMinWidth), width-infoModalMargin), 1)
}

func modalHeight(height int) int {
	return max(min(height-infoModalMargin, infoModalMaxHeight), infoModalChrome+1)
}

// SetSize resizes the dialog for a new screen size.
func (d *InfoDialog) SetSize(width, height int) {
	d.width, d.height = width, height
	mw := modalWidth(width)
	d.viewport = viewport.New(mw-4, modalHeight(height)-infoModalChrome)
	d.viewport.SetContent(d.renderContent(mw))
}

func (d *InfoDialog) renderContent(mw int) string {
	separator := styles.DividerStyle.Render(strings.Repeat("─", max(mw-6, 1)))
	lines := make([]string, 0)

	for i, section := range d.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, styles.TitleStyle.Render(section.Title), separator)
		}
		for _, item := range section.Items {
			lines = append(lines, formatInfoItem(item))
		}
	}

	if d.body != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, d.body)
	}

	return strings.Join(lines, "\n")
}

func formatInfoItem(item InfoItem) string {
	label := styles.ModalTitleStyle.Render(item.Label)
	value := styles.TextMutedStyle.Render(item.Value)
	return fmt.Sprintf("%s  %s", label, value)
}

// Update forwards scroll keys to the viewport.
func (d *InfoDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the modal box without positioning it.
func (d *InfoDialog) View() string {
	mw := modalWidth(d.width)

	scrollInfo := ""
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(mw-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(d.title)+scrollInfo,
		divider,
		d.viewport.View(),
		styles.ModalHelpStyle.Render(d.helpText),
	)

	return styles.ModalStyle.Width(mw).Render(content)
}

// Overlay renders the dialog centered on a width x height screen.
func (d *InfoDialog) Overlay(background string, width, height int) string {
	return Overlay(background, d.View(), width, height)
}
