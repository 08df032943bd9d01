package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	mainView := m.renderTabView()

	// Ensure we have dimensions for modals
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	var content string
	switch {
	case m.helpDialog != nil:
		content = m.helpDialog.Overlay(mainView, w, h)
	case m.noticeModal != nil:
		content = m.noticeModal.Overlay(mainView, w, h)
	case m.detailModal != nil:
		content = m.detailModal.Overlay(mainView, w, h)
	case m.activeView == ViewReviews && m.reviews.EditorOpen():
		content = m.reviews.Overlay(mainView, w, h)
	default:
		content = mainView
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

// renderTabView renders the tab bar and the active view.
func (m Model) renderTabView() string {
	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := string(rune('1'+i)) + " " + v.Title()
		if v == m.activeView {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(label))
		}
	}
	tabsLeft := strings.Join(tabs, " ")

	branding := styles.TitleStyle.Render("reel")
	if label := m.build.Label(); label != "" {
		branding += " " + styles.TextMutedStyle.Render(label)
	}
	helpHint := styles.TextMutedStyle.Render("? help")

	// Layout: [margin] tabs [spacer] help branding [margin]
	margin := 1
	right := lipgloss.JoinHorizontal(lipgloss.Left, helpHint, "  ", branding)
	spacerWidth := max(m.width-lipgloss.Width(tabsLeft)-lipgloss.Width(right)-(margin*2), 1)
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		components.Pad(margin), tabsLeft, components.Pad(spacerWidth), right, components.Pad(margin))

	dividerWidth := m.width
	if dividerWidth < 1 {
		dividerWidth = 80 // default width before WindowSizeMsg
	}
	divider := styles.DividerStyle.Render(strings.Repeat("─", dividerWidth))

	var content string
	switch m.activeView {
	case ViewSearch:
		content = m.search.View()
	case ViewReviews:
		content = m.reviews.View()
	}
	content = lipgloss.NewStyle().Height(m.contentHeight()).PaddingLeft(margin).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, divider, content)
}
