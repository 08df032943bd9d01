package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components"
)

const (
	notifyModalWidthPct  = 65
	notifyModalMinWidth  = 60
	notifyModalMaxHeight = 30
	notifyModalMargin    = 4
	notifyModalChrome    = 6 // title + divider + help + spacing
)

// NotificationModal displays a scrollable history of notifications.
type NotificationModal struct {
	history  *NotificationHistory
	viewport viewport.Model
	closed   bool
	width    int
	height   int
}

// NewNotificationModal creates a modal showing notification history.
func NewNotificationModal(history *NotificationHistory, width, height int) *NotificationModal {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	modalWidth := calcNotificationModalWidth(width)
	contentHeight := max(min(height-notifyModalMargin, notifyModalMaxHeight)-notifyModalChrome, 1)

	m := &NotificationModal{
		history:  history,
		viewport: viewport.New(max(modalWidth-4, 1), contentHeight),
		width:    width,
		height:   height,
	}
	m.refreshContent()
	return m
}

func (m *NotificationModal) refreshContent() {
	items := m.history.List()
	if len(items) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines, formatNotification(n))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatNotification(n notify.Notification) string {
	ts := styles.TextMutedStyle.Render(n.CreatedAt.Format("15:04:05"))

	var msgStyle lipgloss.Style
	switch n.Level {
	case notify.LevelError:
		msgStyle = styles.ErrorStyle
	case notify.LevelWarning:
		msgStyle = lipgloss.NewStyle().Foreground(styles.ColorWarning)
	case notify.LevelSuccess:
		msgStyle = styles.SuccessStyle
	default:
		msgStyle = lipgloss.NewStyle().Foreground(styles.ColorForeground)
	}

	return fmt.Sprintf("%s %-7s %s", ts, n.Level, msgStyle.Render(n.Message))
}

// Update handles scrolling, clearing, and closing.
func (m *NotificationModal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "n":
		m.closed = true
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "D":
		m.history.Clear()
		m.refreshContent()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// Closed reports whether the modal should be dismissed.
func (m *NotificationModal) Closed() bool { return m.closed }

// View renders the modal box.
func (m *NotificationModal) View() string {
	modalWidth := calcNotificationModalWidth(m.width)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Notifications"+scrollInfo),
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [D] clear all  [esc] close"),
	)

	return styles.ModalStyle.Width(modalWidth).Render(content)
}

// Overlay renders the notification modal centered over the background.
func (m *NotificationModal) Overlay(background string, width, height int) string {
	return components.Overlay(background, m.View(), width, height)
}

func calcNotificationModalWidth(termWidth int) int {
	available := max(termWidth-notifyModalMargin, 1)
	target := termWidth * notifyModalWidthPct / 100
	return min(max(target, notifyModalMinWidth), available)
}
