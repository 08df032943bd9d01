package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/internal/core/styles"
	"github.com/colonyops/reel/internal/tui/components"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack in the lower-right corner of the screen.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toasts stacked vertically, oldest at the top.
func (v *ToastView) View() string {
	ns := v.controller.Notifications()
	if len(ns) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(ns))
	for _, n := range ns {
		rendered = append(rendered, renderToast(n))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func toastStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelError:
		return styles.ToastErrorStyle
	case notify.LevelWarning:
		return styles.ToastWarningStyle
	case notify.LevelSuccess:
		return styles.ToastSuccessStyle
	default:
		return styles.ToastInfoStyle
	}
}

func renderToast(n notify.Notification) string {
	return toastStyle(n.Level).Width(toastWidth).Render(n.Message)
}

// Overlay draws the toast stack over the bottom-right corner of background.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}
	return placeBottomRight(background, content, width, height)
}

// placeBottomRight splices fg over the bottom-right corner of bg, line by
// line. Lines of bg left of fg are kept; anything under or right of fg is
// replaced.
func placeBottomRight(bg, fg string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgWidth := lipgloss.Width(fg)
	x := max(width-fgWidth-1, 0)
	top := max(len(bgLines)-len(fgLines), 0)

	for i, line := range fgLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = components.FitWidth(bgLines[row], x) + line
	}
	return strings.Join(bgLines, "\n")
}

func timeOf(msg toastTickMsg) time.Time {
	return time.Time(msg)
}
