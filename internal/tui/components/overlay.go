package components

import "github.com/charmbracelet/lipgloss"

// Overlay centers modal on a width x height screen. The background is
// replaced rather than composited; it is returned as-is when modal is empty.
func Overlay(background, modal string, width, height int) string {
	if modal == "" {
		return background
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
