package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const blankLen = 256

var blank = strings.Repeat(" ", blankLen)

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= blankLen {
		return blank[:n]
	}
	return strings.Repeat(" ", n)
}

// FitWidth cuts s to at most width cells and pads it with spaces to exactly
// width. ANSI styling in s is preserved.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	return s + Pad(width-lipgloss.Width(s))
}
