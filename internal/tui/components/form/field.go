// Package form provides focusable text fields and a dialog that cycles focus
// between them.
package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
)

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	SetValue(s string)
	Label() string

	// Validate runs the field's own rules and records the result as the
	// field error.
	Validate() string
	SetError(msg string)
	Error() string
}

// chrome renders the label, input, and error line shared by all fields.
type chrome struct {
	label      string
	focused    bool
	err        string
	validation FieldValidation
}

func (c *chrome) render(input string) string {
	titleStyle := styles.TextMutedStyle
	if c.focused {
		titleStyle = styles.FormTitleStyle
	}

	parts := []string{titleStyle.Render(c.label), input}
	if c.err != "" {
		parts = append(parts, styles.FormErrorStyle.Render(c.err))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	borderStyle := styles.FormFieldStyle
	if c.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}
	return borderStyle.Render(content)
}

func (c *chrome) Label() string       { return c.label }
func (c *chrome) Focused() bool       { return c.focused }
func (c *chrome) SetError(msg string) { c.err = msg }
func (c *chrome) Error() string       { return c.err }
