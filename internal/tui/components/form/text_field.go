package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	chrome
	input textinput.Model
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 40
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.ColorMuted)

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	return &TextField{
		chrome: chrome{label: label},
		input:  ti,
	}
}

// WithValidation attaches validation rules to the field.
func (f *TextField) WithValidation(v FieldValidation) *TextField {
	f.validation = v
	if v.MaxLength > 0 {
		f.input.CharLimit = v.MaxLength
	}
	return f
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string {
	return f.render(f.input.View())
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextField) Validate() string {
	f.err = f.validation.ValidateText(f.input.Value())
	return f.err
}

func (f *TextField) Value() string      { return f.input.Value() }
func (f *TextField) SetValue(s string)  { f.input.SetValue(s) }
func (f *TextField) SetWidth(width int) { f.input.Width = width }
