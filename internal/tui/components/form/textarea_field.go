package form

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// TextAreaField is a multi-line text input form field.
type TextAreaField struct {
	chrome
	input textarea.Model
}

// NewTextAreaField creates a new multi-line text input field.
func NewTextAreaField(label, placeholder, defaultVal string) *TextAreaField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(4)
	ta.SetWidth(40)

	if defaultVal != "" {
		ta.SetValue(defaultVal)
	}

	return &TextAreaField{
		chrome: chrome{label: label},
		input:  ta,
	}
}

// WithValidation attaches validation rules to the field.
func (f *TextAreaField) WithValidation(v FieldValidation) *TextAreaField {
	f.validation = v
	if v.MaxLength > 0 {
		f.input.CharLimit = v.MaxLength
	}
	return f
}

func (f *TextAreaField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextAreaField) View() string {
	return f.render(f.input.View())
}

func (f *TextAreaField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextAreaField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextAreaField) Validate() string {
	f.err = f.validation.ValidateText(f.input.Value())
	return f.err
}

func (f *TextAreaField) Value() string      { return f.input.Value() }
func (f *TextAreaField) SetValue(s string)  { f.input.SetValue(s) }
func (f *TextAreaField) SetWidth(width int) { f.input.SetWidth(width) }
