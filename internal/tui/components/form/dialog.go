package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reel/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	variables    []string // parallel slice: variable name for each field
	focusedField int
	submitted    bool
	cancelled    bool
	message      string
	Title        string
	Help         string
}

const defaultHelp = "tab: next  shift+tab: prev  ctrl+s: submit  esc: cancel"

// NewDialog creates a form dialog with the given fields and variable names.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, variables []string) *Dialog {
	d := &Dialog{
		fields:    fields,
		variables: variables,
		Title:     title,
		Help:      defaultHelp,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "ctrl+s":
		return d.submit()
	case "enter":
		if d.isTextAreaFocused() {
			// Let textarea handle enter for newline insertion
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus()
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders the title, all fields, and help text.
func (d *Dialog) View() string {
	var parts []string
	if d.Title != "" {
		parts = append(parts, styles.ModalTitleStyle.Render(d.Title), "")
	}

	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	if d.message != "" {
		parts = append(parts, "", styles.FormErrorStyle.Render(d.message))
	}

	parts = append(parts, "", styles.FormHelpStyle.Render(d.Help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormValues returns a map of variable names to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.variables[i]] = field.Value()
	}
	return result
}

// Value returns the value of the field bound to variable, or "".
func (d *Dialog) Value(variable string) string {
	if f := d.field(variable); f != nil {
		return f.Value()
	}
	return ""
}

// SetFieldError records an error on the field bound to variable.
func (d *Dialog) SetFieldError(variable, msg string) {
	if f := d.field(variable); f != nil {
		f.SetError(msg)
	}
}

// SetMessage sets a dialog-level error line. Empty clears it.
func (d *Dialog) SetMessage(msg string) { d.message = msg }

// Message returns the dialog-level error line.
func (d *Dialog) Message() string { return d.message }

// ClearErrors removes every field error and the dialog message.
func (d *Dialog) ClearErrors() {
	for _, f := range d.fields {
		f.SetError("")
	}
	d.message = ""
}

// Reject clears the submitted flag so the user can keep editing after the
// caller refused the values.
func (d *Dialog) Reject(msg string) {
	d.submitted = false
	d.message = msg
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// FocusedVariable returns the variable name of the focused field.
func (d *Dialog) FocusedVariable() string {
	if len(d.fields) == 0 {
		return ""
	}
	return d.variables[d.focusedField]
}

// submit validates every field and marks the dialog submitted when they all
// pass. Otherwise focus moves to the first invalid field.
func (d *Dialog) submit() (*Dialog, tea.Cmd) {
	d.message = ""
	firstInvalid := -1
	for i, f := range d.fields {
		if f.Validate() != "" && firstInvalid < 0 {
			firstInvalid = i
		}
	}

	if firstInvalid < 0 {
		d.submitted = true
		return d, nil
	}
	return d, d.focus(firstInvalid)
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		return d.submit()
	}
	return d, d.focus(next)
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}
	return d, d.focus(d.focusedField - 1)
}

func (d *Dialog) focus(i int) tea.Cmd {
	if i == d.focusedField && d.fields[i].Focused() {
		return nil
	}
	d.fields[d.focusedField].Blur()
	d.focusedField = i
	return d.fields[i].Focus()
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isTextAreaFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	_, ok := d.fields[d.focusedField].(*TextAreaField)
	return ok
}

func (d *Dialog) field(variable string) Field {
	for i, v := range d.variables {
		if v == variable {
			return d.fields[i]
		}
	}
	return nil
}
