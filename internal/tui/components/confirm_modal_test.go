package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/reel/pkg/tuitest"
)

func TestConfirmModal(t *testing.T) {
	t.Run("enter defaults to cancel", func(t *testing.T) {
		m := NewConfirmModal("Delete", "Delete review?")
		assert.False(t, m.ConfirmSelected())

		m, _ = m.Update(tuitest.KeyEnter())
		assert.True(t, m.Cancelled())
		assert.False(t, m.Confirmed())
	})

	t.Run("toggle then enter confirms", func(t *testing.T) {
		m := NewConfirmModal("Delete", "Delete review?")
		m, _ = m.Update(tuitest.Key(tea.KeyLeft))
		assert.True(t, m.ConfirmSelected())

		m, _ = m.Update(tuitest.KeyEnter())
		assert.True(t, m.Confirmed())
	})

	t.Run("y confirms, esc cancels", func(t *testing.T) {
		m := NewConfirmModal("Delete", "Delete review?")
		m, _ = m.Update(tuitest.KeyPress('y'))
		assert.True(t, m.Confirmed())

		m = NewConfirmModal("Delete", "Delete review?")
		m, _ = m.Update(tuitest.KeyEsc())
		assert.True(t, m.Cancelled())
	})

	t.Run("non-key messages ignored", func(t *testing.T) {
		m := NewConfirmModal("Delete", "Delete review?")
		m, cmd := m.Update(tuitest.WindowSize(10, 10))
		assert.Nil(t, cmd)
		assert.False(t, m.Confirmed())
		assert.False(t, m.Cancelled())
	})

	t.Run("view", func(t *testing.T) {
		view := tuitest.StripANSI(NewConfirmModal("Delete", "Delete review?").View())
		assert.Contains(t, view, "Delete review?")
		assert.Contains(t, view, "Confirm")
		assert.Contains(t, view, "Cancel")
	})
}

func TestHelpDialog(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "Global", Entries: []HelpEntry{{Key: "q", Desc: "quit"}, {Key: "tab", Desc: "switch tab"}}},
		{Title: "Reviews", Entries: []HelpEntry{{Key: "r", Desc: "refresh"}}},
	})

	view := tuitest.StripANSI(d.View())
	assert.Contains(t, view, "Keys")
	assert.Contains(t, view, "Global")
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "refresh")
	assert.Contains(t, view, "esc/? close")
}

func TestPad_basic(t *testing.T) {
	assert.Empty(t, Pad(-1))
	assert.Len(t, Pad(7), 7)
	assert.Len(t, Pad(250), 250)
}
