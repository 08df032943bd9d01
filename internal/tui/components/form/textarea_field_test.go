package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/reel/pkg/tuitest"
)

func TestTextAreaField(t *testing.T) {
	t.Run("creation with defaults", func(t *testing.T) {
		f := NewTextAreaField("Description", "enter text", "")
		assert.Equal(t, "Description", f.Label())
		assert.Empty(t, f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextAreaField("Description", "", "hello world")
		assert.Equal(t, "hello world", f.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextAreaField("Description", "", "")
		f.Focus()
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextAreaField("Description", "", "")
		field, cmd := f.Update(tuitest.KeyPress('a'))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("set value", func(t *testing.T) {
		f := NewTextAreaField("Description", "", "")
		f.SetValue("line one")
		assert.Equal(t, "line one", f.Value())
	})

	t.Run("view renders label", func(t *testing.T) {
		f := NewTextAreaField("Description", "placeholder", "")
		assert.Contains(t, tuitest.StripANSI(f.View()), "Description")
	})
}
