package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reel/internal/core/notify"
	"github.com/colonyops/reel/pkg/tuitest"
)

func TestToastView_View_empty(t *testing.T) {
	v := NewToastView(NewToastController())

	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_level(t *testing.T) {
	levels := []notify.Level{
		notify.LevelError,
		notify.LevelWarning,
		notify.LevelSuccess,
		notify.LevelInfo,
	}

	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			c := NewToastController()
			v := NewToastView(c)

			c.Push(notify.Notification{Level: level, Message: "test msg"})

			out := v.View()
			require.NotEmpty(t, out)
			assert.Contains(t, tuitest.StripANSI(out), "test msg")
		})
	}
}

func TestToastView_View_stacks_multiple(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	c.Push(notify.Info("first"))
	c.Push(notify.Error("second"))

	out := tuitest.StripANSI(v.View())
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "oldest toast renders on top")
}

func TestPlaceBottomRight(t *testing.T) {
	bg := strings.Join([]string{
		"left side of line one",
		"left side of line two",
		"left side of line three",
	}, "\n")

	out := placeBottomRight(bg, "XX", 30, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "left side of line one", lines[0])
	assert.Equal(t, "left side of line two", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "left side of line three"))
	assert.True(t, strings.HasSuffix(lines[2], "XX"))
	assert.Equal(t, 29, len(lines[2]))
}

func TestPlaceBottomRight_pads_short_background(t *testing.T) {
	out := placeBottomRight("only", "T", 10, 4)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "only", lines[0])
	assert.Equal(t, strings.Repeat(" ", 8)+"T", lines[3])
}

func TestToastView_Overlay_without_toasts(t *testing.T) {
	v := NewToastView(NewToastController())

	assert.Equal(t, "background", v.Overlay("background", 80, 24))
}
