package tui

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reel/internal/core/notify"
	tuinotify "github.com/colonyops/reel/internal/tui/notify"
	"github.com/colonyops/reel/pkg/tuitest"
)

func TestNotificationHistory(t *testing.T) {
	h := NewNotificationHistory(3)

	for i := range 5 {
		h.Add(notify.Info(strconv.Itoa(i)))
	}

	items := h.List()
	require.Len(t, items, 3)
	assert.Equal(t, "4", items[0].Message, "newest first")
	assert.Equal(t, "2", items[2].Message)

	h.Clear()
	assert.Empty(t, h.List())
}

func TestNotificationHistory_subscribes_to_bus(t *testing.T) {
	h := NewNotificationHistory(0)
	bus := tuinotify.NewBus()
	bus.Subscribe(h.Add)

	bus.Errorf("request failed: %d", 500)

	items := h.List()
	require.Len(t, items, 1)
	assert.Equal(t, notify.LevelError, items[0].Level)
	assert.Equal(t, "request failed: 500", items[0].Message)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestNotificationModal_empty_history(t *testing.T) {
	m := NewNotificationModal(NewNotificationHistory(0), 100, 40)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Notifications")
	assert.Contains(t, out, "No notifications")
}

func TestNotificationModal_lists_entries(t *testing.T) {
	h := NewNotificationHistory(0)
	h.Add(notify.Error("Could not reach the server"))
	h.Add(notify.Success("Review saved"))

	out := tuitest.StripANSI(NewNotificationModal(h, 100, 40).View())
	assert.Contains(t, out, "Could not reach the server")
	assert.Contains(t, out, "Review saved")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "success")
}

func TestNotificationModal_clear_and_close(t *testing.T) {
	h := NewNotificationHistory(0)
	h.Add(notify.Info("hello"))
	m := NewNotificationModal(h, 100, 40)

	m.Update(tuitest.KeyPress('D'))
	assert.Empty(t, h.List())
	assert.Contains(t, tuitest.StripANSI(m.View()), "No notifications")
	assert.False(t, m.Closed())

	m.Update(tuitest.KeyEsc())
	assert.True(t, m.Closed())
}

func TestBuildInfo_Label(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"", ""},
		{"dev", ""},
		{"1.2.0", "v1.2.0"},
		{"v0.3.1", "v0.3.1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildInfo{Version: tt.version}.Label(), tt.version)
	}
}
