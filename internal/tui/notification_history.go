package tui

import (
	"sync"

	"github.com/colonyops/reel/internal/core/notify"
)

const defaultHistorySize = 100

// NotificationHistory keeps the most recent notifications for the history
// modal. It subscribes to the notify bus and is safe for concurrent use.
type NotificationHistory struct {
	mu    sync.Mutex
	items []notify.Notification
	size  int
}

// NewNotificationHistory creates a history that keeps the last size entries.
func NewNotificationHistory(size int) *NotificationHistory {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &NotificationHistory{size: size}
}

// Add records n, dropping the oldest entry when full.
func (h *NotificationHistory) Add(n notify.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, n)
	if len(h.items) > h.size {
		h.items = h.items[len(h.items)-h.size:]
	}
}

// List returns the recorded notifications, newest first.
func (h *NotificationHistory) List() []notify.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]notify.Notification, len(h.items))
	for i, n := range h.items {
		out[len(h.items)-1-i] = n
	}
	return out
}

// Clear removes every entry.
func (h *NotificationHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
}
