package tui

import (
	"time"

	"github.com/colonyops/reel/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 250 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	notification notify.Notification
	expires      time.Time
}

// ToastController owns the stack of visible toasts. Each toast expires a
// fixed TTL after it was pushed; the oldest is evicted when the stack is full.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	max     int
	now     func() time.Time
	ticking bool
}

// NewToastController creates a controller with the default TTL and capacity.
func NewToastController() *ToastController {
	return &ToastController{
		ttl: defaultToastTTL,
		max: defaultMaxToasts,
		now: time.Now,
	}
}

// Push adds n to the bottom of the stack.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{notification: n, expires: c.now().Add(c.ttl)})
	if len(c.toasts) > c.max {
		c.toasts = c.toasts[len(c.toasts)-c.max:]
	}
}

// Prune drops every toast that expired at or before now.
func (c *ToastController) Prune(now time.Time) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		if now.Before(t.expires) {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// HasToasts reports whether any toast is visible.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Notifications returns the visible notifications, oldest first.
func (c *ToastController) Notifications() []notify.Notification {
	out := make([]notify.Notification, len(c.toasts))
	for i, t := range c.toasts {
		out[i] = t.notification
	}
	return out
}

// Ticking reports whether an expiry tick chain is running.
func (c *ToastController) Ticking() bool { return c.ticking }

// SetTicking records whether an expiry tick chain is running.
func (c *ToastController) SetTicking(v bool) { c.ticking = v }
