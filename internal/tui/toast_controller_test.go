package tui

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/reel/internal/core/notify"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestToastController_Push(t *testing.T) {
	c := NewToastController()

	c.Push(notify.Info("hello"))

	assert.True(t, c.HasToasts())
	ns := c.Notifications()
	assert.Len(t, ns, 1)
	assert.Equal(t, "hello", ns[0].Message)
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(notify.Info(strconv.Itoa(i)))
	}

	ns := c.Notifications()
	assert.Len(t, ns, defaultMaxToasts)
	assert.Equal(t, "2", ns[0].Message)
	assert.Equal(t, strconv.Itoa(defaultMaxToasts+1), ns[len(ns)-1].Message)
}

func TestToastController_Prune(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewToastController()

	c.now = fixedClock(start)
	c.Push(notify.Info("first"))
	c.now = fixedClock(start.Add(2 * time.Second))
	c.Push(notify.Info("second"))

	c.Prune(start.Add(defaultToastTTL - time.Millisecond))
	assert.Len(t, c.Notifications(), 2)

	c.Prune(start.Add(defaultToastTTL))
	ns := c.Notifications()
	assert.Len(t, ns, 1)
	assert.Equal(t, "second", ns[0].Message)

	c.Prune(start.Add(time.Minute))
	assert.False(t, c.HasToasts())
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Info("old"))
	c.Push(notify.Info("new"))

	c.Dismiss()

	ns := c.Notifications()
	assert.Len(t, ns, 1)
	assert.Equal(t, "old", ns[0].Message)

	c.Dismiss()
	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController()
	assert.False(t, c.Ticking())

	c.SetTicking(true)
	assert.True(t, c.Ticking())
}
