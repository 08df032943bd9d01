// Package notify defines the transient user-facing notifications shown by
// the TUI toast stack and the CLI.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Info builds an info notification stamped with the current time.
func Info(msg string) Notification {
	return Notification{Level: LevelInfo, Message: msg, CreatedAt: time.Now()}
}

// Success builds a success notification.
func Success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg, CreatedAt: time.Now()}
}

// Error builds an error notification.
func Error(msg string) Notification {
	return Notification{Level: LevelError, Message: msg, CreatedAt: time.Now()}
}
