package tui

import "strings"

// BuildInfo holds build-time metadata for display in the TUI.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Label returns the version shown next to the branding, or "" for dev builds.
func (b BuildInfo) Label() string {
	v := strings.TrimSpace(b.Version)
	if v == "" || v == "dev" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
