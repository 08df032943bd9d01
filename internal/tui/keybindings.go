package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/reel/internal/tui/components"
)

// keyMap holds the root model's global bindings. View-local keys are listed
// for the help dialog only; the views match them directly.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	SearchTab key.Binding
	ReviewTab key.Binding
	Notices   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		SearchTab: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "search")),
		ReviewTab: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "reviews")),
		Notices:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notification history")),
	}
}

func bindingsEntries(bindings ...key.Binding) []components.HelpEntry {
	entries := make([]components.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		entries = append(entries, components.HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return entries
}

func (k keyMap) helpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title: "Global",
			Entries: bindingsEntries(
				k.NextTab, k.PrevTab, k.SearchTab, k.ReviewTab, k.Notices, k.Help, k.Quit, k.ForceQuit,
			),
		},
		{
			Title: "Search",
			Entries: []components.HelpEntry{
				{Key: "enter", Desc: "search / open movie"},
				{Key: "↑/↓", Desc: "move through results"},
				{Key: "/", Desc: "back to the query"},
				{Key: "a", Desc: "review the open movie"},
			},
		},
		{
			Title: "Reviews",
			Entries: []components.HelpEntry{
				{Key: "enter", Desc: "open review"},
				{Key: "r", Desc: "refresh"},
				{Key: "e", Desc: "edit"},
				{Key: "ctrl+s", Desc: "save"},
				{Key: "ctrl+d", Desc: "delete"},
				{Key: "esc", Desc: "close / discard"},
			},
		},
	}
}
