package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
)

var errEmptyName = errors.New("name is required")

// KeyMap holds the top-level bindings; the list and calendar panes carry
// their own movement bindings.
type KeyMap struct {
	Tab       key.Binding
	Add       key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next month"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Add, k.Toggle, k.Delete, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Add, k.Toggle, k.Delete},
		{k.PrevMonth, k.NextMonth, k.Refresh, k.Help, k.Quit},
	}
}
