package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"habitdash/internal/models"
)

type AddHabitMsg struct{}

type ToggleTodayMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	Streak    int
	DoneToday bool
}

func (i Item) Title() string {
	marker := "○ "
	if i.DoneToday {
		marker = "✓ "
	}
	return marker + i.Habit.Name
}

func (i Item) Description() string {
	desc := i.Habit.Description
	if desc == "" {
		desc = "no description"
	}
	return fmt.Sprintf("%s · streak %d", desc, i.Streak)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

// Selected returns the habit under the cursor, if any.
func (m Model) Selected() (models.Habit, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Habit, true
	}
	return models.Habit{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleTodayMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
