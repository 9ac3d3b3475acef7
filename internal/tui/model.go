package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitdash/internal/calendar"
	"habitdash/internal/dashboard"
	"habitdash/internal/models"
	"habitdash/internal/tui/components/habitlist"
	"habitdash/internal/tui/components/monthgrid"
)

// sessionState selects which pane owns key input.
type sessionState int

const (
	stateLoading sessionState = iota
	stateList
	stateCalendar
	stateAddForm
	stateConfirmDelete
	stateLoadError
)

// HabitFormModel backs the add-habit form.
type HabitFormModel struct {
	Name        string
	Description string
	Color       string
	Frequency   string
}

type Model struct {
	dash *dashboard.Dashboard

	state         sessionState
	previousState sessionState
	keys          KeyMap
	help          help.Model

	habitList habitlist.Model
	grid      monthgrid.Model

	form      *huh.Form
	habitForm *HabitFormModel

	habitToDeleteID string

	statusMsg string
	errMsg    string
	quitting  bool
	width     int
	height    int
}

// Messages produced by async dashboard operations.
type loadedMsg struct{ err error }
type refreshedMsg struct{ habitID string }
type toggledMsg struct {
	habitID string
	err     error
}
type addedMsg struct{ err error }
type deletedMsg struct {
	habitID string
	err     error
}

func NewModel(dash *dashboard.Dashboard) Model {
	m := Model{
		dash:      dash,
		state:     stateLoading,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(nil, 0, 0),
		grid:      monthgrid.New(dash.Month()),
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.dash.Load(context.Background())
		return loadedMsg{err: err}
	}
}

func (m Model) toggleCmd(habitID, date string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.dash.ToggleEntry(context.Background(), habitID, date)
		return toggledMsg{habitID: habitID, err: err}
	}
}

func (m Model) addCmd(form HabitFormModel) tea.Cmd {
	return func() tea.Msg {
		_, err := m.dash.AddHabit(context.Background(), models.NewHabit{
			Name:          form.Name,
			Description:   form.Description,
			ColorHex:      form.Color,
			FrequencyType: form.Frequency,
		})
		return addedMsg{err: err}
	}
}

func (m Model) deleteCmd(habitID string) tea.Cmd {
	return func() tea.Msg {
		err := m.dash.DeleteHabit(context.Background(), habitID)
		return deletedMsg{habitID: habitID, err: err}
	}
}

func (m Model) setMonthCmd(month calendar.Month) tea.Cmd {
	return func() tea.Msg {
		m.dash.SetMonth(context.Background(), month)
		return refreshedMsg{}
	}
}

// listItems projects dashboard state into list rows.
func (m Model) listItems() []habitlist.Item {
	today := time.Now().Format("2006-01-02")
	habits := m.dash.Habits()
	items := make([]habitlist.Item, len(habits))
	for i, h := range habits {
		items[i] = habitlist.Item{
			Habit:     h,
			Streak:    m.dash.Streak(h.ID),
			DoneToday: m.dash.StatusOn(h.ID, today) == models.StatusCompleted,
		}
	}
	return items
}

func (m *Model) syncSelected() {
	if habit, ok := m.habitList.Selected(); ok {
		m.grid.SetCells(m.dash.Month(), m.dash.Grid(habit.ID))
	}
}

func newHabitForm(form *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&form.Name).
				Validate(func(s string) error {
					if s == "" {
						return errEmptyName
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&form.Description),
			huh.NewInput().
				Title("Color (hex, optional)").
				Placeholder("#4ade80").
				Value(&form.Color),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Specific weekdays", "specific_days_of_week"),
					huh.NewOption("N times a week", "weekly_x_times"),
					huh.NewOption("Every N days", "every_x_days"),
				).
				Value(&form.Frequency),
		),
	)
}
