package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitdash/internal/calendar"
	"habitdash/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width/2, msg.Height-6)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.state = stateLoadError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = stateList
		m.habitList.SetItems(m.listItems())
		m.syncSelected()
		return m, nil

	case refreshedMsg:
		m.habitList.SetItems(m.listItems())
		m.syncSelected()
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, calendar.ErrFutureDate) {
				m.statusMsg = "cannot mark a future day"
			} else {
				m.errMsg = msg.err.Error()
			}
			return m, nil
		}
		m.habitList.SetItems(m.listItems())
		m.syncSelected()
		return m, nil

	case addedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.habitList.SetItems(m.listItems())
		m.syncSelected()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.errMsg = "delete failed, restored: " + msg.err.Error()
		}
		m.habitList.SetItems(m.listItems())
		m.syncSelected()
		return m, nil

	case habitlist.AddHabitMsg:
		m.previousState = m.state
		m.state = stateAddForm
		m.habitForm = &HabitFormModel{Frequency: "daily"}
		m.form = newHabitForm(m.habitForm)
		return m, m.form.Init()

	case habitlist.ToggleTodayMsg:
		today := time.Now().Format("2006-01-02")
		return m, m.toggleCmd(msg.ID, today)

	case habitlist.DeleteHabitMsg:
		m.previousState = m.state
		m.state = stateConfirmDelete
		m.habitToDeleteID = msg.ID
		return m, nil
	}

	switch m.state {
	case stateAddForm:
		return m.updateAddForm(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case stateLoadError:
		return m.updateLoadError(msg)
	case stateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m.updateMain(msg)
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}

	m.statusMsg = ""
	m.errMsg = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		if m.state == stateList {
			m.state = stateCalendar
		} else {
			m.state = stateList
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m, m.setMonthCmd(m.dash.Month().Prev())
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m, m.setMonthCmd(m.dash.Month().Next())
	case key.Matches(keyMsg, m.keys.Refresh):
		return m, m.setMonthCmd(m.dash.Month())
	}

	if m.state == stateCalendar {
		return m.updateCalendar(keyMsg)
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	if _, ok := m.habitList.Selected(); ok {
		m.syncSelected()
	}
	return m, cmd
}

func (m Model) updateCalendar(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "left", "h":
		m.grid.MoveCursor(-1)
	case "right", "l":
		m.grid.MoveCursor(1)
	case "up", "k":
		m.grid.MoveCursor(-7)
	case "down", "j":
		m.grid.MoveCursor(7)
	case "t", " ", "enter":
		habit, ok := m.habitList.Selected()
		if !ok {
			return m, nil
		}
		date, ok := m.grid.SelectedDate()
		if !ok {
			return m, nil
		}
		if err := calendar.CheckNotFuture(date, time.Now()); err != nil {
			m.statusMsg = "cannot mark a future day"
			return m, nil
		}
		return m, m.toggleCmd(habit.ID, date)
	}
	return m, nil
}

func (m Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		m.habitForm = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		submitted := *m.habitForm
		m.state = m.previousState
		m.form = nil
		m.habitForm = nil
		return m, m.addCmd(submitted)
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		m.habitForm = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		id := m.habitToDeleteID
		m.habitToDeleteID = ""
		m.state = m.previousState
		return m, m.deleteCmd(id)
	case "n", "N", "esc":
		m.habitToDeleteID = ""
		m.state = m.previousState
		return m, nil
	}
	return m, nil
}

func (m Model) updateLoadError(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Refresh), keyMsg.String() == "enter":
		m.state = stateLoading
		m.errMsg = ""
		return m, m.loadCmd()
	}
	return m, nil
}
