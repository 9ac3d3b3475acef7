package tui

import (
	"github.com/charmbracelet/lipgloss"

	"habitdash/internal/tui/components/monthgrid"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateLoading:
		return docStyle.Render("Loading habits...")
	case stateLoadError:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			dangerStyle.Render("Could not load your dashboard."),
			"",
			m.errMsg,
			"",
			"[r] Retry  [q] Quit",
		))
	case stateAddForm:
		return docStyle.Render(m.form.View())
	case stateConfirmDelete:
		return m.viewConfirmDelete()
	}

	return m.viewMain()
}

func (m Model) viewMain() string {
	listPane := inactivePaneStyle.Render(m.habitList.View())
	calPane := inactivePaneStyle.Render(m.viewCalendar())
	if m.state == stateCalendar {
		calPane = activePaneStyle.Render(m.viewCalendar())
	} else {
		listPane = activePaneStyle.Render(m.habitList.View())
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, listPane, calPane)

	var footer string
	switch {
	case m.errMsg != "":
		footer = dangerStyle.Render(m.errMsg)
	case m.statusMsg != "":
		footer = warningStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("habitdash"),
		panes,
		footer,
		statusStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) viewCalendar() string {
	if _, ok := m.habitList.Selected(); !ok {
		return "No habit selected.\n\nAdd one with [a]."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.grid.View(),
		"",
		monthgrid.Legend(),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and all of its history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
