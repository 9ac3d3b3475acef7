// Package monthgrid renders one habit's monthly calendar as a grid of
// day cells colored by entry status.
package monthgrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	weekdayStyle   = lipgloss.NewStyle().Faint(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("93"))
	futureStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
)

// Model is a pure renderer plus a day cursor; fetching belongs to the
// parent, which hands in fresh cells whenever the habit's version moves.
type Model struct {
	month    calendar.Month
	cells    []calendar.Cell
	selected int // index into cells
}

func New(month calendar.Month) Model {
	return Model{month: month, selected: 0}
}

// SetCells replaces the rendered month. The cursor is clamped into range.
func (m *Model) SetCells(month calendar.Month, cells []calendar.Cell) {
	m.month = month
	m.cells = cells
	if m.selected >= len(cells) {
		m.selected = len(cells) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Month returns the displayed month.
func (m Model) Month() calendar.Month {
	return m.month
}

// SelectedDate returns the ISO date under the cursor.
func (m Model) SelectedDate() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.cells) {
		return "", false
	}
	return m.cells[m.selected].Date, true
}

// MoveCursor shifts the day cursor by delta days, clamped to the month.
func (m *Model) MoveCursor(delta int) {
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.cells) {
		next = len(m.cells) - 1
	}
	m.selected = next
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.month.String()))
	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	offset := int(m.month.First().Weekday())
	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString("   ")
		col++
	}
	for i, cell := range m.cells {
		b.WriteString(m.renderCell(cell, i == m.selected))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(cell calendar.Cell, selected bool) string {
	label := fmt.Sprintf("%2d", cell.Day)
	var styled string
	switch cell.Status {
	case models.StatusCompleted:
		styled = completedStyle.Render(label)
	case models.StatusMissed:
		styled = missedStyle.Render(label)
	case models.StatusSkipped:
		styled = skippedStyle.Render(label)
	case models.StatusPartial:
		styled = partialStyle.Render(label)
	default:
		if cell.Future {
			styled = futureStyle.Render(label)
		} else {
			styled = label
		}
	}
	if selected {
		return selectedStyle.Render(label)
	}
	return styled
}

// Legend returns the status key line shown under the grid.
func Legend() string {
	return strings.Join([]string{
		completedStyle.Render("■ done"),
		missedStyle.Render("■ missed"),
		skippedStyle.Render("■ skipped"),
		partialStyle.Render("■ partial"),
	}, "  ")
}
