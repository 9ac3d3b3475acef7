package dashboard

import (
	"context"
	"sync"

	"habitdash/internal/calendar"
	"habitdash/internal/constants"
	"habitdash/internal/models"
)

// State returns the load lifecycle state.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LoadErr returns the error that put the dashboard in StateLoadError.
func (d *Dashboard) LoadErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadErr
}

// Habits returns a copy of the current habit list.
func (d *Dashboard) Habits() []models.Habit {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Habit, len(d.habits))
	copy(out, d.habits)
	return out
}

// Month returns the displayed month.
func (d *Dashboard) Month() calendar.Month {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.month
}

// Streak returns the held streak for a habit.
func (d *Dashboard) Streak(habitID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streaks[habitID]
}

// Entries returns the held visible-month entries for a habit.
func (d *Dashboard) Entries(habitID string) []models.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Entry, len(d.entries[habitID]))
	copy(out, d.entries[habitID])
	return out
}

// Version returns the habit's monotonic change counter. Dependent views
// re-fetch when it moves.
func (d *Dashboard) Version(habitID string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.versions[habitID]
}

// StatusOn returns the held status for (habit, date), empty when no entry
// is held.
func (d *Dashboard) StatusOn(habitID, date string) models.EntryStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.entries[habitID] {
		if e.EntryDate == date {
			return e.Status
		}
	}
	return ""
}

// Grid returns the calendar cells for a habit's visible month.
func (d *Dashboard) Grid(habitID string) []calendar.Cell {
	d.mu.Lock()
	month := d.month
	entries := make([]models.Entry, len(d.entries[habitID]))
	copy(entries, d.entries[habitID])
	d.mu.Unlock()
	return calendar.Grid(month, entries, d.now())
}

// DayRow is one line of the daily completion table.
type DayRow struct {
	Habit  models.Habit
	Status models.EntryStatus
	Err    error
}

// DayTable fetches every habit's status for one date. The backend has no
// batch endpoint, so this costs one request per habit; requests run
// concurrently through the same bounded pool as RefreshAll and hit the
// cache when the page is already held.
func (d *Dashboard) DayTable(ctx context.Context, date string) []DayRow {
	habits := d.Habits()
	rows := make([]DayRow, len(habits))

	var wg sync.WaitGroup
	sem := make(chan struct{}, constants.RefreshWorkers)
	for i, h := range habits {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, h models.Habit) {
			defer wg.Done()
			defer func() { <-sem }()
			entries, err := d.fetchEntries(ctx, h.ID, date, date)
			row := DayRow{Habit: h, Err: err}
			for _, e := range entries {
				if e.EntryDate == date {
					row.Status = e.Status
				}
			}
			rows[i] = row
		}(i, h)
	}
	wg.Wait()
	return rows
}
