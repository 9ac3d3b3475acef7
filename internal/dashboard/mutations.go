package dashboard

import (
	"context"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
	"habitdash/internal/validation"
)

// AddHabit validates the form, creates the habit, then re-fetches the full
// habit list. There is no optimistic path for add: callers keep the form
// disabled until this returns.
func (d *Dashboard) AddHabit(ctx context.Context, habit models.NewHabit) (*models.Habit, error) {
	form := validation.HabitForm{
		Name:          habit.Name,
		Description:   habit.Description,
		ColorHex:      habit.ColorHex,
		FrequencyType: habit.FrequencyType,
	}
	if err := d.check.CheckHabitForm(form); err != nil {
		return nil, err
	}

	created, err := d.backend.CreateHabit(ctx, d.userID, habit)
	if err != nil {
		return nil, err
	}

	habits, err := d.backend.ListHabits(ctx, d.userID)
	if err != nil {
		// The create succeeded; the stale list is the lesser problem.
		d.mu.Lock()
		d.habits = append(d.habits, *created)
		d.mu.Unlock()
		return created, nil
	}

	d.mu.Lock()
	d.habits = habits
	d.mu.Unlock()

	_ = d.RefreshHabit(ctx, created.ID)
	return created, nil
}

// EditHabit applies a partial update, then re-fetches the habit list.
func (d *Dashboard) EditHabit(ctx context.Context, habitID string, habit models.NewHabit) (*models.Habit, error) {
	if habit.Name != "" || habit.Description != "" || habit.ColorHex != "" || habit.FrequencyType != "" {
		form := validation.HabitForm{
			Name:          habit.Name,
			Description:   habit.Description,
			ColorHex:      habit.ColorHex,
			FrequencyType: habit.FrequencyType,
		}
		if habit.Name == "" {
			// Partial update may leave the name untouched.
			form.Name = "unchanged"
		}
		if err := d.check.CheckHabitForm(form); err != nil {
			return nil, err
		}
	}

	updated, err := d.backend.UpdateHabit(ctx, d.userID, habitID, habit)
	if err != nil {
		return nil, err
	}

	if habits, err := d.backend.ListHabits(ctx, d.userID); err == nil {
		d.mu.Lock()
		d.habits = habits
		d.mu.Unlock()
	}
	return updated, nil
}

// DeleteHabit removes the habit optimistically, restoring the exact prior
// list contents and order if the server call fails.
func (d *Dashboard) DeleteHabit(ctx context.Context, habitID string) error {
	d.mu.Lock()
	original := make([]models.Habit, len(d.habits))
	copy(original, d.habits)
	filtered := d.habits[:0:0]
	for _, h := range d.habits {
		if h.ID != habitID {
			filtered = append(filtered, h)
		}
	}
	d.habits = filtered
	d.mu.Unlock()

	if err := d.backend.DeleteHabit(ctx, d.userID, habitID); err != nil {
		d.mu.Lock()
		d.habits = original
		d.mu.Unlock()
		return err
	}

	d.invalidate(habitID)
	d.mu.Lock()
	delete(d.streaks, habitID)
	delete(d.entries, habitID)
	delete(d.versions, habitID)
	d.mu.Unlock()
	return nil
}

// ToggleEntry cycles the day's status (completed -> missed -> completed)
// and reconciles. Future dates are rejected before any network call. There
// is no optimistic flip: on failure the held state is untouched; on
// success the habit's month and streak are re-fetched and its version
// counter bumped so dependent views re-render.
func (d *Dashboard) ToggleEntry(ctx context.Context, habitID, date string) (*models.Entry, error) {
	next := models.StatusCompleted
	if d.StatusOn(habitID, date) == models.StatusCompleted {
		next = models.StatusMissed
	}
	return d.SetEntry(ctx, habitID, models.NewEntry{EntryDate: date, Status: next})
}

// SetEntry writes an explicit status (with optional value/notes) for a
// day, then reconciles like ToggleEntry.
func (d *Dashboard) SetEntry(ctx context.Context, habitID string, entry models.NewEntry) (*models.Entry, error) {
	if err := calendar.CheckNotFuture(entry.EntryDate, d.now()); err != nil {
		return nil, err
	}

	logged, err := d.backend.LogEntry(ctx, d.userID, habitID, entry)
	if err != nil {
		return nil, err
	}

	d.invalidate(habitID)
	if err := d.RefreshHabit(ctx, habitID); err != nil {
		// The write landed; a refresh failure only leaves the view stale.
		return logged, nil
	}

	d.mu.Lock()
	d.versions[habitID]++
	d.mu.Unlock()
	return logged, nil
}

// SetMonth changes the displayed month and refreshes every habit's page
// for it.
func (d *Dashboard) SetMonth(ctx context.Context, month calendar.Month) {
	d.mu.Lock()
	if d.month == month {
		d.mu.Unlock()
		return
	}
	d.month = month
	d.entries = make(map[string][]models.Entry)
	d.mu.Unlock()

	d.RefreshAll(ctx)
}
