package cli

import (
	"context"
	"fmt"
	"time"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
)

type MarkCmd struct {
	Habit  string   `arg:"" help:"Habit name or id."`
	Date   string   `help:"Date in YYYY-MM-DD format (default: today)."`
	Status string   `help:"Explicit status (completed, missed, skipped, partial). Omit to toggle." short:"s"`
	Value  *float64 `help:"Optional numeric value (e.g. minutes)."`
	Notes  string   `help:"Optional note for this entry."`
}

func (c *MarkCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	date, err := ParseDate(c.Date, time.Now)
	if err != nil {
		return err
	}

	day, _ := time.Parse("2006-01-02", date)
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(day))
	if err != nil {
		return err
	}
	habit, err := FindHabit(d, c.Habit)
	if err != nil {
		return err
	}

	var entry *models.Entry
	if c.Status == "" {
		entry, err = d.ToggleEntry(ctx, habit.ID, date)
	} else {
		var status models.EntryStatus
		status, err = models.ParseEntryStatus(c.Status)
		if err != nil {
			return err
		}
		entry, err = d.SetEntry(ctx, habit.ID, models.NewEntry{
			EntryDate: date,
			Status:    status,
			Value:     c.Value,
			Notes:     c.Notes,
		})
	}
	if err != nil {
		return err
	}

	fmt.Printf("Marked habit %q as %s for %s (streak %d)\n",
		habit.Name, entry.Status, date, d.Streak(habit.ID))
	return nil
}

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TodayCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	date, err := ParseDate(c.Date, time.Now)
	if err != nil {
		return err
	}

	day, _ := time.Parse("2006-01-02", date)
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(day))
	if err != nil {
		return err
	}

	rows := d.DayTable(ctx, date)
	if len(rows) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", date)
	done := 0
	for _, row := range rows {
		box := "[ ]"
		switch {
		case row.Err != nil:
			box = "[?]"
		case row.Status == models.StatusCompleted:
			box = "[x]"
			done++
		case row.Status == models.StatusSkipped:
			box = "[-]"
		case row.Status == models.StatusPartial:
			box = "[~]"
		}
		fmt.Printf("%s %s\n", box, row.Habit.Name)
	}
	fmt.Printf("\nCompleted: %d/%d\n", done, len(rows))
	return nil
}

type StreakCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *StreakCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(time.Now()))
	if err != nil {
		return err
	}
	habit, err := FindHabit(d, c.Habit)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d day streak\n", habit.Name, d.Streak(habit.ID))
	return nil
}
