package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name          string `arg:"" help:"Habit name."`
	Description   string `help:"Optional description." short:"d"`
	Color         string `help:"Hex color like #4ade80."`
	Frequency     string `help:"Frequency type (daily, specific_days_of_week, weekly_x_times, every_x_days)."`
	FrequencyArgs string `help:"Frequency detail, e.g. 'Mon,Wed,Fri' or '3'."`
}

func (c *HabitAddCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(time.Now()))
	if err != nil {
		return err
	}

	habit := models.NewHabit{
		Name:             c.Name,
		Description:      c.Description,
		ColorHex:         c.Color,
		FrequencyType:    c.Frequency,
		FrequencyDetails: parseFrequencyDetails(c.Frequency, c.FrequencyArgs),
	}

	created, err := d.AddHabit(ctx, habit)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit %q (id %s)\n", created.Name, created.ID)
	return nil
}

// parseFrequencyDetails shapes the loose detail payload the backend
// expects for each frequency type.
func parseFrequencyDetails(frequencyType, raw string) map[string]any {
	if raw == "" {
		return nil
	}
	switch frequencyType {
	case "specific_days_of_week":
		parts := strings.Split(raw, ",")
		days := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				days = append(days, p)
			}
		}
		return map[string]any{"days_of_week": days}
	case "weekly_x_times":
		return map[string]any{"times_per_week": strings.TrimSpace(raw)}
	case "every_x_days":
		return map[string]any{"interval_days": strings.TrimSpace(raw)}
	default:
		return map[string]any{"raw": raw}
	}
}

type HabitListCmd struct {
	Streaks bool `help:"Include each habit's current streak." short:"s"`
}

func (c *HabitListCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(time.Now()))
	if err != nil {
		return err
	}

	habits := d.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		line := h.Name
		if h.Description != "" {
			line += " - " + h.Description
		}
		if c.Streaks {
			line += fmt.Sprintf(" (streak %d)", d.Streak(h.ID))
		}
		fmt.Println(line)
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit name or id."`
	Name        string `help:"New name."`
	Description string `help:"New description." short:"d"`
	Color       string `help:"New hex color."`
}

func (c *HabitEditCmd) Run(cliCtx *Context) error {
	if c.Name == "" && c.Description == "" && c.Color == "" {
		return fmt.Errorf("nothing to change: pass --name, --description, or --color")
	}

	ctx := context.Background()
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(time.Now()))
	if err != nil {
		return err
	}
	habit, err := FindHabit(d, c.Habit)
	if err != nil {
		return err
	}

	updated, err := d.EditHabit(ctx, habit.ID, models.NewHabit{
		Name:        c.Name,
		Description: c.Description,
		ColorHex:    c.Color,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit %q\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(cliCtx *Context) error {
	ctx := context.Background()
	d, err := cliCtx.Dashboard(ctx, calendar.MonthOf(time.Now()))
	if err != nil {
		return err
	}
	habit, err := FindHabit(d, c.Habit)
	if err != nil {
		return err
	}

	if err := d.DeleteHabit(ctx, habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q\n", habit.Name)
	return nil
}
