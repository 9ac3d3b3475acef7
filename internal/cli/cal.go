package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
)

type CalCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Month string `help:"Month in YYYY-MM format (default: current)." short:"m"`
}

func (c *CalCmd) Run(cliCtx *Context) error {
	ctx := context.Background()

	month := calendar.MonthOf(time.Now())
	if c.Month != "" {
		parsed, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		month = parsed
	}

	d, err := cliCtx.Dashboard(ctx, month)
	if err != nil {
		return err
	}
	habit, err := FindHabit(d, c.Habit)
	if err != nil {
		return err
	}

	cells := d.Grid(habit.ID)
	fmt.Printf("%s - %s\n\n", habit.Name, month)
	fmt.Println("Su Mo Tu We Th Fr Sa")

	// Pad the first week so day 1 lands under its weekday.
	offset := int(month.First().Weekday())
	var line []string
	for i := 0; i < offset; i++ {
		line = append(line, "  ")
	}
	for _, cell := range cells {
		line = append(line, cellGlyph(cell))
		if len(line) == 7 {
			fmt.Println(strings.Join(line, " "))
			line = nil
		}
	}
	if len(line) > 0 {
		fmt.Println(strings.Join(line, " "))
	}

	fmt.Printf("\nx done  · missed  - skipped  ~ partial  (streak %d)\n", d.Streak(habit.ID))
	return nil
}

func cellGlyph(cell calendar.Cell) string {
	switch cell.Status {
	case models.StatusCompleted:
		return " x"
	case models.StatusMissed:
		return " ·"
	case models.StatusSkipped:
		return " -"
	case models.StatusPartial:
		return " ~"
	}
	if cell.Future {
		return " ."
	}
	return fmt.Sprintf("%2d", cell.Day)
}
