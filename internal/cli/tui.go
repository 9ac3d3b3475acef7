package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitdash/internal/calendar"
	"habitdash/internal/dashboard"
	"habitdash/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	opts := []dashboard.Option{}
	if ctx.Cache != nil {
		opts = append(opts, dashboard.WithCache(ctx.Cache))
	}
	// The model drives the initial load itself so it can show the
	// loading state.
	d := dashboard.New(ctx.Backend, userID, calendar.MonthOf(time.Now()), opts...)

	p := tea.NewProgram(tui.NewModel(d), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
