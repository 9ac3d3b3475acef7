package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"habitdash/internal/api"
	"habitdash/internal/cli"
	"habitdash/internal/config"
	"habitdash/internal/constants"
	apperrors "habitdash/internal/errors"
	"habitdash/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag

	Login  cli.LoginCmd  `cmd:"" help:"Sign in and store a session."`
	Logout cli.LogoutCmd `cmd:"" help:"Clear the stored session."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the signed-in account."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Mark   cli.MarkCmd   `cmd:"" help:"Toggle or set a habit entry for a day."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's checklist."`
	Cal    cli.CalCmd    `cmd:"" help:"Show a habit's month calendar."`
	Streak cli.StreakCmd `cmd:"" help:"Show a habit's current streak."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run connectivity and environment checks."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking dashboard for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	appCtx := &cli.Context{
		Cfg:     cfg,
		Backend: api.New(cfg.Flavor, cfg.BaseURL, cfg.Timeout),
		Cache:   cli.OpenCache(cfg),
	}
	runErr := ctx.Run(appCtx)
	if appCtx.Cache != nil {
		appCtx.Cache.Close()
	}
	apperrors.Fatal(runErr)
}
