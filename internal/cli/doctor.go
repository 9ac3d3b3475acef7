package cli

import (
	"context"
	"fmt"
	"time"

	"habitdash/internal/keyring"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(cliCtx *Context) error {
	fmt.Println("habitdash doctor")
	fmt.Println()

	failures := 0

	fmt.Printf("Backend (%s, %s flavor): ", cliCtx.Cfg.BaseURL, cliCtx.Cfg.Flavor)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cliCtx.Backend.Ping(ctx); err != nil {
		fmt.Printf("✗ unreachable (%v)\n", err)
		failures++
	} else {
		fmt.Println("✓ reachable")
	}

	fmt.Print("OS keyring: ")
	if keyring.IsAvailable() {
		fmt.Println("✓ available")
	} else {
		fmt.Println("✗ unavailable (sessions cannot be stored; use HABITDASH_USER_ID)")
		failures++
	}

	fmt.Print("Session: ")
	switch {
	case cliCtx.Cfg.UserID != "":
		fmt.Printf("✓ environment override (user %s)\n", cliCtx.Cfg.UserID)
	default:
		if session, err := keyring.LoadSession(); err != nil {
			fmt.Println("– not signed in")
		} else {
			fmt.Printf("✓ %s (user %s)\n", session.Email, session.UserID)
		}
	}

	fmt.Print("Local cache: ")
	if cliCtx.Cache != nil {
		fmt.Printf("✓ %s\n", cliCtx.Cfg.CachePath())
	} else {
		fmt.Println("– disabled (falling back to direct fetches)")
	}

	fmt.Println()
	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Println("All checks passed.")
	return nil
}
