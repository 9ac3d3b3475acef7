package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"habitdash/internal/auth"
	"habitdash/internal/keyring"
	"habitdash/internal/logger"
)

type LoginCmd struct {
	Email    string `help:"Account email." short:"e"`
	Password string `help:"Account password (prompted when omitted)." short:"p"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	email := c.Email
	password := c.Password

	if email == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	session, err := auth.Login(email, password)
	if err != nil {
		return err
	}

	if err := keyring.SaveSession(session); err != nil {
		return err
	}

	logger.Info("signed in", "email", session.Email, "userID", session.UserID)
	fmt.Printf("Signed in as %s (backend user %s)\n", session.Name, session.UserID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteSession(); err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("Not signed in.")
			return nil
		}
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	if ctx.Cfg.UserID != "" {
		fmt.Printf("Acting as backend user %s (environment override)\n", ctx.Cfg.UserID)
		return nil
	}
	session, err := keyring.LoadSession()
	if err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("Not signed in.")
			return nil
		}
		return err
	}
	fmt.Printf("%s <%s>, backend user %s\n", session.Name, session.Email, session.UserID)
	return nil
}
