package cli

import (
	"context"
	"fmt"
	"time"

	"habitdash/internal/api"
	"habitdash/internal/cache"
	"habitdash/internal/calendar"
	"habitdash/internal/config"
	"habitdash/internal/dashboard"
	"habitdash/internal/keyring"
	"habitdash/internal/logger"
	"habitdash/internal/models"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Cfg     *config.Config
	Backend api.Backend
	Cache   *cache.Cache
}

// UserID resolves the backend user identity: the environment override
// wins, otherwise the stored session is used.
func (c *Context) UserID() (string, error) {
	if c.Cfg.UserID != "" {
		return c.Cfg.UserID, nil
	}
	session, err := keyring.LoadSession()
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("not signed in, run 'habitdash login' first")
		}
		return "", err
	}
	return session.UserID, nil
}

// Dashboard builds and loads a dashboard for the resolved user.
func (c *Context) Dashboard(ctx context.Context, month calendar.Month) (*dashboard.Dashboard, error) {
	userID, err := c.UserID()
	if err != nil {
		return nil, err
	}
	opts := []dashboard.Option{}
	if c.Cache != nil {
		opts = append(opts, dashboard.WithCache(c.Cache))
	}
	d := dashboard.New(c.Backend, userID, month, opts...)
	if err := d.Load(ctx); err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	return d, nil
}

// FindHabit resolves a habit by id or name against the loaded list.
func FindHabit(d *dashboard.Dashboard, ref string) (*models.Habit, error) {
	for _, h := range d.Habits() {
		if h.ID == ref || h.Name == ref {
			habit := h
			return &habit, nil
		}
	}
	return nil, fmt.Errorf("habit %q not found", ref)
}

// OpenCache opens the local read cache, degrading to no cache on failure.
func OpenCache(cfg *config.Config) *cache.Cache {
	c := cache.New(cfg.CachePath())
	if err := c.Open(); err != nil {
		logger.Warn("cache unavailable, falling back to direct fetches", "error", err)
		return nil
	}
	return c
}

// ParseDate validates a YYYY-MM-DD flag, defaulting to today.
func ParseDate(s string, now func() time.Time) (string, error) {
	if s == "" {
		return now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return s, nil
}
