package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"habitdash/internal/models"
)

// Client speaks the detailed entries API: per-day status records with
// optional value and notes, queried by date range.
type Client struct {
	transport *Transport
}

// NewClient creates a detailed-flavor client on an existing transport.
func NewClient(t *Transport) *Client {
	return &Client{transport: t}
}

func (c *Client) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var habits []models.Habit
	err := c.transport.Do(ctx, http.MethodGet, fmt.Sprintf("/users/%s/habits", userID), nil, &habits)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (c *Client) CreateHabit(ctx context.Context, userID string, habit models.NewHabit) (*models.Habit, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var created models.Habit
	err := c.transport.Do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/habits", userID), habit, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateHabit(ctx context.Context, userID, habitID string, habit models.NewHabit) (*models.Habit, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return nil, err
	}
	var updated models.Habit
	err := c.transport.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%s/habits/%s", userID, habitID), habit, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	if err := requireID("habit id", habitID); err != nil {
		return err
	}
	return c.transport.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%s/habits/%s", userID, habitID), nil, nil)
}

func (c *Client) LogEntry(ctx context.Context, userID, habitID string, entry models.NewEntry) (*models.Entry, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return nil, err
	}
	var created models.Entry
	err := c.transport.Do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/habits/%s/entries", userID, habitID), entry, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListEntries(ctx context.Context, userID, habitID, start, end string) ([]models.Entry, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("startDate", start)
	params.Set("endDate", end)
	path := fmt.Sprintf("/users/%s/habits/%s/entries?%s", userID, habitID, params.Encode())
	var entries []models.Entry
	if err := c.transport.Do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) GetStreak(ctx context.Context, userID, habitID string) (int, error) {
	if err := requireID("user id", userID); err != nil {
		return 0, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return 0, err
	}
	var streak models.Streak
	err := c.transport.Do(ctx, http.MethodGet, fmt.Sprintf("/users/%s/habits/%s/streak", userID, habitID), nil, &streak)
	if err != nil {
		return 0, err
	}
	return streak.Streak, nil
}

func (c *Client) Ping(ctx context.Context) error {
	// Any well-formed response, including a 404 for the probe user, proves
	// the backend is reachable. Only transport-level failures count.
	err := c.transport.Do(ctx, http.MethodGet, "/users/1/habits", nil, nil)
	var apiErr *APIError
	if asAPIErr(err, &apiErr) {
		return nil
	}
	return err
}
