package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"habitdash/internal/constants"
	"habitdash/internal/models"
)

// SimpleClient speaks the completions API: a boolean done flag per day,
// with month-scoped listing that returns bare date strings. Results are
// normalized into entries with status completed so callers never see the
// dialect difference.
type SimpleClient struct {
	transport *Transport
}

// NewSimpleClient creates a simple-flavor client on an existing transport.
func NewSimpleClient(t *Transport) *SimpleClient {
	return &SimpleClient{transport: t}
}

func (c *SimpleClient) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
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

func (c *SimpleClient) CreateHabit(ctx context.Context, userID string, habit models.NewHabit) (*models.Habit, error) {
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

func (c *SimpleClient) UpdateHabit(ctx context.Context, userID, habitID string, habit models.NewHabit) (*models.Habit, error) {
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

func (c *SimpleClient) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	if err := requireID("habit id", habitID); err != nil {
		return err
	}
	return c.transport.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%s/habits/%s", userID, habitID), nil, nil)
}

// LogEntry maps a status write onto the boolean completions endpoint:
// completed means done, anything else clears the day.
func (c *SimpleClient) LogEntry(ctx context.Context, userID, habitID string, entry models.NewEntry) (*models.Entry, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return nil, err
	}
	payload := struct {
		Date      string `json:"date"`
		Completed bool   `json:"completed"`
	}{
		Date:      entry.EntryDate,
		Completed: entry.Status == models.StatusCompleted,
	}
	path := fmt.Sprintf("/users/%s/habits/%s/completions", userID, habitID)
	if err := c.transport.Do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return nil, err
	}
	return &models.Entry{HabitID: habitID, EntryDate: entry.EntryDate, Status: entry.Status}, nil
}

// ListEntries lists completions for every month overlapping [start, end]
// and filters to the range. The backend only exposes month-scoped listing.
func (c *SimpleClient) ListEntries(ctx context.Context, userID, habitID, start, end string) ([]models.Entry, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	if err := requireID("habit id", habitID); err != nil {
		return nil, err
	}
	first, err := time.Parse(constants.DateFormat, start)
	if err != nil {
		return nil, &ValidationError{Field: "start date", Reason: "must be YYYY-MM-DD"}
	}
	last, err := time.Parse(constants.DateFormat, end)
	if err != nil {
		return nil, &ValidationError{Field: "end date", Reason: "must be YYYY-MM-DD"}
	}
	if last.Before(first) {
		return nil, &ValidationError{Field: "date range", Reason: "end precedes start"}
	}

	var entries []models.Entry
	for month := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(last); month = month.AddDate(0, 1, 0) {
		dates, err := c.listMonth(ctx, userID, habitID, month.Year(), int(month.Month()))
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			day, err := time.Parse(constants.DateFormat, d)
			if err != nil {
				continue
			}
			if day.Before(first) || day.After(last) {
				continue
			}
			entries = append(entries, models.Entry{
				HabitID:   habitID,
				EntryDate: d,
				Status:    models.StatusCompleted,
			})
		}
	}
	return entries, nil
}

func (c *SimpleClient) listMonth(ctx context.Context, userID, habitID string, year, month int) ([]string, error) {
	params := url.Values{}
	params.Set("year", fmt.Sprintf("%d", year))
	params.Set("month", fmt.Sprintf("%d", month))
	path := fmt.Sprintf("/users/%s/habits/%s/completions?%s", userID, habitID, params.Encode())
	var dates []string
	if err := c.transport.Do(ctx, http.MethodGet, path, nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (c *SimpleClient) GetStreak(ctx context.Context, userID, habitID string) (int, error) {
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

func (c *SimpleClient) Ping(ctx context.Context) error {
	err := c.transport.Do(ctx, http.MethodGet, "/users/1/habits", nil, nil)
	var apiErr *APIError
	if asAPIErr(err, &apiErr) {
		return nil
	}
	return err
}

func asAPIErr(err error, target **APIError) bool {
	return err != nil && errors.As(err, target)
}
