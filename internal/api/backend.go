package api

import (
	"context"
	"time"

	"habitdash/internal/constants"
	"habitdash/internal/models"
)

// Backend is the resource client surface. Two implementations exist: the
// detailed entries API (per-day status records) and the simple completions
// API (boolean done flags). Both normalize onto the same entry model so the
// rest of the app is flavor-agnostic.
type Backend interface {
	ListHabits(ctx context.Context, userID string) ([]models.Habit, error)
	CreateHabit(ctx context.Context, userID string, habit models.NewHabit) (*models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID string, habit models.NewHabit) (*models.Habit, error)
	DeleteHabit(ctx context.Context, userID, habitID string) error

	// LogEntry creates or overwrites the record for (habit, entry date).
	LogEntry(ctx context.Context, userID, habitID string, entry models.NewEntry) (*models.Entry, error)
	// ListEntries returns the records whose date falls in [start, end],
	// both ISO calendar dates.
	ListEntries(ctx context.Context, userID, habitID, start, end string) ([]models.Entry, error)

	GetStreak(ctx context.Context, userID, habitID string) (int, error)

	// Ping checks backend reachability. Used by doctor.
	Ping(ctx context.Context) error
}

// New selects a Backend implementation by flavor.
func New(flavor constants.APIFlavor, baseURL string, timeout time.Duration) Backend {
	t := NewTransport(baseURL, timeout, nil)
	if flavor == constants.FlavorSimple {
		return &SimpleClient{transport: t}
	}
	return &Client{transport: t}
}
