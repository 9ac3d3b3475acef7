// Package dashboard owns the client-side view state and the reconciliation
// logic that keeps it consistent with the backend after mutations.
package dashboard

import (
	"context"
	"sync"
	"time"

	"habitdash/internal/api"
	"habitdash/internal/cache"
	"habitdash/internal/calendar"
	"habitdash/internal/constants"
	"habitdash/internal/logger"
	"habitdash/internal/models"
	"habitdash/internal/validation"
)

// State is the page-load lifecycle.
type State int

const (
	StateInitial State = iota
	StateLoading
	StateReady
	StateLoadError
)

// Dashboard holds one user's habit list plus per-habit streaks and
// visible-month entries. All fields behind mu; the mutex is never held
// across a network call, so an optimistic update stays visible while its
// request is in flight.
type Dashboard struct {
	backend api.Backend
	cache   *cache.Cache // optional
	check   *validation.Validator
	userID  string
	now     func() time.Time

	mu       sync.Mutex
	state    State
	loadErr  error
	month    calendar.Month
	habits   []models.Habit
	streaks  map[string]int
	entries  map[string][]models.Entry
	versions map[string]uint64
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithCache attaches a local read cache.
func WithCache(c *cache.Cache) Option {
	return func(d *Dashboard) { d.cache = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// New creates a Dashboard for one user showing the given month.
func New(backend api.Backend, userID string, month calendar.Month, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:  backend,
		check:    validation.New(),
		userID:   userID,
		now:      time.Now,
		state:    StateInitial,
		month:    month,
		streaks:  make(map[string]int),
		entries:  make(map[string][]models.Entry),
		versions: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches the habit list, then refreshes every habit's streak and
// visible-month entries.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.state = StateLoading
	d.loadErr = nil
	d.mu.Unlock()

	habits, err := d.backend.ListHabits(ctx, d.userID)
	if err != nil {
		d.mu.Lock()
		d.state = StateLoadError
		d.loadErr = err
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.habits = habits
	d.state = StateReady
	d.mu.Unlock()

	d.RefreshAll(ctx)
	return nil
}

// RefreshAll refreshes streak and visible-month entries for every habit.
// Fetches run concurrently with a bounded worker pool; each habit's slice
// of state updates independently and a failure for one habit never blocks
// the others.
func (d *Dashboard) RefreshAll(ctx context.Context) {
	d.mu.Lock()
	ids := make([]string, 0, len(d.habits))
	for _, h := range d.habits {
		ids = append(ids, h.ID)
	}
	d.mu.Unlock()

	var wg sync.WaitGroup
	sem := make(chan struct{}, constants.RefreshWorkers)
	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(habitID string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := d.RefreshHabit(ctx, habitID); err != nil {
				logger.Warn("habit refresh failed", "habit", habitID, "error", err)
			}
		}(id)
	}
	wg.Wait()
}

// RefreshHabit re-fetches one habit's visible-month entries and streak,
// consulting the cache first.
func (d *Dashboard) RefreshHabit(ctx context.Context, habitID string) error {
	d.mu.Lock()
	month := d.month
	d.mu.Unlock()
	start, end := month.Range()

	entries, err := d.fetchEntries(ctx, habitID, start, end)
	if err != nil {
		return err
	}
	streak, err := d.fetchStreak(ctx, habitID)
	if err != nil {
		return err
	}

	d.mu.Lock()
	// Month may have moved while the fetch was in flight; stale pages are
	// dropped rather than clobbering the new month's view.
	if d.month == month {
		d.entries[habitID] = entries
		d.streaks[habitID] = streak
	}
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) fetchEntries(ctx context.Context, habitID, start, end string) ([]models.Entry, error) {
	if d.cache != nil {
		if cached, ok, err := d.cache.GetEntries(d.userID, habitID, start, end); err == nil && ok {
			return cached, nil
		}
	}
	entries, err := d.backend.ListEntries(ctx, d.userID, habitID, start, end)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		if err := d.cache.PutEntries(d.userID, habitID, start, end, entries); err != nil {
			logger.Warn("cache write failed", "habit", habitID, "error", err)
		}
	}
	return entries, nil
}

func (d *Dashboard) fetchStreak(ctx context.Context, habitID string) (int, error) {
	if d.cache != nil {
		if cached, ok, err := d.cache.GetStreak(d.userID, habitID); err == nil && ok {
			return cached, nil
		}
	}
	streak, err := d.backend.GetStreak(ctx, d.userID, habitID)
	if err != nil {
		return 0, err
	}
	if d.cache != nil {
		if err := d.cache.PutStreak(d.userID, habitID, streak); err != nil {
			logger.Warn("cache write failed", "habit", habitID, "error", err)
		}
	}
	return streak, nil
}

func (d *Dashboard) invalidate(habitID string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.InvalidateHabit(d.userID, habitID); err != nil {
		logger.Warn("cache invalidation failed", "habit", habitID, "error", err)
	}
}
