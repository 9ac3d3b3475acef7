package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"habitdash/internal/calendar"
	"habitdash/internal/models"
)

// fakeBackend is an in-memory api.Backend with per-operation failure
// switches and a call counter.
type fakeBackend struct {
	mu      sync.Mutex
	nextID  int
	habits  []models.Habit
	entries map[string]map[string]models.Entry // habitID -> date -> entry

	failDelete bool
	failLog    bool
	failList   bool

	calls map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:  1,
		entries: make(map[string]map[string]models.Entry),
		calls:   make(map[string]int),
	}
}

func (f *fakeBackend) count(op string) {
	f.calls[op]++
}

func (f *fakeBackend) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeBackend) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("list")
	if f.failList {
		return nil, errors.New("backend unavailable")
	}
	out := make([]models.Habit, len(f.habits))
	copy(out, f.habits)
	return out, nil
}

func (f *fakeBackend) CreateHabit(ctx context.Context, userID string, habit models.NewHabit) (*models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("create")
	h := models.Habit{ID: strconv.Itoa(f.nextID), UserID: userID, Name: habit.Name, Description: habit.Description}
	f.nextID++
	f.habits = append(f.habits, h)
	f.entries[h.ID] = make(map[string]models.Entry)
	return &h, nil
}

func (f *fakeBackend) UpdateHabit(ctx context.Context, userID, habitID string, habit models.NewHabit) (*models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("update")
	for i, h := range f.habits {
		if h.ID == habitID {
			if habit.Name != "" {
				f.habits[i].Name = habit.Name
			}
			if habit.Description != "" {
				f.habits[i].Description = habit.Description
			}
			return &f.habits[i], nil
		}
	}
	return nil, errors.New("habit not found")
}

func (f *fakeBackend) DeleteHabit(ctx context.Context, userID, habitID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("delete")
	if f.failDelete {
		return errors.New("backend unavailable")
	}
	for i, h := range f.habits {
		if h.ID == habitID {
			f.habits = append(f.habits[:i], f.habits[i+1:]...)
			delete(f.entries, habitID)
			return nil
		}
	}
	return errors.New("habit not found")
}

func (f *fakeBackend) LogEntry(ctx context.Context, userID, habitID string, entry models.NewEntry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("log")
	if f.failLog {
		return nil, errors.New("backend unavailable")
	}
	if f.entries[habitID] == nil {
		f.entries[habitID] = make(map[string]models.Entry)
	}
	e := models.Entry{HabitID: habitID, EntryDate: entry.EntryDate, Status: entry.Status, Value: entry.Value, Notes: entry.Notes}
	f.entries[habitID][entry.EntryDate] = e
	return &e, nil
}

func (f *fakeBackend) ListEntries(ctx context.Context, userID, habitID, start, end string) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("entries")
	var out []models.Entry
	for date, e := range f.entries[habitID] {
		if date >= start && date <= end {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetStreak(ctx context.Context, userID, habitID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("streak")
	n := 0
	for _, e := range f.entries[habitID] {
		if e.Status == models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeBackend) Ping(ctx context.Context) error { return nil }

var testClock = func() time.Time {
	return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
}

func newTestDashboard(t *testing.T, fake *fakeBackend) *Dashboard {
	t.Helper()
	return New(fake, "1", calendar.Month{Year: 2026, Month: time.August}, WithClock(testClock))
}

func TestLoadLifecycle(t *testing.T) {
	fake := newFakeBackend()
	for i := 0; i < 3; i++ {
		_, _ = fake.CreateHabit(context.Background(), "1", models.NewHabit{Name: fmt.Sprintf("habit %d", i)})
	}

	d := newTestDashboard(t, fake)
	if d.State() != StateInitial {
		t.Fatalf("state = %v, want StateInitial", d.State())
	}

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if d.State() != StateReady {
		t.Errorf("state = %v, want StateReady", d.State())
	}
	if len(d.Habits()) != 3 {
		t.Errorf("got %d habits, want 3", len(d.Habits()))
	}
}

func TestLoadError(t *testing.T) {
	fake := newFakeBackend()
	fake.failList = true

	d := newTestDashboard(t, fake)
	if err := d.Load(context.Background()); err == nil {
		t.Fatal("Load() should fail when the list fetch fails")
	}
	if d.State() != StateLoadError {
		t.Errorf("state = %v, want StateLoadError", d.State())
	}
	if d.LoadErr() == nil {
		t.Error("LoadErr() should be set")
	}
}

func TestAddHabitEmptyNameMakesNoNetworkCall(t *testing.T) {
	fake := newFakeBackend()
	d := newTestDashboard(t, fake)

	before := fake.totalCalls()
	if _, err := d.AddHabit(context.Background(), models.NewHabit{Name: "  "}); err == nil {
		t.Fatal("AddHabit with empty name should fail validation")
	}
	if fake.totalCalls() != before {
		t.Errorf("validation failure reached the network: %d calls", fake.totalCalls()-before)
	}
}

func TestAddHabitRefetchesList(t *testing.T) {
	fake := newFakeBackend()
	d := newTestDashboard(t, fake)
	_ = d.Load(context.Background())

	created, err := d.AddHabit(context.Background(), models.NewHabit{Name: "Read", Description: "30 min"})
	if err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created habit has no server-assigned id")
	}

	habits := d.Habits()
	if len(habits) != 1 || habits[0].Name != "Read" || habits[0].Description != "30 min" {
		t.Errorf("Habits() = %+v", habits)
	}
}

func TestDeleteHabitOptimisticWithRollback(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, _ = fake.CreateHabit(ctx, "1", models.NewHabit{Name: name})
	}

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)
	original := d.Habits()

	// Successful delete removes exactly the target.
	if err := d.DeleteHabit(ctx, original[1].ID); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	after := d.Habits()
	if len(after) != 2 || after[0].Name != "alpha" || after[1].Name != "gamma" {
		t.Fatalf("Habits() after delete = %+v", after)
	}

	// Failed delete restores the exact prior contents and order.
	fake.failDelete = true
	if err := d.DeleteHabit(ctx, after[0].ID); err == nil {
		t.Fatal("DeleteHabit() should surface the backend failure")
	}
	restored := d.Habits()
	if len(restored) != len(after) {
		t.Fatalf("rollback lost habits: %+v", restored)
	}
	for i := range after {
		if restored[i].ID != after[i].ID {
			t.Errorf("rollback order mismatch at %d: %q vs %q", i, restored[i].ID, after[i].ID)
		}
	}
}

func TestToggleEntryFutureDateRejectedBeforeNetwork(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	before := fake.callCount("log")
	_, err := d.ToggleEntry(ctx, h.ID, "2026-08-21")
	if !errors.Is(err, calendar.ErrFutureDate) {
		t.Fatalf("ToggleEntry(future) = %v, want ErrFutureDate", err)
	}
	if fake.callCount("log") != before {
		t.Error("future-date toggle reached the network")
	}
}

func TestToggleEntryCycleAndVersion(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	const date = "2026-08-10"
	v0 := d.Version(h.ID)

	if _, err := d.ToggleEntry(ctx, h.ID, date); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if got := d.StatusOn(h.ID, date); got != models.StatusCompleted {
		t.Errorf("status after first toggle = %q, want completed", got)
	}
	if d.Version(h.ID) != v0+1 {
		t.Errorf("version = %d, want %d", d.Version(h.ID), v0+1)
	}

	if _, err := d.ToggleEntry(ctx, h.ID, date); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if got := d.StatusOn(h.ID, date); got != models.StatusMissed {
		t.Errorf("status after second toggle = %q, want missed", got)
	}

	if _, err := d.ToggleEntry(ctx, h.ID, date); err != nil {
		t.Fatalf("third toggle failed: %v", err)
	}
	if got := d.StatusOn(h.ID, date); got != models.StatusCompleted {
		t.Errorf("status after third toggle = %q, want completed again", got)
	}
}

func TestToggleEntryFailureLeavesStateUntouched(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	const date = "2026-08-10"
	if _, err := d.ToggleEntry(ctx, h.ID, date); err != nil {
		t.Fatal(err)
	}
	statusBefore := d.StatusOn(h.ID, date)
	versionBefore := d.Version(h.ID)

	fake.failLog = true
	if _, err := d.ToggleEntry(ctx, h.ID, date); err == nil {
		t.Fatal("toggle should surface the backend failure")
	}
	if d.StatusOn(h.ID, date) != statusBefore {
		t.Error("failed toggle changed held state")
	}
	if d.Version(h.ID) != versionBefore {
		t.Error("failed toggle bumped the version counter")
	}
}

func TestSetEntryWithValueAndNotes(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Read"})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	value := 30.0
	logged, err := d.SetEntry(ctx, h.ID, models.NewEntry{
		EntryDate: "2026-08-10",
		Status:    models.StatusPartial,
		Value:     &value,
		Notes:     "only half a chapter",
	})
	if err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	if logged.Status != models.StatusPartial || logged.Value == nil || *logged.Value != 30.0 {
		t.Errorf("logged entry = %+v", logged)
	}
}

func TestSetMonthRefetchesEntries(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})
	_, _ = fake.LogEntry(ctx, "1", h.ID, models.NewEntry{EntryDate: "2026-07-15", Status: models.StatusCompleted})
	_, _ = fake.LogEntry(ctx, "1", h.ID, models.NewEntry{EntryDate: "2026-08-15", Status: models.StatusCompleted})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	if entries := d.Entries(h.ID); len(entries) != 1 || entries[0].EntryDate != "2026-08-15" {
		t.Fatalf("august entries = %+v", entries)
	}

	d.SetMonth(ctx, calendar.Month{Year: 2026, Month: time.July})
	if entries := d.Entries(h.ID); len(entries) != 1 || entries[0].EntryDate != "2026-07-15" {
		t.Errorf("july entries = %+v", entries)
	}
}

func TestGridReflectsHeldEntries(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	h, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})
	_, _ = fake.LogEntry(ctx, "1", h.ID, models.NewEntry{EntryDate: "2026-08-05", Status: models.StatusCompleted})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	cells := d.Grid(h.ID)
	if len(cells) != 31 {
		t.Fatalf("august grid has %d cells", len(cells))
	}
	if cells[4].Status != models.StatusCompleted {
		t.Errorf("day 5 status = %q", cells[4].Status)
	}
}

func TestDayTable(t *testing.T) {
	fake := newFakeBackend()
	ctx := context.Background()
	a, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Run"})
	b, _ := fake.CreateHabit(ctx, "1", models.NewHabit{Name: "Read"})
	_, _ = fake.LogEntry(ctx, "1", a.ID, models.NewEntry{EntryDate: "2026-08-20", Status: models.StatusCompleted})

	d := newTestDashboard(t, fake)
	_ = d.Load(ctx)

	rows := d.DayTable(ctx, "2026-08-20")
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	byName := map[string]models.EntryStatus{}
	for _, r := range rows {
		byName[r.Habit.Name] = r.Status
	}
	if byName["Run"] != models.StatusCompleted {
		t.Errorf("Run status = %q", byName["Run"])
	}
	if byName["Read"] != "" {
		t.Errorf("Read status = %q, want empty", byName["Read"])
	}
	_ = b
}
