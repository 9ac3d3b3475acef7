package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"habitdash/internal/constants"
	"habitdash/internal/models"
)

// fakeBackend is an in-memory habit-tracker backend serving both API
// dialects, enough to exercise every client operation end to end.
type fakeBackend struct {
	mu      sync.Mutex
	nextID  int
	habits  map[string]models.Habit            // habitID -> habit
	entries map[string]map[string]models.Entry // habitID -> date -> entry
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:  1,
		habits:  make(map[string]models.Habit),
		entries: make(map[string]map[string]models.Entry),
	}
}

func (f *fakeBackend) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(f.handle))
}

func (f *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// users/{userId}/habits[/{habitId}[/entries|completions|streak]]
	if len(parts) < 3 || parts[0] != "users" || parts[2] != "habits" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 3 && r.Method == http.MethodGet:
		list := make([]models.Habit, 0, len(f.habits))
		for _, h := range f.habits {
			list = append(list, h)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		writeJSON(w, http.StatusOK, list)

	case len(parts) == 3 && r.Method == http.MethodPost:
		var nh models.NewHabit
		_ = json.NewDecoder(r.Body).Decode(&nh)
		if nh.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "habit name must not be empty"})
			return
		}
		h := models.Habit{
			ID:          strconv.Itoa(f.nextID),
			UserID:      parts[1],
			Name:        nh.Name,
			Description: nh.Description,
			ColorHex:    nh.ColorHex,
		}
		f.nextID++
		f.habits[h.ID] = h
		f.entries[h.ID] = make(map[string]models.Entry)
		writeJSON(w, http.StatusCreated, h)

	case len(parts) == 4:
		f.handleHabit(w, r, parts[3])

	case len(parts) == 5:
		f.handleSubresource(w, r, parts[3], parts[4])

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) handleHabit(w http.ResponseWriter, r *http.Request, habitID string) {
	h, ok := f.habits[habitID]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "habit not found"})
		return
	}
	switch r.Method {
	case http.MethodPut:
		var nh models.NewHabit
		_ = json.NewDecoder(r.Body).Decode(&nh)
		if nh.Name != "" {
			h.Name = nh.Name
		}
		if nh.Description != "" {
			h.Description = nh.Description
		}
		f.habits[habitID] = h
		writeJSON(w, http.StatusOK, h)
	case http.MethodDelete:
		delete(f.habits, habitID)
		delete(f.entries, habitID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) handleSubresource(w http.ResponseWriter, r *http.Request, habitID, sub string) {
	if _, ok := f.habits[habitID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "habit not found"})
		return
	}

	switch {
	case sub == "entries" && r.Method == http.MethodPost:
		var ne models.NewEntry
		_ = json.NewDecoder(r.Body).Decode(&ne)
		e := models.Entry{
			ID:        habitID + "-" + ne.EntryDate,
			HabitID:   habitID,
			EntryDate: ne.EntryDate,
			Status:    ne.Status,
			Value:     ne.Value,
			Notes:     ne.Notes,
		}
		f.entries[habitID][ne.EntryDate] = e
		writeJSON(w, http.StatusCreated, e)

	case sub == "entries" && r.Method == http.MethodGet:
		start := r.URL.Query().Get("startDate")
		end := r.URL.Query().Get("endDate")
		list := make([]models.Entry, 0)
		for date, e := range f.entries[habitID] {
			if date >= start && date <= end {
				list = append(list, e)
			}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].EntryDate < list[j].EntryDate })
		writeJSON(w, http.StatusOK, list)

	case sub == "completions" && r.Method == http.MethodPost:
		var payload struct {
			Date      string `json:"date"`
			Completed bool   `json:"completed"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.Completed {
			f.entries[habitID][payload.Date] = models.Entry{
				HabitID:   habitID,
				EntryDate: payload.Date,
				Status:    models.StatusCompleted,
			}
		} else {
			delete(f.entries[habitID], payload.Date)
		}
		w.WriteHeader(http.StatusOK)

	case sub == "completions" && r.Method == http.MethodGet:
		year, _ := strconv.Atoi(r.URL.Query().Get("year"))
		month, _ := strconv.Atoi(r.URL.Query().Get("month"))
		prefix := fmt.Sprintf("%04d-%02d-", year, month)
		dates := make([]string, 0)
		for date, e := range f.entries[habitID] {
			if strings.HasPrefix(date, prefix) && e.Status == models.StatusCompleted {
				dates = append(dates, date)
			}
		}
		sort.Strings(dates)
		writeJSON(w, http.StatusOK, dates)

	case sub == "streak" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, models.Streak{Streak: f.streak(habitID)})

	default:
		http.NotFound(w, r)
	}
}

// streak counts consecutive completed days ending today or yesterday.
func (f *fakeBackend) streak(habitID string) int {
	day := time.Now()
	key := day.Format(constants.DateFormat)
	if e, ok := f.entries[habitID][key]; !ok || e.Status != models.StatusCompleted {
		day = day.AddDate(0, 0, -1)
	}
	count := 0
	for {
		e, ok := f.entries[habitID][day.Format(constants.DateFormat)]
		if !ok || e.Status != models.StatusCompleted {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
