package models

import (
	"fmt"
	"strings"
)

// EntryStatus is the per-day state of a habit entry.
type EntryStatus string

const (
	StatusCompleted EntryStatus = "completed"
	StatusMissed    EntryStatus = "missed"
	StatusSkipped   EntryStatus = "skipped"
	StatusPartial   EntryStatus = "partially_completed"
)

func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusMissed, StatusSkipped, StatusPartial:
		return true
	default:
		return false
	}
}

// ParseEntryStatus normalizes user input into an EntryStatus.
func ParseEntryStatus(input string) (EntryStatus, error) {
	s := EntryStatus(strings.TrimSpace(strings.ToLower(input)))
	if s == "partial" {
		s = StatusPartial
	}
	if !s.IsValid() {
		return "", fmt.Errorf("invalid entry status: %q", input)
	}
	return s, nil
}

// Entry is one (habit, date) record. EntryDate is an ISO calendar date
// (YYYY-MM-DD). At most one entry exists per (habit, date); a second write
// for the same date overwrites the status server-side.
type Entry struct {
	ID        string      `json:"id,omitempty"`
	HabitID   string      `json:"habitId,omitempty"`
	EntryDate string      `json:"entryDate"`
	Status    EntryStatus `json:"status"`
	Value     *float64    `json:"value,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// NewEntry carries the fields for logging one entry.
type NewEntry struct {
	EntryDate string      `json:"entryDate"`
	Status    EntryStatus `json:"status"`
	Value     *float64    `json:"value,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}
