// Package calendar holds the pure date math behind the monthly view:
// month windowing, the day-cell grid, and the future-date guard.
package calendar

import (
	"fmt"
	"time"

	"habitdash/internal/constants"
	"habitdash/internal/models"
)

// ErrFutureDate rejects completion toggles for days after today.
var ErrFutureDate = fmt.Errorf("cannot log an entry for a future date")

// Month identifies one displayed calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// First returns the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Last().Day()
}

// Range returns the month's first and last day as ISO date strings, the
// window used for entry fetches.
func (m Month) Range() (start, end string) {
	return m.First().Format(constants.DateFormat), m.Last().Format(constants.DateFormat)
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Cell is one day of the grid. Status is empty when no entry exists for
// the day.
type Cell struct {
	Date   string // YYYY-MM-DD
	Day    int
	Status models.EntryStatus
	Future bool
}

// Grid maps a month's entries onto exactly one cell per day. Entries
// outside the month are ignored; when the fetched set holds more than one
// entry for a date the last one wins, matching the backend's
// overwrite-per-date behavior.
func Grid(m Month, entries []models.Entry, today time.Time) []Cell {
	statusByDate := make(map[string]models.EntryStatus, len(entries))
	for _, e := range entries {
		day, err := time.Parse(constants.DateFormat, e.EntryDate)
		if err != nil {
			continue
		}
		if day.Year() != m.Year || day.Month() != m.Month {
			continue
		}
		statusByDate[e.EntryDate] = e.Status
	}

	todayKey := today.Format(constants.DateFormat)
	cells := make([]Cell, 0, m.Days())
	for d := 1; d <= m.Days(); d++ {
		date := time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
		cells = append(cells, Cell{
			Date:   date,
			Day:    d,
			Status: statusByDate[date],
			Future: date > todayKey,
		})
	}
	return cells
}

// CheckNotFuture returns ErrFutureDate when the ISO date is after today.
// Dates compare lexicographically in YYYY-MM-DD form.
func CheckNotFuture(date string, today time.Time) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	if date > today.Format(constants.DateFormat) {
		return ErrFutureDate
	}
	return nil
}
