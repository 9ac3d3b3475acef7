// Package cache is the local read cache for backend data: entry pages
// keyed by (user, habit, date range) and per-habit streaks. Mutations for a
// habit invalidate everything cached for it; there is no TTL, the backend
// is always authoritative after an invalidation.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"habitdash/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS entry_pages (
	user_id    TEXT NOT NULL,
	habit_id   TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	payload    TEXT NOT NULL,
	PRIMARY KEY (user_id, habit_id, start_date, end_date)
);
CREATE TABLE IF NOT EXISTS streaks (
	user_id  TEXT NOT NULL,
	habit_id TEXT NOT NULL,
	streak   INTEGER NOT NULL,
	PRIMARY KEY (user_id, habit_id)
);
`

type Cache struct {
	path string
	db   *sql.DB
}

// New creates a cache backed by the sqlite file at path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Open creates the cache directory and schema as needed.
func (c *Cache) Open() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	c.db = db
	return nil
}

func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// GetEntries returns the cached page for the exact (user, habit, range)
// key, or ok=false on a miss.
func (c *Cache) GetEntries(userID, habitID, start, end string) ([]models.Entry, bool, error) {
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM entry_pages WHERE user_id = ? AND habit_id = ? AND start_date = ? AND end_date = ?`,
		userID, habitID, start, end,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached entries: %w", err)
	}
	var entries []models.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		// A corrupt row is treated as a miss; the next Put overwrites it.
		return nil, false, nil
	}
	return entries, true, nil
}

// PutEntries stores a fetched page under its range key.
func (c *Cache) PutEntries(userID, habitID, start, end string, entries []models.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO entry_pages (user_id, habit_id, start_date, end_date, payload) VALUES (?, ?, ?, ?, ?)`,
		userID, habitID, start, end, string(payload),
	)
	if err != nil {
		return fmt.Errorf("write cached entries: %w", err)
	}
	return nil
}

// GetStreak returns the cached streak for the habit, or ok=false on a miss.
func (c *Cache) GetStreak(userID, habitID string) (int, bool, error) {
	var streak int
	err := c.db.QueryRow(
		`SELECT streak FROM streaks WHERE user_id = ? AND habit_id = ?`,
		userID, habitID,
	).Scan(&streak)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read cached streak: %w", err)
	}
	return streak, true, nil
}

// PutStreak stores the habit's streak.
func (c *Cache) PutStreak(userID, habitID string, streak int) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO streaks (user_id, habit_id, streak) VALUES (?, ?, ?)`,
		userID, habitID, streak,
	)
	if err != nil {
		return fmt.Errorf("write cached streak: %w", err)
	}
	return nil
}

// InvalidateHabit drops every cached range and the streak for one habit.
// Called after any create/delete/toggle touching the habit.
func (c *Cache) InvalidateHabit(userID, habitID string) error {
	if _, err := c.db.Exec(`DELETE FROM entry_pages WHERE user_id = ? AND habit_id = ?`, userID, habitID); err != nil {
		return fmt.Errorf("invalidate cached entries: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM streaks WHERE user_id = ? AND habit_id = ?`, userID, habitID); err != nil {
		return fmt.Errorf("invalidate cached streak: %w", err)
	}
	return nil
}

// InvalidateUser drops everything cached for the user.
func (c *Cache) InvalidateUser(userID string) error {
	if _, err := c.db.Exec(`DELETE FROM entry_pages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("invalidate cached entries: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM streaks WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("invalidate cached streaks: %w", err)
	}
	return nil
}
