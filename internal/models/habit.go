package models

// Habit mirrors the backend habit resource. IDs are backend-assigned and
// treated as opaque strings; timestamps come back as RFC 3339 strings and
// are never interpreted client-side.
type Habit struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId,omitempty"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	ColorHex         string         `json:"colorHex,omitempty"`
	FrequencyType    string         `json:"frequencyType,omitempty"`
	FrequencyDetails map[string]any `json:"frequencyDetails,omitempty"`
	TargetValue      *float64       `json:"targetValue,omitempty"`
	TargetUnit       string         `json:"targetUnit,omitempty"`
	SortOrder        int            `json:"sortOrder,omitempty"`
	Archived         bool           `json:"archived,omitempty"`
	CreatedAt        string         `json:"createdAt,omitempty"`
	UpdatedAt        string         `json:"updatedAt,omitempty"`
}

// NewHabit carries the user-supplied fields for a create or update call.
type NewHabit struct {
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	ColorHex         string         `json:"colorHex,omitempty"`
	FrequencyType    string         `json:"frequencyType,omitempty"`
	FrequencyDetails map[string]any `json:"frequencyDetails,omitempty"`
	TargetValue      *float64       `json:"targetValue,omitempty"`
	TargetUnit       string         `json:"targetUnit,omitempty"`
	SortOrder        int            `json:"sortOrder,omitempty"`
}

// Streak is the server-computed consecutive-day count. The client consumes
// it opaquely and never recomputes it.
type Streak struct {
	Streak int `json:"streak"`
}
