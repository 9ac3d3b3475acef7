package cli

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty defaults to today", "", "2026-08-20", false},
		{"explicit date", "2026-01-05", "2026-01-05", false},
		{"wrong format", "01/05/2026", "", true},
		{"not a date", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
