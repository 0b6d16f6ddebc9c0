package trip

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		start   *string
		end     *string
		wantErr error
	}{
		{name: "both nil", start: nil, end: nil},
		{name: "only start", start: str("2026-06-01")},
		{name: "valid range", start: str("2026-06-01"), end: str("2026-06-10")},
		{name: "same day", start: str("2026-06-01"), end: str("2026-06-01")},
		{name: "end before start", start: str("2026-06-10"), end: str("2026-06-01"), wantErr: ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseDateRange(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseDateRange() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.start != nil && start == nil {
				t.Fatal("expected parsed start date, got nil")
			}
			if tt.end != nil && end == nil {
				t.Fatal("expected parsed end date, got nil")
			}
		})
	}

	t.Run("malformed date", func(t *testing.T) {
		if _, _, err := parseDateRange(str("June 1st"), nil); err == nil {
			t.Fatal("expected error for malformed date")
		}
	})

	t.Run("parses to midnight UTC", func(t *testing.T) {
		start, _, err := parseDateRange(str("2026-06-01"), nil)
		if err != nil {
			t.Fatalf("parseDateRange() error = %v", err)
		}
		want := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		if !start.Equal(want) {
			t.Fatalf("parseDateRange() start = %v, want %v", start, want)
		}
	})
}
