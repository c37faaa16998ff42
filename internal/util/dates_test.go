package util

import "testing"

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name          string
		month         string
		expectedStart string
		expectedEnd   string
	}{
		{name: "January 2026", month: "2026-01", expectedStart: "2026-01-01", expectedEnd: "2026-01-31"},
		{name: "February 2024 (leap year)", month: "2024-02", expectedStart: "2024-02-01", expectedEnd: "2024-02-29"},
		{name: "February 2026", month: "2026-02", expectedStart: "2026-02-01", expectedEnd: "2026-02-28"},
		{name: "December 2023", month: "2023-12", expectedStart: "2023-12-01", expectedEnd: "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthBounds(tt.month)
			if err != nil {
				t.Fatalf("MonthBounds() error = %v", err)
			}

			if start != tt.expectedStart {
				t.Errorf("MonthBounds() start = %v, want %v", start, tt.expectedStart)
			}
			if end != tt.expectedEnd {
				t.Errorf("MonthBounds() end = %v, want %v", end, tt.expectedEnd)
			}
		})
	}
}

func TestMonthBoundsInvalid(t *testing.T) {
	for _, month := range []string{"", "2026", "2026-13", "January"} {
		if _, _, err := MonthBounds(month); err == nil {
			t.Errorf("MonthBounds(%q) expected error", month)
		}
	}
}
