package util

import (
	"testing"
	"time"
)

func TestParseDate_CommonFormats(t *testing.T) {
	inputs := []string{
		"2024-03-15",
		"2024-03-15T10:30:00Z",
		"March 15, 2024",
		"15 March 2024",
		"2024/03/15",
	}
	for _, in := range inputs {
		got, ok := ParseDate(in)
		if !ok {
			t.Errorf("Expected %q to parse", in)
			continue
		}
		if got.Year() != 2024 || got.Month() != time.March {
			t.Errorf("Expected March 2024 for %q, got %v", in, got)
		}
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	if _, ok := ParseDate("not a date"); ok {
		t.Error("Expected parse failure for junk input")
	}
	if _, ok := ParseDate(""); ok {
		t.Error("Expected parse failure for empty input")
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03"},
		{"published around 2023 presumably", "2023-01"},
		{"n/a", "n/a"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeMonth(tt.in); got != tt.want {
			t.Errorf("NormalizeMonth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		then time.Time
		want int
	}{
		{time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 11},
		{time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 24},
		{time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		if got := MonthsBetween(now, tt.then); got != tt.want {
			t.Errorf("MonthsBetween(now, %v) = %d, want %d", tt.then, got, tt.want)
		}
	}
}
