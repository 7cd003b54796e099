package day_test

import (
	"testing"
	"time"

	"github.com/chris-regnier/kindctl/internal/day"
)

func TestKey(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"midnight", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{"late evening keeps own zone", time.Date(2024, 1, 15, 23, 30, 0, 0, est), "2024-01-15"},
		{"end of year", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := day.Key(tt.input); got != tt.want {
				t.Errorf("Key() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTodayUsesNow(t *testing.T) {
	orig := day.Now
	t.Cleanup(func() { day.Now = orig })
	day.Now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local) }

	if got := day.Today(); got != "2024-03-01" {
		t.Errorf("Today() = %s, want 2024-03-01", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-01-05", 1, "2024-01-06"},
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-10", -7, "2024-03-03"},
	}
	for _, tt := range tests {
		got, err := day.AddDays(tt.key, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%s, %d): %v", tt.key, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%s, %d) = %s, want %s", tt.key, tt.n, got, tt.want)
		}
	}

	if _, err := day.AddDays("not-a-date", 1); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestIsNextDay(t *testing.T) {
	tests := []struct {
		prev, next string
		want       bool
	}{
		{"2024-01-05", "2024-01-06", true},
		{"2024-01-05", "2024-01-08", false},
		{"2024-01-05", "2024-01-05", false},
		{"2024-01-06", "2024-01-05", false},
		{"2024-02-29", "2024-03-01", true},
		{"garbage", "2024-01-06", false},
		{"", "2024-01-06", false},
	}
	for _, tt := range tests {
		if got := day.IsNextDay(tt.prev, tt.next); got != tt.want {
			t.Errorf("IsNextDay(%q, %q) = %v, want %v", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestSeed(t *testing.T) {
	got, err := day.Seed("2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(1704067200000); got != want {
		t.Errorf("Seed() = %d, want %d", got, want)
	}

	next, _ := day.Seed("2024-01-02")
	if next-got != 24*60*60*1000 {
		t.Errorf("consecutive seeds differ by %d ms", next-got)
	}
}

func TestRelative(t *testing.T) {
	today := "2024-03-10"
	if got := day.Relative("2024-03-10", today); got != "Today" {
		t.Errorf("got %q", got)
	}
	if got := day.Relative("2024-03-09", today); got != "Yesterday" {
		t.Errorf("got %q", got)
	}
	if got := day.Relative("2024-03-01", today); got != "Mar 01, 2024" {
		t.Errorf("got %q", got)
	}
}
