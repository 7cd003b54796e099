package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/streak"
)

var door = prompt.Prompt{ID: 7, Text: "Hold the door open for someone.", Category: "courtesy"}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(&buf, DeleteResult{ID: 4, Deleted: true}); err != nil {
		t.Fatal(err)
	}
	var got DeleteResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got.ID != 4 || !got.Deleted {
		t.Errorf("got %+v", got)
	}
}

func TestFormatCompleted(t *testing.T) {
	var buf bytes.Buffer
	FormatCompleted(&buf, kindness.CompleteResult{
		Daily:      daily.Daily{Date: "2024-03-15", Prompt: door},
		Progress:   storage.Progress{CurrentStreak: 3, BestStreak: 5},
		Milestones: []int{3},
	})
	out := buf.String()
	for _, w := range []string{"Done: Hold the door", "Streak: 3 days (best 5 days)", "Milestone reached: 3 days"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	buf.Reset()
	FormatCompleted(&buf, kindness.CompleteResult{Daily: daily.Daily{Prompt: door}, AlreadyCompleted: true})
	if !strings.HasPrefix(buf.String(), "Already completed today") {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatProgress(t *testing.T) {
	var buf bytes.Buffer
	FormatProgress(&buf, storage.Progress{
		CurrentStreak:     8,
		BestStreak:        14,
		LastCompletedDate: "2024-03-14",
		TotalCompleted:    30,
		StartDate:         "2024-01-01",
	}, "2024-03-15")
	out := buf.String()
	for _, w := range []string{
		"Current streak:  8 days",
		"Best streak:     14 days",
		"Total completed: 30",
		"Last completed:  Yesterday",
		"Tracking since:  Jan 01, 2024",
		"Next milestone:  14 days (6 to go)",
		"Milestones:      3 · 7 · 14",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestFormatProgressBrokenStreak(t *testing.T) {
	var buf bytes.Buffer
	FormatProgress(&buf, storage.Progress{CurrentStreak: 4, BestStreak: 4, LastCompletedDate: "2024-03-01"}, "2024-03-15")
	if !strings.Contains(buf.String(), "Current streak:  0 days") {
		t.Errorf("stale streak shown as active:\n%s", buf.String())
	}
}

func TestFormatDrift(t *testing.T) {
	var buf bytes.Buffer
	p := storage.Progress{CurrentStreak: 2, TotalCompleted: 2}
	FormatDrift(&buf, streak.Drift{Stored: p, Computed: p})
	if !strings.Contains(buf.String(), "matches") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	computed := p
	computed.TotalCompleted = 3
	FormatDrift(&buf, streak.Drift{Stored: p, Computed: computed})
	out := buf.String()
	if !strings.Contains(out, "total completed  stored 2, computed 3") {
		t.Errorf("missing drift row:\n%s", out)
	}
	if strings.Contains(out, "current streak") {
		t.Errorf("unchanged field reported:\n%s", out)
	}
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	FormatHistory(&buf, nil, "2024-03-15")
	if !strings.Contains(buf.String(), "No completed prompts") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	FormatHistory(&buf, []history.Item{
		{Completion: storage.Completion{ID: 2, PromptID: 7, CompletedDate: "2024-03-15", IsFavorite: true, Notes: "at the library"}, Prompt: door},
		{Completion: storage.Completion{ID: 1, PromptID: 7, CompletedDate: "2024-03-10"}, Prompt: door},
	}, "2024-03-15")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Today") || !strings.Contains(lines[0], "♥") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "at the library") {
		t.Errorf("notes line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Mar 10, 2024") {
		t.Errorf("last line = %q", lines[2])
	}
}

func TestFormatPromptList(t *testing.T) {
	var buf bytes.Buffer
	FormatPromptList(&buf, []prompt.Prompt{door})
	if !strings.Contains(buf.String(), "courtesy") || !strings.Contains(buf.String(), "Hold the door") {
		t.Errorf("got %q", buf.String())
	}
}

func TestDays(t *testing.T) {
	if Days(1) != "1 day" || Days(0) != "0 days" || Days(12) != "12 days" {
		t.Error("unexpected pluralization")
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"abcdefghij", 5, "abcd…"},
		{"first\nsecond", 20, "first …"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := Preview(tt.in, tt.n); got != tt.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
