package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/storage"
)

func TestStreakRunDefault(t *testing.T) {
	s := setupTestEnv(t)
	completeToday(t, s, "")

	var buf bytes.Buffer
	if err := streakRun(context.Background(), &buf, false, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, w := range []string{"Current streak:  1 day", "Total completed: 1", "Last completed:  Today", "Next milestone:  3 days"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestStreakRunJSON(t *testing.T) {
	s := setupTestEnv(t)
	completeToday(t, s, "")
	jsonOutput = true

	var buf bytes.Buffer
	if err := streakRun(context.Background(), &buf, false, false); err != nil {
		t.Fatal(err)
	}
	var sum kindness.Summary
	if err := json.Unmarshal(buf.Bytes(), &sum); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !sum.DoneToday || sum.ActiveStreak != 1 || sum.Date != testToday {
		t.Errorf("summary = %+v", sum)
	}
}

func TestStreakVerifyAndRepair(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()
	completeToday(t, s, "")

	var buf bytes.Buffer
	if err := streakRun(ctx, &buf, true, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "matches") {
		t.Errorf("fresh history should verify: %q", buf.String())
	}

	// a completion written behind the tracker's back
	if _, err := s.Store.InsertCompletion(ctx, storage.Completion{PromptID: 1, CompletedDate: "2024-03-14"}); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := streakRun(ctx, &buf, true, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "total completed  stored 1, computed 2") {
		t.Errorf("drift not reported:\n%s", buf.String())
	}

	buf.Reset()
	if err := streakRun(ctx, &buf, false, true); err != nil {
		t.Fatal(err)
	}
	p, err := s.Progress(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurrentStreak != 2 || p.TotalCompleted != 2 || p.BestStreak != 2 {
		t.Errorf("repaired progress = %+v", p)
	}
}
