package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/kindness"
)

func TestTodayIDOnly(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := todayRun(ctx, &buf, true); err != nil {
		t.Fatalf("todayRun: %v", err)
	}
	d, err := s.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != strconv.Itoa(d.Prompt.ID) {
		t.Errorf("id-only output = %q, want %d", got, d.Prompt.ID)
	}
}

func TestTodayJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := todayRun(context.Background(), &buf, false); err != nil {
		t.Fatalf("todayRun: %v", err)
	}
	var d daily.Daily
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if d.Date != testToday || d.Prompt.Text == "" || d.Completion != nil {
		t.Errorf("unexpected daily: %+v", d)
	}
}

func TestTodayIsStable(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var first, second bytes.Buffer
	if err := todayRun(ctx, &first, true); err != nil {
		t.Fatal(err)
	}
	if err := todayRun(ctx, &second, true); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("prompt changed within a day: %q then %q", first.String(), second.String())
	}
}

func TestDoneRun(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := doneRun(ctx, &buf, "held the door", true); err != nil {
		t.Fatalf("doneRun: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Done:") || !strings.Contains(out, "Streak: 1 day") {
		t.Errorf("unexpected output:\n%s", out)
	}

	d, err := s.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Completed() {
		t.Fatal("today should be completed")
	}
	it, err := s.History.Get(ctx, d.Completion.ID)
	if err != nil {
		t.Fatal(err)
	}
	if it.Completion.Notes != "held the door" || !it.Completion.IsFavorite {
		t.Errorf("completion = %+v", it.Completion)
	}

	buf.Reset()
	if err := doneRun(ctx, &buf, "again", true); err != nil {
		t.Fatalf("second doneRun: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Already completed today") {
		t.Errorf("second completion output = %q", buf.String())
	}
	it, _ = s.History.Get(ctx, d.Completion.ID)
	if !it.Completion.IsFavorite || it.Completion.Notes != "held the door" {
		t.Errorf("second completion changed the first: %+v", it.Completion)
	}
}

func TestDoneJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := doneRun(context.Background(), &buf, "", false); err != nil {
		t.Fatal(err)
	}
	var res kindness.CompleteResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.AlreadyCompleted || res.Progress.CurrentStreak != 1 || res.Progress.TotalCompleted != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSkipRun(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()
	before, err := s.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := skipRun(ctx, &buf, "no time"); err != nil {
		t.Fatalf("skipRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Skipped prompt #"+strconv.Itoa(before.Prompt.ID)) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	after, err := s.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if after.Prompt.ID == before.Prompt.ID {
		t.Error("skip kept the same prompt")
	}
}

func TestSkipAfterDone(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	var buf bytes.Buffer
	if err := doneRun(ctx, &buf, "", false); err != nil {
		t.Fatal(err)
	}
	err := skipRun(ctx, &buf, "")
	if !errors.Is(err, kindness.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCode(err))
	}
}

func TestSkipJSON(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()
	before, _ := s.Today(ctx)
	jsonOutput = true

	var buf bytes.Buffer
	if err := skipRun(ctx, &buf, ""); err != nil {
		t.Fatal(err)
	}
	var res skipResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.SkippedPromptID != before.Prompt.ID || res.Next.Prompt.ID == before.Prompt.ID {
		t.Errorf("unexpected result: %+v", res)
	}
}
