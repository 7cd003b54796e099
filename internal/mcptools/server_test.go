package mcptools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/mcptools"
	"github.com/chris-regnier/kindctl/internal/storage/diskv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newSession(t *testing.T, date string) (*mcp.ClientSession, *kindness.Service) {
	t.Helper()
	store, err := diskv.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	svc := kindness.New(store, kindness.Options{Today: func() string { return date }})

	_, clientTransport := mcptools.NewInMemoryServer(svc)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session, svc
}

// call invokes a tool and decodes its structured output into out.
func call(t *testing.T, session *mcp.ClientSession, name string, args any, out any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) failed: %v", name, err)
	}
	if result.IsError || out == nil {
		return result
	}
	if result.StructuredContent == nil {
		t.Fatalf("%s: expected structured content", name)
	}
	raw, _ := json.Marshal(result.StructuredContent)
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("%s: failed to unmarshal structured content: %v", name, err)
	}
	return result
}

func TestMCPServer_ListsTools(t *testing.T) {
	session, _ := newSession(t, "2024-03-15")
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		"get_daily_prompt": false,
		"complete_prompt":  false,
		"skip_prompt":      false,
		"get_progress":     false,
		"list_history":     false,
	}
	for _, tool := range res.Tools {
		want[tool.Name] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestMCPServer_DailyFlow(t *testing.T) {
	session, svc := newSession(t, "2024-03-15")
	empty := map[string]any{}

	var today mcptools.DailyPromptOutput
	call(t, session, "get_daily_prompt", empty, &today)
	if today.Prompt.PromptID == 0 || today.Prompt.Completed || today.Prompt.Date != "2024-03-15" {
		t.Fatalf("unexpected prompt: %+v", today.Prompt)
	}

	var skipped mcptools.SkipOutput
	call(t, session, "skip_prompt", mcptools.SkipInput{Reason: "raining"}, &skipped)
	if skipped.SkippedPromptID != today.Prompt.PromptID || skipped.Prompt.PromptID == today.Prompt.PromptID {
		t.Fatalf("skip did not replace prompt: %+v", skipped)
	}

	var done mcptools.CompleteOutput
	call(t, session, "complete_prompt", mcptools.CompleteInput{Notes: "brought umbrellas"}, &done)
	if done.AlreadyCompleted || done.CurrentStreak != 1 || !done.Prompt.Completed {
		t.Fatalf("unexpected completion: %+v", done)
	}
	if done.Prompt.PromptID != skipped.Prompt.PromptID {
		t.Errorf("completed prompt %d, want %d", done.Prompt.PromptID, skipped.Prompt.PromptID)
	}

	var again mcptools.CompleteOutput
	call(t, session, "complete_prompt", empty, &again)
	if !again.AlreadyCompleted {
		t.Error("second completion should report already completed")
	}

	result := call(t, session, "skip_prompt", empty, nil)
	if !result.IsError {
		t.Error("skipping a completed day should be a tool error")
	}

	var progress mcptools.ProgressOutput
	call(t, session, "get_progress", empty, &progress)
	if !progress.DoneToday || progress.CurrentStreak != 1 || progress.TotalCompleted != 1 || progress.NextMilestone != 3 {
		t.Errorf("unexpected progress: %+v", progress)
	}

	p, err := svc.Progress(context.Background())
	if err != nil || p.TotalCompleted != 1 {
		t.Errorf("stored progress = %+v, %v", p, err)
	}
}

func TestMCPServer_ListHistory(t *testing.T) {
	session, svc := newSession(t, "2024-03-15")
	ctx := context.Background()
	res, err := svc.Complete(ctx, "note")
	if err != nil {
		t.Fatal(err)
	}

	var all mcptools.HistoryOutput
	call(t, session, "list_history", mcptools.HistoryInput{Limit: 5}, &all)
	if len(all.Completions) != 1 || all.Completions[0].Notes != "note" {
		t.Fatalf("history = %+v", all)
	}

	var favs mcptools.HistoryOutput
	call(t, session, "list_history", mcptools.HistoryInput{FavoritesOnly: true}, &favs)
	if len(favs.Completions) != 0 {
		t.Errorf("expected no favorites, got %d", len(favs.Completions))
	}

	if _, err := svc.History.ToggleFavorite(ctx, res.Daily.Completion.ID); err != nil {
		t.Fatal(err)
	}
	call(t, session, "list_history", mcptools.HistoryInput{FavoritesOnly: true}, &favs)
	if len(favs.Completions) != 1 || !favs.Completions[0].Favorite {
		t.Errorf("favorites = %+v", favs)
	}
}
