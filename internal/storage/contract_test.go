package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/storage/diskv"
	"github.com/chris-regnier/kindctl/internal/storage/sqlite"
)

type storageFactory func(t *testing.T) storage.Storage

func diskvFactory(t *testing.T) storage.Storage {
	t.Helper()
	s, err := diskv.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating diskv storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Storage {
	t.Helper()
	s, err := sqlite.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedPrompts(t *testing.T, s storage.Storage, ps ...prompt.Prompt) {
	t.Helper()
	if len(ps) == 0 {
		ps = []prompt.Prompt{
			{ID: 1, Text: "One", Category: "a"},
			{ID: 2, Text: "Two", Category: "b"},
			{ID: 3, Text: "Three", Category: "a"},
		}
	}
	if _, err := s.InsertPrompts(context.Background(), ps); err != nil {
		t.Fatalf("InsertPrompts: %v", err)
	}
}

func complete(t *testing.T, s storage.Storage, promptID int, date string) int64 {
	t.Helper()
	id, err := s.InsertCompletion(context.Background(), storage.Completion{PromptID: promptID, CompletedDate: date})
	if err != nil {
		t.Fatalf("InsertCompletion: %v", err)
	}
	return id
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	ctx := context.Background()

	t.Run(name, func(t *testing.T) {
		t.Run("Prompts insert and count", func(t *testing.T) {
			s := factory(t)
			n, err := s.InsertPrompts(ctx, prompt.Defaults())
			if err != nil {
				t.Fatalf("InsertPrompts: %v", err)
			}
			if n != len(prompt.Defaults()) {
				t.Errorf("inserted %d, want %d", n, len(prompt.Defaults()))
			}
			count, err := s.CountPrompts(ctx)
			if err != nil {
				t.Fatalf("CountPrompts: %v", err)
			}
			if count != len(prompt.Defaults()) {
				t.Errorf("count = %d, want %d", count, len(prompt.Defaults()))
			}
		})

		t.Run("Prompts insert ignores conflicts", func(t *testing.T) {
			s := factory(t)
			seedPrompts(t, s)
			n, err := s.InsertPrompts(ctx, []prompt.Prompt{
				{ID: 1, Text: "Replaced?", Category: "x"},
				{ID: 4, Text: "Four", Category: "x"},
			})
			if err != nil {
				t.Fatalf("InsertPrompts: %v", err)
			}
			if n != 1 {
				t.Errorf("inserted %d, want 1", n)
			}
			p, err := s.GetPrompt(ctx, 1)
			if err != nil {
				t.Fatalf("GetPrompt: %v", err)
			}
			if p.Text != "One" {
				t.Errorf("existing prompt overwritten: %q", p.Text)
			}
		})

		t.Run("Prompts list ordered by id", func(t *testing.T) {
			s := factory(t)
			seedPrompts(t, s,
				prompt.Prompt{ID: 12, Text: "Twelve"},
				prompt.Prompt{ID: 2, Text: "Two"},
			)
			ps, err := s.ListPrompts(ctx)
			if err != nil {
				t.Fatalf("ListPrompts: %v", err)
			}
			if len(ps) != 2 || ps[0].ID != 2 || ps[1].ID != 12 {
				t.Fatalf("unexpected order: %+v", ps)
			}
			if ps[0].Category != prompt.DefaultCategory {
				t.Errorf("category = %q, want default", ps[0].Category)
			}
		})

		t.Run("Prompts list empty is non-nil", func(t *testing.T) {
			s := factory(t)
			ps, err := s.ListPrompts(ctx)
			if err != nil {
				t.Fatalf("ListPrompts: %v", err)
			}
			if ps == nil || len(ps) != 0 {
				t.Errorf("expected empty slice, got %v", ps)
			}
		})

		t.Run("Prompt not found", func(t *testing.T) {
			s := factory(t)
			if _, err := s.GetPrompt(ctx, 99); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Prompts insert invalid", func(t *testing.T) {
			s := factory(t)
			_, err := s.InsertPrompts(ctx, []prompt.Prompt{{ID: 0, Text: "bad"}})
			if !errors.Is(err, storage.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})

		t.Run("Completion insert and get by date", func(t *testing.T) {
			s := factory(t)
			id, err := s.InsertCompletion(ctx, storage.Completion{
				PromptID: 2, CompletedDate: "2024-01-05", Notes: "felt good",
			})
			if err != nil {
				t.Fatalf("InsertCompletion: %v", err)
			}
			if id <= 0 {
				t.Errorf("expected positive id, got %d", id)
			}
			got, err := s.GetCompletionByDate(ctx, "2024-01-05")
			if err != nil {
				t.Fatalf("GetCompletionByDate: %v", err)
			}
			if got.ID != id || got.PromptID != 2 || got.Notes != "felt good" || got.IsFavorite {
				t.Errorf("unexpected completion: %+v", got)
			}
			byID, err := s.GetCompletion(ctx, id)
			if err != nil {
				t.Fatalf("GetCompletion: %v", err)
			}
			if byID != got {
				t.Errorf("GetCompletion = %+v, want %+v", byID, got)
			}
		})

		t.Run("Completion replaces same date", func(t *testing.T) {
			s := factory(t)
			first := complete(t, s, 1, "2024-01-05")
			second := complete(t, s, 2, "2024-01-05")
			if first == second {
				t.Errorf("expected a new id on replace")
			}
			cs, err := s.ListCompletions(ctx, storage.CompletionFilter{})
			if err != nil {
				t.Fatalf("ListCompletions: %v", err)
			}
			if len(cs) != 1 || cs[0].PromptID != 2 {
				t.Fatalf("expected single replaced completion, got %+v", cs)
			}
			if _, err := s.GetCompletion(ctx, first); err != storage.ErrNotFound {
				t.Errorf("old id still resolves: %v", err)
			}
		})

		t.Run("Completion not found", func(t *testing.T) {
			s := factory(t)
			if _, err := s.GetCompletionByDate(ctx, "2024-01-01"); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
			if _, err := s.GetCompletion(ctx, 42); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Completion invalid date", func(t *testing.T) {
			s := factory(t)
			_, err := s.InsertCompletion(ctx, storage.Completion{PromptID: 1, CompletedDate: "01/05/2024"})
			if !errors.Is(err, storage.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})

		t.Run("Completion update", func(t *testing.T) {
			s := factory(t)
			id := complete(t, s, 1, "2024-01-05")
			if err := s.UpdateCompletion(ctx, storage.Completion{ID: id, IsFavorite: true, Notes: "n"}); err != nil {
				t.Fatalf("UpdateCompletion: %v", err)
			}
			got, err := s.GetCompletion(ctx, id)
			if err != nil {
				t.Fatalf("GetCompletion: %v", err)
			}
			if !got.IsFavorite || got.Notes != "n" {
				t.Errorf("update not applied: %+v", got)
			}
			if got.PromptID != 1 || got.CompletedDate != "2024-01-05" {
				t.Errorf("update changed immutable fields: %+v", got)
			}
		})

		t.Run("Completion update not found", func(t *testing.T) {
			s := factory(t)
			if err := s.UpdateCompletion(ctx, storage.Completion{ID: 7}); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Completion delete", func(t *testing.T) {
			s := factory(t)
			id := complete(t, s, 1, "2024-01-05")
			if err := s.DeleteCompletion(ctx, id); err != nil {
				t.Fatalf("DeleteCompletion: %v", err)
			}
			if _, err := s.GetCompletionByDate(ctx, "2024-01-05"); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound after delete, got: %v", err)
			}
			if err := s.DeleteCompletion(ctx, id); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound on second delete, got: %v", err)
			}
		})

		t.Run("Completion list newest first", func(t *testing.T) {
			s := factory(t)
			complete(t, s, 1, "2024-01-03")
			complete(t, s, 2, "2024-01-10")
			complete(t, s, 3, "2024-01-07")
			cs, err := s.ListCompletions(ctx, storage.CompletionFilter{})
			if err != nil {
				t.Fatalf("ListCompletions: %v", err)
			}
			want := []string{"2024-01-10", "2024-01-07", "2024-01-03"}
			if len(cs) != len(want) {
				t.Fatalf("got %d completions, want %d", len(cs), len(want))
			}
			for i, w := range want {
				if cs[i].CompletedDate != w {
					t.Errorf("cs[%d] = %s, want %s", i, cs[i].CompletedDate, w)
				}
			}
		})

		t.Run("Completion list filters", func(t *testing.T) {
			s := factory(t)
			complete(t, s, 1, "2024-01-03")
			fav := complete(t, s, 2, "2024-01-04")
			complete(t, s, 3, "2024-01-05")
			if err := s.UpdateCompletion(ctx, storage.Completion{ID: fav, IsFavorite: true}); err != nil {
				t.Fatal(err)
			}

			favs, err := s.ListCompletions(ctx, storage.CompletionFilter{FavoritesOnly: true})
			if err != nil {
				t.Fatal(err)
			}
			if len(favs) != 1 || favs[0].ID != fav {
				t.Errorf("favorites = %+v", favs)
			}

			limited, err := s.ListCompletions(ctx, storage.CompletionFilter{Limit: 2})
			if err != nil {
				t.Fatal(err)
			}
			if len(limited) != 2 || limited[0].CompletedDate != "2024-01-05" {
				t.Errorf("limited = %+v", limited)
			}

			ranged, err := s.ListCompletions(ctx, storage.CompletionFilter{StartDate: "2024-01-04", EndDate: "2024-01-04"})
			if err != nil {
				t.Fatal(err)
			}
			if len(ranged) != 1 || ranged[0].CompletedDate != "2024-01-04" {
				t.Errorf("ranged = %+v", ranged)
			}
		})

		t.Run("Daily selection upsert", func(t *testing.T) {
			s := factory(t)
			if err := s.PutDailySelection(ctx, storage.DailySelection{Date: "2024-03-01", PromptID: 3}); err != nil {
				t.Fatalf("PutDailySelection: %v", err)
			}
			if err := s.PutDailySelection(ctx, storage.DailySelection{Date: "2024-03-01", PromptID: 5}); err != nil {
				t.Fatalf("PutDailySelection overwrite: %v", err)
			}
			sel, err := s.GetDailySelection(ctx, "2024-03-01")
			if err != nil {
				t.Fatalf("GetDailySelection: %v", err)
			}
			if sel.PromptID != 5 || sel.Date != "2024-03-01" {
				t.Errorf("selection = %+v", sel)
			}
			if _, err := s.GetDailySelection(ctx, "2024-03-02"); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Daily selection delete before cutoff", func(t *testing.T) {
			s := factory(t)
			for _, d := range []string{"2024-02-20", "2024-02-23", "2024-02-24", "2024-03-01"} {
				if err := s.PutDailySelection(ctx, storage.DailySelection{Date: d, PromptID: 1}); err != nil {
					t.Fatal(err)
				}
			}
			n, err := s.DeleteDailySelectionsBefore(ctx, "2024-02-23")
			if err != nil {
				t.Fatalf("DeleteDailySelectionsBefore: %v", err)
			}
			if n != 1 {
				t.Errorf("deleted %d, want 1", n)
			}
			if _, err := s.GetDailySelection(ctx, "2024-02-23"); err != nil {
				t.Errorf("cutoff date should be kept: %v", err)
			}
		})

		t.Run("Skips by date", func(t *testing.T) {
			s := factory(t)
			for _, sp := range []storage.SkippedPrompt{
				{PromptID: 3, SkippedDate: "2024-03-01", Reason: "busy"},
				{PromptID: 7, SkippedDate: "2024-03-01"},
				{PromptID: 9, SkippedDate: "2024-03-02"},
			} {
				if _, err := s.InsertSkippedPrompt(ctx, sp); err != nil {
					t.Fatalf("InsertSkippedPrompt: %v", err)
				}
			}
			ids, err := s.SkippedPromptIDs(ctx, "2024-03-01")
			if err != nil {
				t.Fatalf("SkippedPromptIDs: %v", err)
			}
			if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
				t.Errorf("ids = %v, want [3 7]", ids)
			}
			none, err := s.SkippedPromptIDs(ctx, "2024-04-01")
			if err != nil {
				t.Fatal(err)
			}
			if none == nil || len(none) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", none)
			}
		})

		t.Run("Skips delete before cutoff", func(t *testing.T) {
			s := factory(t)
			for _, d := range []string{"2024-02-01", "2024-02-01", "2024-02-10"} {
				if _, err := s.InsertSkippedPrompt(ctx, storage.SkippedPrompt{PromptID: 1, SkippedDate: d}); err != nil {
					t.Fatal(err)
				}
			}
			n, err := s.DeleteSkippedPromptsBefore(ctx, "2024-02-10")
			if err != nil {
				t.Fatalf("DeleteSkippedPromptsBefore: %v", err)
			}
			if n != 2 {
				t.Errorf("deleted %d, want 2", n)
			}
			ids, _ := s.SkippedPromptIDs(ctx, "2024-02-10")
			if len(ids) != 1 {
				t.Errorf("expected cutoff-day skip kept, got %v", ids)
			}
		})

		t.Run("Progress get missing", func(t *testing.T) {
			s := factory(t)
			if _, err := s.GetProgress(ctx); err != storage.ErrNotFound {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
		})

		t.Run("Progress put and replace", func(t *testing.T) {
			s := factory(t)
			p := storage.Progress{CurrentStreak: 2, BestStreak: 5, LastCompletedDate: "2024-01-05", TotalCompleted: 9, StartDate: "2023-12-01"}
			if err := s.PutProgress(ctx, p); err != nil {
				t.Fatalf("PutProgress: %v", err)
			}
			p.CurrentStreak = 3
			if err := s.PutProgress(ctx, p); err != nil {
				t.Fatalf("PutProgress replace: %v", err)
			}
			got, err := s.GetProgress(ctx)
			if err != nil {
				t.Fatalf("GetProgress: %v", err)
			}
			if got != p {
				t.Errorf("GetProgress = %+v, want %+v", got, p)
			}
		})
	})
}

func TestDiskvStorage(t *testing.T) {
	runContractTests(t, "Diskv", diskvFactory)
}

func TestSQLiteStorage(t *testing.T) {
	runContractTests(t, "SQLite", sqliteFactory)
}

func TestBackendsAreWatchable(t *testing.T) {
	for name, factory := range map[string]storageFactory{"diskv": diskvFactory, "sqlite": sqliteFactory} {
		s := factory(t)
		w, ok := s.(storage.Watchable)
		if !ok {
			t.Errorf("%s: does not implement Watchable", name)
			continue
		}
		if len(w.WatchPaths()) == 0 {
			t.Errorf("%s: no watch paths", name)
		}
	}
}
