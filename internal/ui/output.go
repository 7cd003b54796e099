package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/streak"
)

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatDaily renders today's prompt card.
func FormatDaily(w io.Writer, d daily.Daily, markdownStyle string) {
	fmt.Fprintln(w, RenderMarkdown(DailyMarkdown(d), 80, markdownStyle))
}

// FormatCompleted formats the result of completing today's prompt.
func FormatCompleted(w io.Writer, res kindness.CompleteResult) {
	if res.AlreadyCompleted {
		fmt.Fprintf(w, "Already completed today: %s (prompt #%d).\n", res.Daily.Prompt.Text, res.Daily.Prompt.ID)
		return
	}
	fmt.Fprintf(w, "Done: %s\n", res.Daily.Prompt.Text)
	fmt.Fprintf(w, "Streak: %s (best %s)\n", Days(res.Progress.CurrentStreak), Days(res.Progress.BestStreak))
	for _, m := range res.Milestones {
		fmt.Fprintf(w, "🎉 Milestone reached: %s of kindness!\n", Days(m))
	}
}

// FormatSkipped formats the replacement prompt after a skip.
func FormatSkipped(w io.Writer, skipped prompt.Prompt, next daily.Daily) {
	fmt.Fprintf(w, "Skipped prompt #%d.\n", skipped.ID)
	fmt.Fprintf(w, "New prompt #%d [%s]: %s\n", next.Prompt.ID, next.Prompt.Category, next.Prompt.Text)
}

// FormatProgress formats streak statistics. today decides whether the stored
// streak is still active.
func FormatProgress(w io.Writer, p storage.Progress, today string) {
	active := streak.ActiveStreak(p, today)
	fmt.Fprintf(w, "Current streak:  %s\n", Days(active))
	fmt.Fprintf(w, "Best streak:     %s\n", Days(p.BestStreak))
	fmt.Fprintf(w, "Total completed: %d\n", p.TotalCompleted)
	last := "never"
	if p.LastCompletedDate != "" {
		last = day.Relative(p.LastCompletedDate, today)
	}
	fmt.Fprintf(w, "Last completed:  %s\n", last)
	if p.StartDate != "" {
		fmt.Fprintf(w, "Tracking since:  %s\n", day.Display(p.StartDate))
	}
	if next := streak.NextMilestone(active); next > 0 {
		fmt.Fprintf(w, "Next milestone:  %s (%d to go)\n", Days(next), next-active)
	}
	if reached := streak.Unlocked(p.BestStreak); len(reached) > 0 {
		labels := make([]string, len(reached))
		for i, m := range reached {
			labels[i] = fmt.Sprint(m)
		}
		fmt.Fprintf(w, "Milestones:      %s\n", strings.Join(labels, " · "))
	}
}

// FormatDrift reports the result of a streak verification.
func FormatDrift(w io.Writer, d streak.Drift) {
	if d.InSync() {
		fmt.Fprintln(w, "Progress matches completion history.")
		return
	}
	fmt.Fprintln(w, "Progress differs from completion history:")
	row := func(label string, stored, computed any) {
		if fmt.Sprint(stored) != fmt.Sprint(computed) {
			fmt.Fprintf(w, "  %-16s stored %v, computed %v\n", label, stored, computed)
		}
	}
	row("current streak", d.Stored.CurrentStreak, d.Computed.CurrentStreak)
	row("best streak", d.Stored.BestStreak, d.Computed.BestStreak)
	row("total completed", d.Stored.TotalCompleted, d.Computed.TotalCompleted)
	row("last completed", d.Stored.LastCompletedDate, d.Computed.LastCompletedDate)
	row("start date", d.Stored.StartDate, d.Computed.StartDate)
	fmt.Fprintln(w, "Run `kindctl streak --repair` to rebuild it.")
}

// FormatHistory lists completed prompts, newest first.
func FormatHistory(w io.Writer, items []history.Item, today string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No completed prompts yet.")
		return
	}
	for _, it := range items {
		fav := " "
		if it.Completion.IsFavorite {
			fav = "♥"
		}
		fmt.Fprintf(w, "%4d  %-12s %s  [%s] %s\n",
			it.Completion.ID,
			day.Relative(it.Completion.CompletedDate, today),
			fav,
			it.Prompt.Category,
			Preview(it.Prompt.Text, 60),
		)
		if it.Completion.Notes != "" {
			fmt.Fprintf(w, "      %s\n", Preview(it.Completion.Notes, 70))
		}
	}
}

// FormatCompletion formats one completion in full.
func FormatCompletion(w io.Writer, it history.Item) {
	fmt.Fprintf(w, "Completion: %d\n", it.Completion.ID)
	fmt.Fprintf(w, "Date: %s\n", it.Completion.CompletedDate)
	fmt.Fprintf(w, "Prompt: #%d [%s] %s\n", it.Prompt.ID, it.Prompt.Category, it.Prompt.Text)
	fmt.Fprintf(w, "Favorite: %t\n", it.Completion.IsFavorite)
	if it.Completion.Notes != "" {
		fmt.Fprintf(w, "\n%s\n", it.Completion.Notes)
	}
}

// FormatFavorite confirms a favorite toggle.
func FormatFavorite(w io.Writer, c storage.Completion) {
	if c.IsFavorite {
		fmt.Fprintf(w, "Added completion %d to favorites.\n", c.ID)
		return
	}
	fmt.Fprintf(w, "Removed completion %d from favorites.\n", c.ID)
}

// FormatNotesUpdated confirms a notes edit.
func FormatNotesUpdated(w io.Writer, c storage.Completion) {
	fmt.Fprintf(w, "Updated notes for completion %d.\n", c.ID)
}

// FormatCompletionDeleted confirms a deletion.
func FormatCompletionDeleted(w io.Writer, id int64) {
	fmt.Fprintf(w, "Deleted completion %d.\n", id)
}

// FormatPromptList lists the catalog.
func FormatPromptList(w io.Writer, prompts []prompt.Prompt) {
	if len(prompts) == 0 {
		fmt.Fprintln(w, "No prompts in the catalog. Run `kindctl prompts init`.")
		return
	}
	for _, p := range prompts {
		fmt.Fprintf(w, "%4d  %-13s %s\n", p.ID, p.Category, p.Text)
	}
}

// DeleteResult is the JSON form of a delete.
type DeleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// Days formats a day count: "1 day", "3 days".
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Preview returns the first line of s cut to n runes.
func Preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
