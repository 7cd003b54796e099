// Package daily picks the kindness prompt for a calendar date.
//
// The pick for a date is deterministic: a PCG generator seeded with the
// date's epoch milliseconds chooses among the catalog prompts not skipped
// that day. The pick is persisted as a daily selection so repeated lookups
// are stable even if the catalog later grows.
package daily

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// ErrEmptyCatalog is returned when the catalog is still empty after seeding.
var ErrEmptyCatalog = errors.New("prompt catalog is empty")

// DefaultRetentionDays is how long skips and selections are kept.
const DefaultRetentionDays = 7

// Daily is a date's prompt and, when the day is done, its completion.
type Daily struct {
	Date       string              `json:"date"`
	Prompt     prompt.Prompt       `json:"prompt"`
	Completion *storage.Completion `json:"completion,omitempty"`
}

// Completed reports whether the day has a completion.
func (d Daily) Completed() bool {
	return d.Completion != nil
}

// Selector resolves and records daily prompts.
type Selector struct {
	store    storage.Storage
	defaults func() []prompt.Prompt
}

// NewSelector returns a Selector that seeds an empty catalog with the
// built-in defaults.
func NewSelector(store storage.Storage) *Selector {
	return &Selector{store: store, defaults: prompt.Defaults}
}

// InitializeDatabase seeds the default catalog when no prompts exist and
// returns how many prompts were inserted.
func (s *Selector) InitializeDatabase(ctx context.Context) (int, error) {
	n, err := s.store.CountPrompts(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting prompts: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	added, err := s.store.InsertPrompts(ctx, s.defaults())
	if err != nil {
		return 0, fmt.Errorf("seeding default prompts: %w", err)
	}
	logger.Info("seeded prompt catalog", "count", added)
	return added, nil
}

// GetDailyPrompt returns the prompt for date. A completed date always
// returns its completed prompt. Otherwise an existing selection is reused,
// or a new deterministic pick is made and persisted.
func (s *Selector) GetDailyPrompt(ctx context.Context, date string) (Daily, error) {
	if _, err := day.Parse(date); err != nil {
		return Daily{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	c, err := s.store.GetCompletionByDate(ctx, date)
	switch {
	case err == nil:
		p, err := s.store.GetPrompt(ctx, c.PromptID)
		if errors.Is(err, storage.ErrNotFound) {
			p = prompt.Placeholder(c.PromptID)
		} else if err != nil {
			return Daily{}, fmt.Errorf("loading completed prompt: %w", err)
		}
		return Daily{Date: date, Prompt: p, Completion: &c}, nil
	case !errors.Is(err, storage.ErrNotFound):
		return Daily{}, fmt.Errorf("checking completion: %w", err)
	}

	sel, err := s.store.GetDailySelection(ctx, date)
	switch {
	case err == nil:
		p, err := s.store.GetPrompt(ctx, sel.PromptID)
		if err == nil {
			return Daily{Date: date, Prompt: p}, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return Daily{}, fmt.Errorf("loading selected prompt: %w", err)
		}
		logger.Warn("selected prompt missing from catalog, reselecting", "date", date, "prompt", sel.PromptID)
	case !errors.Is(err, storage.ErrNotFound):
		return Daily{}, fmt.Errorf("checking daily selection: %w", err)
	}

	p, err := s.pick(ctx, date, false)
	if err != nil {
		return Daily{}, err
	}
	return Daily{Date: date, Prompt: p}, nil
}

// SkipPrompt records that promptID was skipped on date. It does not change
// the date's selection; call GetNextAvailablePrompt for that.
func (s *Selector) SkipPrompt(ctx context.Context, promptID int, date, reason string) (int64, error) {
	id, err := s.store.InsertSkippedPrompt(ctx, storage.SkippedPrompt{
		PromptID:    promptID,
		SkippedDate: date,
		Reason:      reason,
	})
	if err != nil {
		return 0, fmt.Errorf("recording skip: %w", err)
	}
	return id, nil
}

// GetNextAvailablePrompt picks a fresh prompt for date, excluding prompts
// skipped that day, and overwrites the date's selection. Each additional
// skip perturbs the seed so the pick changes but stays reproducible.
func (s *Selector) GetNextAvailablePrompt(ctx context.Context, date string) (Daily, error) {
	if _, err := day.Parse(date); err != nil {
		return Daily{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	p, err := s.pick(ctx, date, true)
	if err != nil {
		return Daily{}, err
	}
	return Daily{Date: date, Prompt: p}, nil
}

// MarkPromptAsCompleted records a completion for date, replacing any
// earlier completion on that date. The streak is not updated here.
func (s *Selector) MarkPromptAsCompleted(ctx context.Context, promptID int, date, notes string) (int64, error) {
	id, err := s.store.InsertCompletion(ctx, storage.Completion{
		PromptID:      promptID,
		CompletedDate: date,
		Notes:         notes,
	})
	if err != nil {
		return 0, fmt.Errorf("recording completion: %w", err)
	}
	return id, nil
}

// CleanupResult reports what CleanupOldSkippedPrompts removed.
type CleanupResult struct {
	Cutoff     string `json:"cutoff"`
	Skips      int    `json:"skips"`
	Selections int    `json:"selections"`
}

// CleanupOldSkippedPrompts deletes skips and daily selections dated
// strictly before today minus daysToKeep.
func (s *Selector) CleanupOldSkippedPrompts(ctx context.Context, today string, daysToKeep int) (CleanupResult, error) {
	if daysToKeep < 0 {
		return CleanupResult{}, fmt.Errorf("%w: days to keep must not be negative", storage.ErrValidation)
	}
	cutoff, err := day.AddDays(today, -daysToKeep)
	if err != nil {
		return CleanupResult{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	res := CleanupResult{Cutoff: cutoff}
	if res.Skips, err = s.store.DeleteSkippedPromptsBefore(ctx, cutoff); err != nil {
		return res, fmt.Errorf("deleting old skips: %w", err)
	}
	if res.Selections, err = s.store.DeleteDailySelectionsBefore(ctx, cutoff); err != nil {
		return res, fmt.Errorf("deleting old selections: %w", err)
	}
	return res, nil
}

// pick chooses and persists a prompt for date. When perturb is set the seed
// is offset by the number of skips recorded for the date.
func (s *Selector) pick(ctx context.Context, date string, perturb bool) (prompt.Prompt, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return prompt.Prompt{}, err
	}

	skipped, err := s.store.SkippedPromptIDs(ctx, date)
	if err != nil {
		return prompt.Prompt{}, fmt.Errorf("loading skipped prompts: %w", err)
	}

	seed, err := day.Seed(date)
	if err != nil {
		return prompt.Prompt{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	candidates := Candidates(catalog, skipped)
	if len(candidates) == 0 {
		// everything was skipped: offer the full catalog with the plain seed
		candidates = catalog
	} else if perturb {
		seed += int64(len(skipped))
	}

	p := candidates[Index(seed, len(candidates))]
	if err := s.store.PutDailySelection(ctx, storage.DailySelection{Date: date, PromptID: p.ID}); err != nil {
		return prompt.Prompt{}, fmt.Errorf("saving daily selection: %w", err)
	}
	logger.Debug("prompt selected", "date", date, "prompt", p.ID, "candidates", len(candidates), "skipped", len(skipped))
	return p, nil
}

// catalog loads all prompts, seeding the defaults and retrying once when
// the catalog is empty.
func (s *Selector) catalog(ctx context.Context) ([]prompt.Prompt, error) {
	ps, err := s.store.ListPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading prompts: %w", err)
	}
	if len(ps) > 0 {
		return ps, nil
	}

	if _, err := s.InitializeDatabase(ctx); err != nil {
		return nil, err
	}
	ps, err = s.store.ListPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading prompts: %w", err)
	}
	if len(ps) == 0 {
		return nil, ErrEmptyCatalog
	}
	return ps, nil
}

// Candidates returns catalog minus the skipped IDs, preserving order.
func Candidates(catalog []prompt.Prompt, skipped []int) []prompt.Prompt {
	if len(skipped) == 0 {
		return catalog
	}
	excluded := make(map[int]bool, len(skipped))
	for _, id := range skipped {
		excluded[id] = true
	}
	out := make([]prompt.Prompt, 0, len(catalog))
	for _, p := range catalog {
		if !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Index returns the deterministic index in [0, n) for seed.
func Index(seed int64, n int) int {
	r := rand.New(rand.NewPCG(uint64(seed), 0))
	return r.IntN(n)
}
