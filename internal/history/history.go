// Package history lists and edits past completions joined with their
// prompts.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// Filter selects which completions are listed.
type Filter int

const (
	All Filter = iota
	Favorites
)

func (f Filter) String() string {
	if f == Favorites {
		return "favorites"
	}
	return "all"
}

// ParseFilter accepts "all" or "favorites".
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return All, nil
	case "favorites", "favorite", "fav":
		return Favorites, nil
	}
	return All, fmt.Errorf("unknown history filter %q (want all or favorites)", s)
}

// Item is a completion with its prompt.
type Item struct {
	Completion storage.Completion `json:"completion"`
	Prompt     prompt.Prompt      `json:"prompt"`
}

// Options controls List.
type Options struct {
	Filter Filter
	Limit  int // 0 = no limit
}

// History reads and edits completions.
type History struct {
	store storage.Storage
}

// New returns a History over store.
func New(store storage.Storage) *History {
	return &History{store: store}
}

// List returns completions newest first. Completions whose prompt is no
// longer in the catalog are dropped.
func (h *History) List(ctx context.Context, opts Options) ([]Item, error) {
	cs, err := h.store.ListCompletions(ctx, storage.CompletionFilter{
		FavoritesOnly: opts.Filter == Favorites,
	})
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}

	prompts, err := h.store.ListPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	byID := make(map[int]prompt.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.ID] = p
	}

	items := []Item{}
	for _, c := range cs {
		p, ok := byID[c.PromptID]
		if !ok {
			logger.Debug("dropping completion with missing prompt", "completion", c.ID, "prompt", c.PromptID)
			continue
		}
		items = append(items, Item{Completion: c, Prompt: p})
		if opts.Limit > 0 && len(items) == opts.Limit {
			break
		}
	}
	return items, nil
}

// Get returns one completion with its prompt.
func (h *History) Get(ctx context.Context, id int64) (Item, error) {
	c, err := h.store.GetCompletion(ctx, id)
	if err != nil {
		return Item{}, err
	}
	p, err := h.store.GetPrompt(ctx, c.PromptID)
	if errors.Is(err, storage.ErrNotFound) {
		p = prompt.Placeholder(c.PromptID)
	} else if err != nil {
		return Item{}, err
	}
	return Item{Completion: c, Prompt: p}, nil
}

// ToggleFavorite flips the favorite flag and returns the updated completion.
func (h *History) ToggleFavorite(ctx context.Context, id int64) (storage.Completion, error) {
	c, err := h.store.GetCompletion(ctx, id)
	if err != nil {
		return storage.Completion{}, err
	}
	c.IsFavorite = !c.IsFavorite
	if err := h.store.UpdateCompletion(ctx, c); err != nil {
		return storage.Completion{}, err
	}
	return c, nil
}

// UpdateNotes replaces a completion's notes.
func (h *History) UpdateNotes(ctx context.Context, id int64, notes string) (storage.Completion, error) {
	c, err := h.store.GetCompletion(ctx, id)
	if err != nil {
		return storage.Completion{}, err
	}
	c.Notes = notes
	if err := h.store.UpdateCompletion(ctx, c); err != nil {
		return storage.Completion{}, err
	}
	return c, nil
}

// Delete removes a completion. Stored streak progress is not rolled back;
// see streak.Tracker.Verify.
func (h *History) Delete(ctx context.Context, id int64) error {
	return h.store.DeleteCompletion(ctx, id)
}
