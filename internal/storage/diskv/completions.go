package diskv

import (
	"context"

	"github.com/chris-regnier/kindctl/internal/storage"
)

// Completions are keyed by date, so a second insert on the same date
// overwrites the first.
func completionKey(date string) string {
	return kindCompletion + "/" + date
}

// GetCompletionByDate returns the completion recorded on date.
func (s *Store) GetCompletionByDate(ctx context.Context, date string) (storage.Completion, error) {
	var c storage.Completion
	if err := s.readJSON(completionKey(date), &c); err != nil {
		return storage.Completion{}, err
	}
	return c, nil
}

// findCompletion scans completions for id and returns it with its key.
func (s *Store) findCompletion(ctx context.Context, id int64) (storage.Completion, string, error) {
	for _, key := range s.keys(ctx, kindCompletion) {
		var c storage.Completion
		if err := s.readJSON(key, &c); err != nil {
			return storage.Completion{}, "", err
		}
		if c.ID == id {
			return c, key, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return storage.Completion{}, "", err
	}
	return storage.Completion{}, "", storage.ErrNotFound
}

// GetCompletion returns a completion by ID.
func (s *Store) GetCompletion(ctx context.Context, id int64) (storage.Completion, error) {
	c, _, err := s.findCompletion(ctx, id)
	return c, err
}

// InsertCompletion stores c under its date with a fresh ID.
func (s *Store) InsertCompletion(ctx context.Context, c storage.Completion) (int64, error) {
	if err := storage.ValidateCompletion(c); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID(keySeqCompletion)
	if err != nil {
		return 0, err
	}
	c.ID = id
	if err := s.writeJSON(completionKey(c.CompletedDate), c); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCompletion writes the favorite flag and notes of an existing
// completion.
func (s *Store) UpdateCompletion(ctx context.Context, c storage.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, key, err := s.findCompletion(ctx, c.ID)
	if err != nil {
		return err
	}
	existing.IsFavorite = c.IsFavorite
	existing.Notes = c.Notes
	return s.writeJSON(key, existing)
}

// DeleteCompletion removes a completion permanently.
func (s *Store) DeleteCompletion(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, key, err := s.findCompletion(ctx, id)
	if err != nil {
		return err
	}
	return s.erase(key)
}

// ListCompletions returns completions newest first.
func (s *Store) ListCompletions(ctx context.Context, f storage.CompletionFilter) ([]storage.Completion, error) {
	keys := s.keys(ctx, kindCompletion)

	cs := []storage.Completion{}
	// keys sort ascending by date; walk backwards for newest first
	for i := len(keys) - 1; i >= 0; i-- {
		var c storage.Completion
		if err := s.readJSON(keys[i], &c); err != nil {
			return nil, err
		}
		if f.FavoritesOnly && !c.IsFavorite {
			continue
		}
		if f.StartDate != "" && c.CompletedDate < f.StartDate {
			continue
		}
		if f.EndDate != "" && c.CompletedDate > f.EndDate {
			continue
		}
		cs = append(cs, c)
		if f.Limit > 0 && len(cs) == f.Limit {
			break
		}
	}
	return cs, ctx.Err()
}
