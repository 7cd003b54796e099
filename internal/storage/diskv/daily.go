package diskv

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chris-regnier/kindctl/internal/storage"
)

func selectionKey(date string) string {
	return kindSelection + "/" + date
}

// skip keys sort by date, then by ID within a date
func skipKey(date string, id int64) string {
	return fmt.Sprintf("%s/%s_%010d", kindSkip, date, id)
}

// keyDate extracts the date prefix of a selection or skip key name.
func keyDate(key string) string {
	_, name, _ := strings.Cut(key, "/")
	date, _, _ := strings.Cut(name, "_")
	return date
}

// PutDailySelection upserts the selection for sel.Date.
func (s *Store) PutDailySelection(ctx context.Context, sel storage.DailySelection) error {
	if err := storage.ValidateSelection(sel); err != nil {
		return err
	}
	return s.writeJSON(selectionKey(sel.Date), sel)
}

// GetDailySelection returns the selection for date.
func (s *Store) GetDailySelection(ctx context.Context, date string) (storage.DailySelection, error) {
	var sel storage.DailySelection
	if err := s.readJSON(selectionKey(date), &sel); err != nil {
		return storage.DailySelection{}, err
	}
	return sel, nil
}

func (s *Store) deleteBefore(ctx context.Context, kind, cutoff string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, key := range s.keys(ctx, kind) {
		if keyDate(key) >= cutoff {
			continue
		}
		if err := s.erase(key); err != nil {
			return n, err
		}
		n++
	}
	return n, ctx.Err()
}

// DeleteDailySelectionsBefore removes selections dated strictly before cutoff.
func (s *Store) DeleteDailySelectionsBefore(ctx context.Context, cutoff string) (int, error) {
	return s.deleteBefore(ctx, kindSelection, cutoff)
}

// InsertSkippedPrompt records a skip and returns its ID.
func (s *Store) InsertSkippedPrompt(ctx context.Context, sp storage.SkippedPrompt) (int64, error) {
	if err := storage.ValidateSkip(sp); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID(keySeqSkip)
	if err != nil {
		return 0, err
	}
	sp.ID = id
	if err := s.writeJSON(skipKey(sp.SkippedDate, id), sp); err != nil {
		return 0, err
	}
	return id, nil
}

// SkippedPromptIDs returns the IDs skipped on date, in skip order.
func (s *Store) SkippedPromptIDs(ctx context.Context, date string) ([]int, error) {
	var keys []string
	for key := range s.d.KeysPrefix(kindSkip+"/"+date+"_", ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ids := []int{}
	for _, key := range keys {
		var sp storage.SkippedPrompt
		if err := s.readJSON(key, &sp); err != nil {
			return nil, err
		}
		ids = append(ids, sp.PromptID)
	}
	return ids, ctx.Err()
}

// DeleteSkippedPromptsBefore removes skips dated strictly before cutoff.
func (s *Store) DeleteSkippedPromptsBefore(ctx context.Context, cutoff string) (int, error) {
	return s.deleteBefore(ctx, kindSkip, cutoff)
}

// GetProgress returns the progress singleton.
func (s *Store) GetProgress(ctx context.Context) (storage.Progress, error) {
	var p storage.Progress
	if err := s.readJSON(keyProgress, &p); err != nil {
		return storage.Progress{}, err
	}
	return p, nil
}

// PutProgress replaces the progress singleton.
func (s *Store) PutProgress(ctx context.Context, p storage.Progress) error {
	return s.writeJSON(keyProgress, p)
}
