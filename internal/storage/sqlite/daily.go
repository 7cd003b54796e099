package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chris-regnier/kindctl/internal/storage"
)

// PutDailySelection upserts the selection for sel.Date.
func (s *Store) PutDailySelection(ctx context.Context, sel storage.DailySelection) error {
	if err := storage.ValidateSelection(sel); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_selections (date, prompt_id) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET prompt_id = excluded.prompt_id`,
		sel.Date, sel.PromptID,
	); err != nil {
		return fmt.Errorf("%w: saving daily selection: %v", storage.ErrStorage, err)
	}
	return nil
}

// GetDailySelection returns the selection for date.
func (s *Store) GetDailySelection(ctx context.Context, date string) (storage.DailySelection, error) {
	sel := storage.DailySelection{Date: date}
	err := s.db.QueryRowContext(ctx,
		"SELECT prompt_id FROM daily_selections WHERE date = ?", date,
	).Scan(&sel.PromptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.DailySelection{}, storage.ErrNotFound
		}
		return storage.DailySelection{}, fmt.Errorf("%w: querying daily selection: %v", storage.ErrStorage, err)
	}
	return sel, nil
}

// DeleteDailySelectionsBefore removes selections dated strictly before cutoff.
func (s *Store) DeleteDailySelectionsBefore(ctx context.Context, cutoff string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM daily_selections WHERE date < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting daily selections: %v", storage.ErrStorage, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	return int(n), nil
}

// InsertSkippedPrompt records a skip and returns its ID.
func (s *Store) InsertSkippedPrompt(ctx context.Context, sp storage.SkippedPrompt) (int64, error) {
	if err := storage.ValidateSkip(sp); err != nil {
		return 0, err
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO skipped_prompts (prompt_id, skipped_date, reason) VALUES (?, ?, ?) RETURNING id",
		sp.PromptID, sp.SkippedDate, sp.Reason,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: inserting skipped prompt: %v", storage.ErrStorage, err)
	}
	return id, nil
}

// SkippedPromptIDs returns the IDs skipped on date, in skip order.
func (s *Store) SkippedPromptIDs(ctx context.Context, date string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT prompt_id FROM skipped_prompts WHERE skipped_date = ? ORDER BY id", date)
	if err != nil {
		return nil, fmt.Errorf("%w: listing skipped prompts: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteSkippedPromptsBefore removes skips dated strictly before cutoff.
func (s *Store) DeleteSkippedPromptsBefore(ctx context.Context, cutoff string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM skipped_prompts WHERE skipped_date < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting skipped prompts: %v", storage.ErrStorage, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	return int(n), nil
}

// GetProgress returns the progress singleton.
func (s *Store) GetProgress(ctx context.Context) (storage.Progress, error) {
	var p storage.Progress
	err := s.db.QueryRowContext(ctx,
		`SELECT current_streak, best_streak, last_completed_date, total_completed, start_date
		 FROM user_progress WHERE id = ?`, storage.ProgressKey,
	).Scan(&p.CurrentStreak, &p.BestStreak, &p.LastCompletedDate, &p.TotalCompleted, &p.StartDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Progress{}, storage.ErrNotFound
		}
		return storage.Progress{}, fmt.Errorf("%w: querying progress: %v", storage.ErrStorage, err)
	}
	return p, nil
}

// PutProgress inserts or replaces the progress singleton.
func (s *Store) PutProgress(ctx context.Context, p storage.Progress) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_progress
		 (id, current_streak, best_streak, last_completed_date, total_completed, start_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		storage.ProgressKey, p.CurrentStreak, p.BestStreak, p.LastCompletedDate, p.TotalCompleted, p.StartDate,
	); err != nil {
		return fmt.Errorf("%w: saving progress: %v", storage.ErrStorage, err)
	}
	return nil
}
