package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chris-regnier/kindctl/internal/storage"
)

const completionColumns = "id, prompt_id, completed_date, is_favorite, notes"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompletion(r rowScanner) (storage.Completion, error) {
	var c storage.Completion
	var fav int
	if err := r.Scan(&c.ID, &c.PromptID, &c.CompletedDate, &fav, &c.Notes); err != nil {
		return storage.Completion{}, err
	}
	c.IsFavorite = fav != 0
	return c, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) getCompletion(ctx context.Context, where string, arg any) (storage.Completion, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+completionColumns+" FROM completions WHERE "+where, arg)
	c, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Completion{}, storage.ErrNotFound
		}
		return storage.Completion{}, fmt.Errorf("%w: querying completion: %v", storage.ErrStorage, err)
	}
	return c, nil
}

// GetCompletionByDate returns the completion recorded on date.
func (s *Store) GetCompletionByDate(ctx context.Context, date string) (storage.Completion, error) {
	return s.getCompletion(ctx, "completed_date = ?", date)
}

// GetCompletion returns a completion by ID.
func (s *Store) GetCompletion(ctx context.Context, id int64) (storage.Completion, error) {
	return s.getCompletion(ctx, "id = ?", id)
}

// InsertCompletion stores c, replacing any completion on the same date.
func (s *Store) InsertCompletion(ctx context.Context, c storage.Completion) (int64, error) {
	if err := storage.ValidateCompletion(c); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT OR REPLACE INTO completions (prompt_id, completed_date, is_favorite, notes)
		 VALUES (?, ?, ?, ?) RETURNING id`,
		c.PromptID, c.CompletedDate, boolInt(c.IsFavorite), c.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: inserting completion: %v", storage.ErrStorage, err)
	}
	return id, nil
}

// UpdateCompletion writes the favorite flag and notes of an existing
// completion.
func (s *Store) UpdateCompletion(ctx context.Context, c storage.Completion) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE completions SET is_favorite = ?, notes = ? WHERE id = ?",
		boolInt(c.IsFavorite), c.Notes, c.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating completion: %v", storage.ErrStorage, err)
	}
	return checkAffected(result)
}

// DeleteCompletion removes a completion permanently.
func (s *Store) DeleteCompletion(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM completions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting completion: %v", storage.ErrStorage, err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListCompletions returns completions newest first.
func (s *Store) ListCompletions(ctx context.Context, f storage.CompletionFilter) ([]storage.Completion, error) {
	query := "SELECT " + completionColumns + " FROM completions WHERE 1=1"
	var args []any

	if f.FavoritesOnly {
		query += " AND is_favorite = 1"
	}
	if f.StartDate != "" {
		query += " AND completed_date >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += " AND completed_date <= ?"
		args = append(args, f.EndDate)
	}

	query += " ORDER BY completed_date DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing completions: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	cs := []storage.Completion{}
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}
