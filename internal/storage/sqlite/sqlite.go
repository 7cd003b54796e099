package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db      *sql.DB
	dataDir string
}

// New creates a new SQLite storage backend in dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "kindctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// journal_mode returns the resulting mode as a row; libSQL rejects it through Exec.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dataDir: dataDir}, nil
}

// schema is applied one statement at a time; libSQL only runs the first
// statement of a multi-statement Exec.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS prompts (
		id       INTEGER PRIMARY KEY,
		text     TEXT NOT NULL CHECK(length(trim(text)) > 0),
		category TEXT NOT NULL DEFAULT 'general'
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		prompt_id      INTEGER NOT NULL,
		completed_date TEXT NOT NULL UNIQUE,
		is_favorite    INTEGER NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_favorite ON completions(is_favorite, completed_date DESC)`,
	`CREATE TABLE IF NOT EXISTS skipped_prompts (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		prompt_id    INTEGER NOT NULL,
		skipped_date TEXT NOT NULL,
		reason       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_skipped_date ON skipped_prompts(skipped_date)`,
	`CREATE TABLE IF NOT EXISTS daily_selections (
		date      TEXT PRIMARY KEY,
		prompt_id INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id                  INTEGER PRIMARY KEY CHECK(id = 1),
		current_streak      INTEGER NOT NULL DEFAULT 0,
		best_streak         INTEGER NOT NULL DEFAULT 0,
		last_completed_date TEXT NOT NULL DEFAULT '',
		total_completed     INTEGER NOT NULL DEFAULT 0,
		start_date          TEXT NOT NULL
	)`,
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: creating schema (statement %d): %v", storage.ErrStorage, i+1, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// WatchPaths returns the data directory holding the database and its WAL.
func (s *Store) WatchPaths() []string {
	return []string{s.dataDir}
}

// ListPrompts returns the catalog ordered by ID.
func (s *Store) ListPrompts(ctx context.Context) ([]prompt.Prompt, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text, category FROM prompts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: listing prompts: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	ps := []prompt.Prompt{}
	for rows.Next() {
		var p prompt.Prompt
		if err := rows.Scan(&p.ID, &p.Text, &p.Category); err != nil {
			return nil, fmt.Errorf("%w: scanning prompt: %v", storage.ErrStorage, err)
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

// GetPrompt retrieves a prompt by ID.
func (s *Store) GetPrompt(ctx context.Context, id int) (prompt.Prompt, error) {
	var p prompt.Prompt
	err := s.db.QueryRowContext(ctx,
		"SELECT id, text, category FROM prompts WHERE id = ?", id,
	).Scan(&p.ID, &p.Text, &p.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return prompt.Prompt{}, storage.ErrNotFound
		}
		return prompt.Prompt{}, fmt.Errorf("%w: querying prompt: %v", storage.ErrStorage, err)
	}
	return p, nil
}

// InsertPrompts adds prompts, skipping IDs already in the catalog.
func (s *Store) InsertPrompts(ctx context.Context, ps []prompt.Prompt) (int, error) {
	for _, p := range ps {
		if err := prompt.Validate(p); err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrValidation, err)
		}
	}

	before, err := s.CountPrompts(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	for _, p := range ps {
		p = prompt.Normalize(p)
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO prompts (id, text, category) VALUES (?, ?, ?)",
			p.ID, p.Text, p.Category,
		); err != nil {
			return 0, fmt.Errorf("%w: inserting prompt %d: %v", storage.ErrStorage, p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}

	after, err := s.CountPrompts(ctx)
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

// CountPrompts returns the catalog size.
func (s *Store) CountPrompts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM prompts").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting prompts: %v", storage.ErrStorage, err)
	}
	return n, nil
}
