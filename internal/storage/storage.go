package storage

import (
	"context"
	"errors"

	"github.com/chris-regnier/kindctl/internal/prompt"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// ProgressKey is the fixed key of the singleton progress record.
const ProgressKey = 1

// Completion records that a prompt was done on a given date.
// There is at most one completion per CompletedDate.
type Completion struct {
	ID            int64  `json:"id"`
	PromptID      int    `json:"prompt_id"`
	CompletedDate string `json:"completed_date"`
	IsFavorite    bool   `json:"is_favorite"`
	Notes         string `json:"notes"`
}

// SkippedPrompt records a prompt the user passed on for one date.
type SkippedPrompt struct {
	ID          int64  `json:"id"`
	PromptID    int    `json:"prompt_id"`
	SkippedDate string `json:"skipped_date"`
	Reason      string `json:"reason"`
}

// DailySelection is the prompt assigned to a date.
type DailySelection struct {
	Date     string `json:"date"`
	PromptID int    `json:"prompt_id"`
}

// Progress is the singleton streak record.
type Progress struct {
	CurrentStreak     int    `json:"current_streak"`
	BestStreak        int    `json:"best_streak"`
	LastCompletedDate string `json:"last_completed_date"`
	TotalCompleted    int    `json:"total_completed"`
	StartDate         string `json:"start_date"`
}

// CompletionFilter selects which completions ListCompletions returns.
type CompletionFilter struct {
	FavoritesOnly bool
	StartDate     string // inclusive, "" = no lower bound
	EndDate       string // inclusive, "" = no upper bound
	Limit         int    // 0 = no limit
}

// Storage defines persistence for prompts, completions, skips, daily
// selections and progress. Dates are "YYYY-MM-DD" keys.
type Storage interface {
	// Prompt catalog
	ListPrompts(ctx context.Context) ([]prompt.Prompt, error)
	GetPrompt(ctx context.Context, id int) (prompt.Prompt, error)
	// InsertPrompts ignores prompts whose ID already exists and returns how
	// many were added.
	InsertPrompts(ctx context.Context, ps []prompt.Prompt) (int, error)
	CountPrompts(ctx context.Context) (int, error)

	// Completions
	GetCompletionByDate(ctx context.Context, date string) (Completion, error)
	GetCompletion(ctx context.Context, id int64) (Completion, error)
	// InsertCompletion replaces any completion on the same date and returns
	// the new ID.
	InsertCompletion(ctx context.Context, c Completion) (int64, error)
	UpdateCompletion(ctx context.Context, c Completion) error
	DeleteCompletion(ctx context.Context, id int64) error
	// ListCompletions returns completions ordered by date, newest first.
	ListCompletions(ctx context.Context, f CompletionFilter) ([]Completion, error)

	// Daily selections
	PutDailySelection(ctx context.Context, sel DailySelection) error
	GetDailySelection(ctx context.Context, date string) (DailySelection, error)
	DeleteDailySelectionsBefore(ctx context.Context, cutoff string) (int, error)

	// Skips
	InsertSkippedPrompt(ctx context.Context, sp SkippedPrompt) (int64, error)
	SkippedPromptIDs(ctx context.Context, date string) ([]int, error)
	DeleteSkippedPromptsBefore(ctx context.Context, cutoff string) (int, error)

	// Progress singleton
	GetProgress(ctx context.Context) (Progress, error)
	PutProgress(ctx context.Context, p Progress) error

	Close() error
}

// Watchable is implemented by backends that persist to the local
// filesystem. WatchPaths returns the directories whose changes signal new
// data.
type Watchable interface {
	WatchPaths() []string
}
