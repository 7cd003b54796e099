package mcptools

// PromptResult describes a prompt and its state for a day.
type PromptResult struct {
	Date         string `json:"date"`
	PromptID     int    `json:"prompt_id"`
	Text         string `json:"text"`
	Category     string `json:"category"`
	Completed    bool   `json:"completed"`
	CompletionID int64  `json:"completion_id,omitempty"`
	Favorite     bool   `json:"favorite,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// DailyPromptInput is the input schema for get_daily_prompt.
type DailyPromptInput struct{}

// DailyPromptOutput is the output schema for get_daily_prompt.
type DailyPromptOutput struct {
	Prompt PromptResult `json:"prompt"`
}

// CompleteInput is the input schema for complete_prompt.
type CompleteInput struct {
	Notes string `json:"notes,omitempty" jsonschema:"optional notes about how it went"`
}

// CompleteOutput is the output schema for complete_prompt.
type CompleteOutput struct {
	Prompt           PromptResult `json:"prompt"`
	AlreadyCompleted bool         `json:"already_completed"`
	CurrentStreak    int          `json:"current_streak"`
	BestStreak       int          `json:"best_streak"`
	Milestones       []int        `json:"milestones"`
}

// SkipInput is the input schema for skip_prompt.
type SkipInput struct {
	Reason string `json:"reason,omitempty" jsonschema:"optional reason for skipping"`
}

// SkipOutput is the output schema for skip_prompt.
type SkipOutput struct {
	SkippedPromptID int          `json:"skipped_prompt_id"`
	Prompt          PromptResult `json:"prompt"`
}

// ProgressInput is the input schema for get_progress.
type ProgressInput struct{}

// ProgressOutput is the output schema for get_progress.
type ProgressOutput struct {
	Date              string `json:"date"`
	DoneToday         bool   `json:"done_today"`
	CurrentStreak     int    `json:"current_streak"`
	BestStreak        int    `json:"best_streak"`
	TotalCompleted    int    `json:"total_completed"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
	NextMilestone     int    `json:"next_milestone,omitempty"`
}

// HistoryInput is the input schema for list_history.
type HistoryInput struct {
	FavoritesOnly bool `json:"favorites_only,omitempty" jsonschema:"only return favorited completions"`
	Limit         int  `json:"limit,omitempty" jsonschema:"maximum number of results, 0 for all"`
}

// HistoryOutput is the output schema for list_history.
type HistoryOutput struct {
	Completions []PromptResult `json:"completions"`
}
