package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/shell"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func promptResult(d daily.Daily) PromptResult {
	r := PromptResult{
		Date:     d.Date,
		PromptID: d.Prompt.ID,
		Text:     d.Prompt.Text,
		Category: d.Prompt.Category,
	}
	if c := d.Completion; c != nil {
		r.Completed = true
		r.CompletionID = c.ID
		r.Favorite = c.IsFavorite
		r.Notes = c.Notes
	}
	return r
}

func invalidate(dataDir string) {
	if dataDir != "" {
		_ = shell.InvalidateCache(dataDir)
	}
}

// DailyPromptHandler returns the handler for get_daily_prompt.
func DailyPromptHandler(svc *kindness.Service) func(context.Context, *mcp.CallToolRequest, DailyPromptInput) (*mcp.CallToolResult, DailyPromptOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ DailyPromptInput) (*mcp.CallToolResult, DailyPromptOutput, error) {
		d, err := svc.Today(ctx)
		if err != nil {
			return nil, DailyPromptOutput{}, err
		}
		return nil, DailyPromptOutput{Prompt: promptResult(d)}, nil
	}
}

// CompleteHandler returns the handler for complete_prompt.
func CompleteHandler(svc *kindness.Service, dataDir string) func(context.Context, *mcp.CallToolRequest, CompleteInput) (*mcp.CallToolResult, CompleteOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, CompleteOutput, error) {
		res, err := svc.Complete(ctx, input.Notes)
		if err != nil {
			return nil, CompleteOutput{}, err
		}
		invalidate(dataDir)
		return nil, CompleteOutput{
			Prompt:           promptResult(res.Daily),
			AlreadyCompleted: res.AlreadyCompleted,
			CurrentStreak:    res.Progress.CurrentStreak,
			BestStreak:       res.Progress.BestStreak,
			Milestones:       res.Milestones,
		}, nil
	}
}

// SkipHandler returns the handler for skip_prompt.
func SkipHandler(svc *kindness.Service, dataDir string) func(context.Context, *mcp.CallToolRequest, SkipInput) (*mcp.CallToolResult, SkipOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SkipInput) (*mcp.CallToolResult, SkipOutput, error) {
		current, err := svc.Today(ctx)
		if err != nil {
			return nil, SkipOutput{}, err
		}
		next, err := svc.Skip(ctx, input.Reason)
		if errors.Is(err, kindness.ErrAlreadyCompleted) {
			return nil, SkipOutput{}, fmt.Errorf("today's prompt is already completed")
		}
		if err != nil {
			return nil, SkipOutput{}, err
		}
		invalidate(dataDir)
		return nil, SkipOutput{SkippedPromptID: current.Prompt.ID, Prompt: promptResult(next)}, nil
	}
}

// ProgressHandler returns the handler for get_progress.
func ProgressHandler(svc *kindness.Service) func(context.Context, *mcp.CallToolRequest, ProgressInput) (*mcp.CallToolResult, ProgressOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ ProgressInput) (*mcp.CallToolResult, ProgressOutput, error) {
		s, err := svc.Summary(ctx)
		if err != nil {
			return nil, ProgressOutput{}, err
		}
		return nil, ProgressOutput{
			Date:              s.Date,
			DoneToday:         s.DoneToday,
			CurrentStreak:     s.ActiveStreak,
			BestStreak:        s.Progress.BestStreak,
			TotalCompleted:    s.Progress.TotalCompleted,
			LastCompletedDate: s.Progress.LastCompletedDate,
			StartDate:         s.Progress.StartDate,
			NextMilestone:     s.NextMilestone,
		}, nil
	}
}

// HistoryHandler returns the handler for list_history.
func HistoryHandler(svc *kindness.Service) func(context.Context, *mcp.CallToolRequest, HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
		if input.Limit < 0 {
			return nil, HistoryOutput{}, fmt.Errorf("limit must not be negative")
		}
		opts := history.Options{Limit: input.Limit}
		if input.FavoritesOnly {
			opts.Filter = history.Favorites
		}
		items, err := svc.History.List(ctx, opts)
		if err != nil {
			return nil, HistoryOutput{}, err
		}
		out := HistoryOutput{Completions: make([]PromptResult, 0, len(items))}
		for _, it := range items {
			c := it.Completion
			out.Completions = append(out.Completions, promptResult(daily.Daily{Date: c.CompletedDate, Prompt: it.Prompt, Completion: &c}))
		}
		return nil, out, nil
	}
}
