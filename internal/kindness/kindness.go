// Package kindness is the application service shared by the CLI, the
// Telegram bot, the MCP server and the reminder scheduler. It sequences
// the selector, streak tracker and history the way a user action needs.
package kindness

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/streak"
)

// ErrAlreadyCompleted is returned when skipping a prompt on a day that is
// already done.
var ErrAlreadyCompleted = errors.New("today's kindness is already completed")

// Options configures a Service.
type Options struct {
	// RetentionDays is how long skips and selections are kept.
	// Zero means daily.DefaultRetentionDays.
	RetentionDays int
	// Today returns the current date key. Defaults to day.Today.
	Today func() string
}

// Service is the entry point for user actions.
type Service struct {
	Store    storage.Storage
	Selector *daily.Selector
	Tracker  *streak.Tracker
	History  *history.History

	retention int
	today     func() string
}

// New wires a Service around store.
func New(store storage.Storage, opts Options) *Service {
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = daily.DefaultRetentionDays
	}
	if opts.Today == nil {
		opts.Today = day.Today
	}
	return &Service{
		Store:     store,
		Selector:  daily.NewSelector(store),
		Tracker:   streak.NewTracker(store).WithToday(opts.Today),
		History:   history.New(store),
		retention: opts.RetentionDays,
		today:     opts.Today,
	}
}

// TodayKey returns the date key the service treats as today.
func (s *Service) TodayKey() string {
	return s.today()
}

// Today returns today's prompt, seeding the catalog on first use.
func (s *Service) Today(ctx context.Context) (daily.Daily, error) {
	return s.dailyFor(ctx, s.today())
}

// dailyFor resolves the prompt for date. Actions read the clock once and pass
// the date through so a midnight rollover cannot split one action across days.
func (s *Service) dailyFor(ctx context.Context, date string) (daily.Daily, error) {
	if _, err := s.Selector.InitializeDatabase(ctx); err != nil {
		return daily.Daily{}, err
	}
	return s.Selector.GetDailyPrompt(ctx, date)
}

// CompleteResult is the outcome of Complete.
type CompleteResult struct {
	Daily            daily.Daily      `json:"daily"`
	Progress         storage.Progress `json:"progress"`
	Milestones       []int            `json:"milestones"`
	AlreadyCompleted bool             `json:"already_completed"`
}

// Complete marks today's prompt done and advances the streak. Completing a
// finished day is not an error; the result reports AlreadyCompleted.
//
// The completion and the streak update are two separate writes. If the
// second fails the completion stands and `kindctl streak --repair` rebuilds
// progress from completions.
func (s *Service) Complete(ctx context.Context, notes string) (CompleteResult, error) {
	date := s.today()
	d, err := s.dailyFor(ctx, date)
	if err != nil {
		return CompleteResult{}, err
	}

	if d.Completed() {
		p, err := s.Tracker.GetUserProgress(ctx)
		if err != nil {
			return CompleteResult{}, err
		}
		return CompleteResult{Daily: d, Progress: p, Milestones: []int{}, AlreadyCompleted: true}, nil
	}

	id, err := s.Selector.MarkPromptAsCompleted(ctx, d.Prompt.ID, date, notes)
	if err != nil {
		return CompleteResult{}, err
	}

	p, err := s.Tracker.UpdateStreakOnCompletion(ctx, date)
	if err != nil {
		logger.Error("streak update failed after completion", "date", date, "completion", id, "err", err)
		return CompleteResult{}, fmt.Errorf("updating streak: %w", err)
	}

	d.Completion = &storage.Completion{ID: id, PromptID: d.Prompt.ID, CompletedDate: date, Notes: notes}
	logger.Info("prompt completed", "date", date, "prompt", d.Prompt.ID, "streak", p.CurrentStreak)
	return CompleteResult{
		Daily:      d,
		Progress:   p,
		Milestones: streak.MilestonesReached(p.CurrentStreak),
	}, nil
}

// Skip passes on today's prompt and returns the next one. Old skips are
// then cleaned up; a cleanup failure is logged, not returned.
func (s *Service) Skip(ctx context.Context, reason string) (daily.Daily, error) {
	date := s.today()
	current, err := s.dailyFor(ctx, date)
	if err != nil {
		return daily.Daily{}, err
	}
	if current.Completed() {
		return current, ErrAlreadyCompleted
	}

	if _, err := s.Selector.SkipPrompt(ctx, current.Prompt.ID, date, reason); err != nil {
		return daily.Daily{}, err
	}
	next, err := s.Selector.GetNextAvailablePrompt(ctx, date)
	if err != nil {
		return daily.Daily{}, err
	}
	logger.Info("prompt skipped", "date", date, "skipped", current.Prompt.ID, "next", next.Prompt.ID)

	if res, err := s.Selector.CleanupOldSkippedPrompts(ctx, date, s.retention); err != nil {
		logger.Warn("cleanup of old skips failed", "err", err)
	} else if res.Skips+res.Selections > 0 {
		logger.Debug("cleaned up old skips", "cutoff", res.Cutoff, "skips", res.Skips, "selections", res.Selections)
	}
	return next, nil
}

// Progress returns the stored progress.
func (s *Service) Progress(ctx context.Context) (storage.Progress, error) {
	return s.Tracker.GetUserProgress(ctx)
}

// Summary is a compact view of where the user stands today.
type Summary struct {
	Date          string           `json:"date"`
	DoneToday     bool             `json:"done_today"`
	ActiveStreak  int              `json:"active_streak"`
	NextMilestone int              `json:"next_milestone"`
	Progress      storage.Progress `json:"progress"`
}

// Summary reports today's status without selecting a prompt.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	date := s.today()
	p, err := s.Tracker.GetUserProgress(ctx)
	if err != nil {
		return Summary{}, err
	}

	done := true
	if _, err := s.Store.GetCompletionByDate(ctx, date); errors.Is(err, storage.ErrNotFound) {
		done = false
	} else if err != nil {
		return Summary{}, fmt.Errorf("checking today's completion: %w", err)
	}

	active := streak.ActiveStreak(p, date)
	return Summary{
		Date:          date,
		DoneToday:     done,
		ActiveStreak:  active,
		NextMilestone: streak.NextMilestone(active),
		Progress:      p,
	}, nil
}
