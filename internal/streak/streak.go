// Package streak maintains the user's daily completion streak.
//
// Two views of "current streak" exist. The stored Progress counter is
// updated incrementally on each completion and is authoritative for display
// and milestones. CurrentStreak recomputes the value from completion rows;
// Verify compares the two and Recompute rewrites Progress from the rows.
package streak

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// Milestones are the streak lengths that earn a celebration.
var Milestones = []int{3, 7, 14, 21, 30, 50, 100}

// Tracker reads and updates the progress singleton.
type Tracker struct {
	store storage.Storage
	today func() string
}

// NewTracker returns a Tracker that uses day.Today for lazily created
// progress.
func NewTracker(store storage.Storage) *Tracker {
	return &Tracker{store: store, today: day.Today}
}

// WithToday sets the clock used to date lazily created progress.
func (t *Tracker) WithToday(today func() string) *Tracker {
	t.today = today
	return t
}

// GetUserProgress returns the stored progress, creating and persisting a
// zeroed record that starts today when none exists.
func (t *Tracker) GetUserProgress(ctx context.Context) (storage.Progress, error) {
	p, err := t.store.GetProgress(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.Progress{}, fmt.Errorf("loading progress: %w", err)
	}

	p = storage.Progress{StartDate: t.today()}
	if err := t.store.PutProgress(ctx, p); err != nil {
		return storage.Progress{}, fmt.Errorf("creating progress: %w", err)
	}
	return p, nil
}

// UpdateStreakOnCompletion folds a completion on date into the progress
// record. Repeating the same date returns the progress unchanged.
func (t *Tracker) UpdateStreakOnCompletion(ctx context.Context, date string) (storage.Progress, error) {
	p, err := t.GetUserProgress(ctx)
	if err != nil {
		return storage.Progress{}, err
	}
	if p.LastCompletedDate == date {
		return p, nil
	}

	p = Advance(p, date)
	if err := t.store.PutProgress(ctx, p); err != nil {
		return storage.Progress{}, fmt.Errorf("saving progress: %w", err)
	}
	logger.Debug("streak updated", "date", date, "current", p.CurrentStreak, "best", p.BestStreak)
	return p, nil
}

// Advance applies one completion on date to p. A completion exactly one day
// after the last extends the streak; anything else, including an earlier
// date or an unparseable last date, restarts it at 1.
func Advance(p storage.Progress, date string) storage.Progress {
	switch {
	case p.LastCompletedDate == "":
		p.CurrentStreak = 1
	case day.IsNextDay(p.LastCompletedDate, date):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	p.BestStreak = max(p.BestStreak, p.CurrentStreak)
	p.TotalCompleted++
	p.LastCompletedDate = date
	return p
}

// MilestonesReached returns the milestone equal to current, if any. A
// milestone fires only on the day the streak reaches it.
func MilestonesReached(current int) []int {
	if slices.Contains(Milestones, current) {
		return []int{current}
	}
	return []int{}
}

// Unlocked returns every milestone at or below best.
func Unlocked(best int) []int {
	out := []int{}
	for _, m := range Milestones {
		if m <= best {
			out = append(out, m)
		}
	}
	return out
}

// NextMilestone returns the smallest milestone above current, or 0 past
// the last one.
func NextMilestone(current int) int {
	for _, m := range Milestones {
		if m > current {
			return m
		}
	}
	return 0
}

// ActiveStreak is the streak still alive as of today: the stored streak
// when the last completion was today or yesterday, otherwise 0.
func ActiveStreak(p storage.Progress, today string) int {
	if p.LastCompletedDate == today || day.IsNextDay(p.LastCompletedDate, today) {
		return p.CurrentStreak
	}
	return 0
}

// CurrentStreak counts consecutive days with a completion walking backward
// from today. It stops at the first day without one, so it is 0 when today
// is not yet completed.
func (t *Tracker) CurrentStreak(ctx context.Context, today string) (int, error) {
	if !day.Valid(today) {
		return 0, fmt.Errorf("%w: invalid date %q", storage.ErrValidation, today)
	}
	streak := 0
	date := today
	for {
		_, err := t.store.GetCompletionByDate(ctx, date)
		if errors.Is(err, storage.ErrNotFound) {
			return streak, nil
		}
		if err != nil {
			return 0, fmt.Errorf("walking completions: %w", err)
		}
		streak++
		date, _ = day.AddDays(date, -1)
	}
}

// Drift describes a disagreement between the stored counter and the
// completion rows.
type Drift struct {
	Stored   storage.Progress `json:"stored"`
	Computed storage.Progress `json:"computed"`
}

// InSync reports whether the stored and computed records agree on the
// fields derived from completions.
func (d Drift) InSync() bool {
	return d.Stored.CurrentStreak == d.Computed.CurrentStreak &&
		d.Stored.LastCompletedDate == d.Computed.LastCompletedDate &&
		d.Stored.TotalCompleted == d.Computed.TotalCompleted
}

// Verify compares stored progress with the value rebuilt from completions
// without writing anything.
func (t *Tracker) Verify(ctx context.Context) (Drift, error) {
	stored, err := t.GetUserProgress(ctx)
	if err != nil {
		return Drift{}, err
	}
	computed, err := t.rebuild(ctx, stored)
	if err != nil {
		return Drift{}, err
	}
	return Drift{Stored: stored, Computed: computed}, nil
}

// Recompute rewrites progress from the completion rows. BestStreak never
// decreases; StartDate is kept.
func (t *Tracker) Recompute(ctx context.Context) (storage.Progress, error) {
	stored, err := t.GetUserProgress(ctx)
	if err != nil {
		return storage.Progress{}, err
	}
	p, err := t.rebuild(ctx, stored)
	if err != nil {
		return storage.Progress{}, err
	}
	if err := t.store.PutProgress(ctx, p); err != nil {
		return storage.Progress{}, fmt.Errorf("saving progress: %w", err)
	}
	logger.Info("progress recomputed", "current", p.CurrentStreak, "best", p.BestStreak, "total", p.TotalCompleted)
	return p, nil
}

func (t *Tracker) rebuild(ctx context.Context, stored storage.Progress) (storage.Progress, error) {
	cs, err := t.store.ListCompletions(ctx, storage.CompletionFilter{})
	if err != nil {
		return storage.Progress{}, fmt.Errorf("listing completions: %w", err)
	}

	// replay oldest first
	p := storage.Progress{StartDate: stored.StartDate}
	for i := len(cs) - 1; i >= 0; i-- {
		p = Advance(p, cs[i].CompletedDate)
	}
	p.BestStreak = max(p.BestStreak, stored.BestStreak)
	if len(cs) > 0 && (p.StartDate == "" || cs[len(cs)-1].CompletedDate < p.StartDate) {
		p.StartDate = cs[len(cs)-1].CompletedDate
	}
	return p, nil
}
