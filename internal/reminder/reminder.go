// Package reminder nudges the user about today's prompt until it is done.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/streak"
)

// DefaultAttempts is used when Options.Attempts is not positive.
const DefaultAttempts = 3

// Reminder is what a Notifier delivers.
type Reminder struct {
	Daily  daily.Daily
	Streak int
	Sound  bool
}

// Message is the plain-text reminder body.
func (r Reminder) Message() string {
	msg := fmt.Sprintf("Today's act of kindness: %s", r.Daily.Prompt.Text)
	if r.Streak > 0 {
		msg += fmt.Sprintf("\nKeep your %d-day streak going!", r.Streak)
	}
	return msg
}

// Notifier delivers a reminder somewhere.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, r Reminder) error
}

// Source resolves today's prompt and progress. *kindness.Service satisfies it.
type Source interface {
	TodayKey() string
	Today(ctx context.Context) (daily.Daily, error)
	Progress(ctx context.Context) (storage.Progress, error)
}

// Options tune a Runner.
type Options struct {
	Attempts int
	Backoff  time.Duration // wait before attempt n is n*Backoff
	Sound    bool
}

// Runner performs one reminder check with retries.
type Runner struct {
	src       Source
	notifiers []Notifier
	opts      Options
}

// NewRunner creates a Runner delivering through notifiers.
func NewRunner(src Source, opts Options, notifiers ...Notifier) *Runner {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 10 * time.Second
	}
	return &Runner{src: src, notifiers: notifiers, opts: opts}
}

// Run checks today's prompt and notifies when it is still open. sent is
// false when today is already completed.
func (r *Runner) Run(ctx context.Context) (sent bool, err error) {
	for attempt := 1; attempt <= r.opts.Attempts; attempt++ {
		sent, err = r.once(ctx)
		if err == nil {
			return sent, nil
		}
		logger.Warn("reminder attempt failed", "attempt", attempt, "of", r.opts.Attempts, "err", err)
		if attempt == r.opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(time.Duration(attempt) * r.opts.Backoff):
		}
	}
	return false, fmt.Errorf("reminder failed after %d attempts: %w", r.opts.Attempts, err)
}

func (r *Runner) once(ctx context.Context) (bool, error) {
	d, err := r.src.Today(ctx)
	if err != nil {
		return false, err
	}
	if d.Completed() {
		logger.Debug("today already completed, no reminder", "date", d.Date)
		return false, nil
	}
	p, err := r.src.Progress(ctx)
	if err != nil {
		return false, err
	}

	rem := Reminder{Daily: d, Streak: streak.ActiveStreak(p, r.src.TodayKey()), Sound: r.opts.Sound}
	var errs []error
	for _, n := range r.notifiers {
		if err := n.Notify(ctx, rem); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		logger.Info("reminder sent", "notifier", n.Name(), "prompt", d.Prompt.ID)
	}
	if len(errs) > 0 {
		return false, errors.Join(errs...)
	}
	return true, nil
}

// WriterNotifier prints reminders to a terminal or log stream.
type WriterNotifier struct {
	W io.Writer
}

// Name implements Notifier.
func (WriterNotifier) Name() string { return "terminal" }

// Notify implements Notifier. With sound on it rings the terminal bell.
func (n WriterNotifier) Notify(_ context.Context, r Reminder) error {
	bell := ""
	if r.Sound {
		bell = "\a"
	}
	_, err := fmt.Fprintf(n.W, "%s%s\n", bell, r.Message())
	return err
}
