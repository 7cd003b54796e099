package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	skipReason      string
	skipInteractive bool
)

// skipResult is the JSON form of a skip.
type skipResult struct {
	SkippedPromptID int         `json:"skipped_prompt_id"`
	Next            daily.Daily `json:"next"`
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip today's prompt and get another one",
	Long: `Skip today's prompt and get a different one for the rest of the day.

A skipped prompt will not come back today. A completed day cannot be skipped.`,
	Example: `  kindctl skip
  kindctl skip --reason "working from home today"
  kindctl skip -i`,
	Args:     cobra.NoArgs,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		reason := skipReason
		if skipInteractive {
			d, err := svc.Today(ctx)
			if err != nil {
				return fmt.Errorf("getting today's prompt: %w", err)
			}
			if err := ui.RunForm(ui.NewSkipForm(d, &reason), currentTheme()); err != nil {
				if errors.Is(err, ui.ErrAborted) {
					fmt.Fprintln(os.Stdout, "Cancelled.")
					return nil
				}
				return err
			}
		}
		return skipRun(ctx, os.Stdout, ui.CleanNotes(reason))
	},
}

func skipRun(ctx context.Context, w io.Writer, reason string) error {
	current, err := svc.Today(ctx)
	if err != nil {
		return fmt.Errorf("getting today's prompt: %w", err)
	}

	next, err := svc.Skip(ctx, reason)
	if err != nil {
		if errors.Is(err, kindness.ErrAlreadyCompleted) {
			return fmt.Errorf("%w; nothing to skip", err)
		}
		return fmt.Errorf("skipping prompt: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, skipResult{SkippedPromptID: current.Prompt.ID, Next: next})
	}
	ui.FormatSkipped(w, current.Prompt, next)
	return nil
}

func init() {
	skipCmd.Flags().StringVar(&skipReason, "reason", "", "why you are skipping")
	skipCmd.Flags().BoolVarP(&skipInteractive, "interactive", "i", false, "enter the reason in a form")
	rootCmd.AddCommand(skipCmd)
}
