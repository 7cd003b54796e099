package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	streakVerify bool
	streakRepair bool
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your kindness streak",
	Long: `Show your current and best streak, total completions and milestones.

--verify rebuilds progress from the completion history and reports any
difference without writing. --repair writes the rebuilt progress; the best
streak never goes down.`,
	Example: `  kindctl streak
  kindctl streak --verify
  kindctl streak --repair`,
	Args: cobra.NoArgs,
	PostRunE: func(cmd *cobra.Command, args []string) error {
		if streakRepair {
			return invalidateCachePostRun(cmd, args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if streakVerify && streakRepair {
			return fmt.Errorf("--verify and --repair cannot be combined")
		}
		return streakRun(cmd.Context(), os.Stdout, streakVerify, streakRepair)
	},
}

func streakRun(ctx context.Context, w io.Writer, verify, repair bool) error {
	switch {
	case verify:
		d, err := svc.Tracker.Verify(ctx)
		if err != nil {
			return fmt.Errorf("verifying progress: %w", err)
		}
		if jsonOutput {
			return ui.FormatJSON(w, d)
		}
		ui.FormatDrift(w, d)
		return nil

	case repair:
		p, err := svc.Tracker.Recompute(ctx)
		if err != nil {
			return fmt.Errorf("repairing progress: %w", err)
		}
		if jsonOutput {
			return ui.FormatJSON(w, p)
		}
		fmt.Fprintln(w, "Progress rebuilt from completion history.")
		ui.FormatProgress(w, p, svc.TodayKey())
		return nil
	}

	if jsonOutput {
		s, err := svc.Summary(ctx)
		if err != nil {
			return fmt.Errorf("reading progress: %w", err)
		}
		return ui.FormatJSON(w, s)
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}
	ui.FormatProgress(w, p, svc.TodayKey())
	return nil
}

func init() {
	streakCmd.Flags().BoolVar(&streakVerify, "verify", false, "compare stored progress with completion history")
	streakCmd.Flags().BoolVar(&streakRepair, "repair", false, "rebuild stored progress from completion history")
	rootCmd.AddCommand(streakCmd)
}
