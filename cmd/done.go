package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doneNotes       string
	doneInteractive bool
)

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Mark today's prompt as completed",
	Long: `Mark today's prompt as completed and advance your streak.

Completing an already completed day changes nothing. Use -i to write notes
and favorite the completion in a form.`,
	Example: `  kindctl done
  kindctl done --notes "helped a neighbor carry groceries"
  kindctl done -i`,
	Args:     cobra.NoArgs,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !doneInteractive {
			return doneRun(ctx, os.Stdout, ui.CleanNotes(doneNotes), false)
		}

		d, err := svc.Today(ctx)
		if err != nil {
			return fmt.Errorf("getting today's prompt: %w", err)
		}
		if d.Completed() {
			return doneRun(ctx, os.Stdout, "", false)
		}

		in := ui.CompletionInput{Notes: doneNotes}
		if err := ui.RunForm(ui.NewCompletionForm(d, &in), currentTheme()); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
			return err
		}
		return doneRun(ctx, os.Stdout, ui.CleanNotes(in.Notes), in.Favorite)
	},
}

func doneRun(ctx context.Context, w io.Writer, notes string, favorite bool) error {
	res, err := svc.Complete(ctx, notes)
	if err != nil {
		return fmt.Errorf("completing today's prompt: %w", err)
	}

	if favorite && !res.AlreadyCompleted && res.Daily.Completion != nil {
		c, err := svc.History.ToggleFavorite(ctx, res.Daily.Completion.ID)
		if err != nil {
			return fmt.Errorf("marking favorite: %w", err)
		}
		res.Daily.Completion = &c
	}

	if jsonOutput {
		return ui.FormatJSON(w, res)
	}
	ui.FormatCompleted(w, res)
	return nil
}

func init() {
	doneCmd.Flags().StringVar(&doneNotes, "notes", "", "notes about what you did")
	doneCmd.Flags().BoolVarP(&doneInteractive, "interactive", "i", false, "write notes in a form")
	rootCmd.AddCommand(doneCmd)
}
