package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/editor"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var noteSet string

var noteCmd = &cobra.Command{
	Use:   "note <id>",
	Short: "Edit the notes of a completion",
	Long: `Edit the notes of a completion in your editor, or replace them with --set.

The editor is resolved from the config file, then $EDITOR, then $VISUAL,
falling back to vi.`,
	Example: `  kindctl note 12
  kindctl note 12 --set "she smiled back"
  kindctl note 12 --set ""`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if cmd.Flags().Changed("set") {
			return noteSetRun(ctx, os.Stdout, id, ui.CleanNotes(noteSet))
		}
		return noteEditRun(ctx, os.Stdout, id)
	},
}

func noteSetRun(ctx context.Context, w io.Writer, id int64, notes string) error {
	c, err := svc.History.UpdateNotes(ctx, id, notes)
	if err != nil {
		return fmt.Errorf("completion %d: %w", id, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, c)
	}
	ui.FormatNotesUpdated(w, c)
	return nil
}

func noteEditRun(ctx context.Context, w io.Writer, id int64) error {
	it, err := svc.History.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("completion %d: %w", id, err)
	}

	buf := editor.Template(it.Prompt.Text, it.Completion.CompletedDate, it.Completion.Notes)
	notes, changed, err := editor.Edit(editor.ResolveEditor(appConfig.Editor), buf)
	if err != nil {
		return &exitError{code: 3, err: err}
	}
	if !changed {
		if jsonOutput {
			return ui.FormatJSON(w, it.Completion)
		}
		fmt.Fprintf(w, "No changes to completion %d.\n", id)
		return nil
	}
	return noteSetRun(ctx, w, id, notes)
}

func init() {
	noteCmd.Flags().StringVar(&noteSet, "set", "", "replace the notes without opening an editor")
	rootCmd.AddCommand(noteCmd)
}
