package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a completion",
	Long: `Permanently delete a completion. Requires confirmation unless --force is used.

The stored streak is not rewritten; run 'kindctl streak --verify' to compare
it with the remaining history.`,
	Example: `  kindctl delete 12
  kindctl delete 12 --force`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		it, err := svc.History.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("completion %d: %w", id, err)
		}

		if !forceDelete {
			fmt.Fprintf(os.Stdout, "Completion: %d (%s)\n", id, day.Display(it.Completion.CompletedDate))
			fmt.Fprintf(os.Stdout, "Prompt: %s\n\n", ui.Preview(it.Prompt.Text, 60))

			confirmed, err := ui.Confirm("Delete this completion? This cannot be undone.", currentTheme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		return deleteRun(ctx, os.Stdout, id)
	},
}

func deleteRun(ctx context.Context, w io.Writer, id int64) error {
	if err := svc.History.Delete(ctx, id); err != nil {
		return fmt.Errorf("completion %d: %w", id, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: id, Deleted: true})
	}
	ui.FormatCompletionDeleted(w, id)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
