package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var todayIDOnly bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's kindness prompt",
	Long: `Show today's kindness prompt.

The prompt is picked once per day and stays the same until you complete or
skip it. The default catalog is installed on first use.`,
	Example: `  kindctl today
  kindctl today --id-only
  kindctl today --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return todayRun(cmd.Context(), os.Stdout, todayIDOnly)
	},
}

func todayRun(ctx context.Context, w io.Writer, idOnly bool) error {
	d, err := svc.Today(ctx)
	if err != nil {
		return fmt.Errorf("getting today's prompt: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, d)
	}
	if idOnly {
		fmt.Fprintln(w, d.Prompt.ID)
		return nil
	}

	ui.FormatDaily(w, d, currentTheme().MarkdownStyle)
	return nil
}

func init() {
	todayCmd.Flags().BoolVar(&todayIDOnly, "id-only", false, "print just the prompt ID")
	rootCmd.AddCommand(todayCmd)
}
