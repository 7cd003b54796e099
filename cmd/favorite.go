package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a completion's favorite flag",
	Example: `  kindctl favorite 12
  kindctl history --favorites`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return favoriteRun(cmd.Context(), os.Stdout, id)
	},
}

func favoriteRun(ctx context.Context, w io.Writer, id int64) error {
	c, err := svc.History.ToggleFavorite(ctx, id)
	if err != nil {
		return fmt.Errorf("completion %d: %w", id, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, c)
	}
	ui.FormatFavorite(w, c)
	return nil
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}
