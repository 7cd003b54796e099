package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	historyFavorites bool
	historyLimit     int
	historyFollow    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed prompts",
	Long: `List completed prompts, newest first.

In a terminal this opens an interactive browser where you can read notes,
favorite and delete completions. With --follow the browser updates as other
kindctl processes (the bot, the reminder daemon) record completions.`,
	Example: `  kindctl history
  kindctl history --favorites
  kindctl history --limit 10 --json
  kindctl history --follow`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := history.Options{Limit: historyLimit}
		if historyFavorites {
			opts.Filter = history.Favorites
		}
		ctx := cmd.Context()

		if jsonOutput || !isTerminal(os.Stdout) {
			return historyRun(ctx, os.Stdout, opts)
		}

		var updates <-chan history.Snapshot
		if historyFollow {
			ch, err := svc.History.Watch(ctx, opts, history.DefaultDebounce)
			if err != nil {
				return fmt.Errorf("watching history: %w", err)
			}
			updates = ch
		}
		defer invalidateCachePostRun(cmd, args)
		return ui.RunHistoryBrowser(ctx, svc.History, opts, updates, svc.TodayKey(), currentTheme())
	},
}

func historyRun(ctx context.Context, w io.Writer, opts history.Options) error {
	items, err := svc.History.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, items)
	}
	ui.FormatHistory(w, items, svc.TodayKey())
	return nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return historyShowRun(cmd.Context(), os.Stdout, id)
	},
}

func historyShowRun(ctx context.Context, w io.Writer, id int64) error {
	it, err := svc.History.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("completion %d: %w", id, err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, it)
	}
	ui.FormatCompletion(w, it)
	return nil
}

// parseID parses a completion ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid completion ID %q", s)
	}
	return id, nil
}

func init() {
	historyCmd.Flags().BoolVar(&historyFavorites, "favorites", false, "only favorite completions")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum number of completions (0 = all)")
	historyCmd.Flags().BoolVar(&historyFollow, "follow", false, "keep the browser in sync with new completions")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
