package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/shell"
	"github.com/spf13/cobra"
)

var (
	statusEnv     bool
	statusRefresh bool
	statusFormat  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show kindness status for your shell prompt",
	Long: `Show whether today's kindness is done and the active streak, for shell
prompt integration.

Reads from cache when fresh, queries storage when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output. Fields: .TodayIcon,
.StreakIcon, .Done, .Streak, .BestStreak, .NextMilestone, .Backend.`,
	Example: `  kindctl status
  kindctl status --env
  kindctl status --refresh
  kindctl status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(cmd.Context(), os.Stdout, time.Now())
	},
}

func statusRun(ctx context.Context, w io.Writer, now time.Time) error {
	ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	cache := shell.ReadCache(appConfig.DataDir)
	if statusRefresh || !cache.IsFresh(ttl, svc.TodayKey(), now) {
		sum, err := svc.Summary(ctx)
		if err != nil {
			return fmt.Errorf("computing status: %w", err)
		}
		cache = shell.FromSummary(sum, appConfig.Storage, now)
		if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
			// A stale prompt is better than a broken one.
			logger.Warn("could not write status cache", "err", err)
		}
	}

	st := shell.NewStatus(cache, shell.Icons{
		Done:    appConfig.Shell.DoneIcon,
		Pending: appConfig.Shell.PendingIcon,
		Streak:  appConfig.Shell.StreakIcon,
	})

	switch {
	case statusEnv:
		return shell.WriteEnv(w, st)
	case statusFormat != "":
		return shell.WriteTemplate(w, st, statusFormat)
	default:
		return shell.WriteDefault(w, st)
	}
}

func init() {
	statusCmd.Flags().BoolVar(&statusEnv, "env", false, "output shell environment variable assignments")
	statusCmd.Flags().BoolVar(&statusRefresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
