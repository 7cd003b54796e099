package cmd

import (
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/shell"
	"github.com/spf13/cobra"
)

// invalidateCachePostRun is a PostRunE hook that drops the shell status
// cache after commands that change completions or progress.
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	if appConfig == nil {
		return nil
	}
	if err := shell.InvalidateCache(appConfig.DataDir); err != nil {
		logger.Warn("could not invalidate status cache", "err", err)
	}
	return nil
}
