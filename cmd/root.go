package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-regnier/kindctl/internal/config"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/storage/diskv"
	"github.com/chris-regnier/kindctl/internal/storage/sqlite"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	debugFlag      bool
	appConfig      *config.Config
	store          storage.Storage
	svc            *kindness.Service
)

// Command annotations read by the root pre-run hook.
const (
	// annotationNoStorage marks commands that never touch the store.
	annotationNoStorage = "kindctl/no-storage"
	// annotationDaemon marks long-running commands; their logs go to stderr.
	annotationDaemon = "kindctl/daemon"
)

var rootCmd = &cobra.Command{
	Use:   "kindctl",
	Short: "One small act of kindness a day",
	Long: `kindctl hands you one kindness prompt per day, tracks your streak of
completed days and keeps a history of what you did.

Run without a subcommand to show today's prompt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if debugFlag {
			appConfig.Debug = true
		}

		if err := logger.Init(logger.Config{
			Debug:   appConfig.Debug,
			DataDir: appConfig.DataDir,
			Stderr:  cmd.Annotations[annotationDaemon] == "true",
		}); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		if cmd.Annotations[annotationNoStorage] == "true" {
			return nil
		}

		store, err = openStore(appConfig.Storage, appConfig.DataDir)
		if err != nil {
			return err
		}
		svc = kindness.New(store, kindness.Options{RetentionDays: appConfig.RetentionDays})
		logger.Debug("storage ready", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return todayRun(cmd.Context(), os.Stdout, false)
	},
}

func openStore(backend, dataDir string) (storage.Storage, error) {
	switch backend {
	case "sqlite":
		s, err := sqlite.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	case "diskv":
		s, err := diskv.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing diskv storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// exitError carries a specific process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit code: 2 for storage failures,
// 1 for everything else unless the error says otherwise.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, storage.ErrStorage) {
		return 2
	}
	return 1
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing storage", "err", cerr)
		}
	}
	if err == nil {
		return 0
	}
	logger.Error("command failed", "cmd", os.Args, "err", err)
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitCode(err)
}

func currentTheme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (sqlite|diskv)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging to stderr")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
