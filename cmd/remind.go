package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/reminder"
	"github.com/chris-regnier/kindctl/internal/secret"
	"github.com/chris-regnier/kindctl/internal/telegram"
	"github.com/spf13/cobra"
)

var remindOnce bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminders while today's kindness is open",
	Long: `Run the reminder scheduler in the foreground.

At the configured time (reminder.at, every reminder.interval_hours) kindctl
checks today's prompt and, if it is not completed yet, prints a reminder and
sends it to Telegram when telegram.chat_id and a bot token are configured.

--once performs a single check immediately and exits.`,
	Example: `  kindctl remind
  kindctl remind --once
  kindctl settings set reminder.interval_hours 6`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationDaemon: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runner := reminder.NewRunner(svc, reminder.Options{
			Attempts: appConfig.Reminder.MaxAttempts,
			Sound:    appConfig.Reminder.Sound,
		}, reminderNotifiers(os.Stdout)...)

		if remindOnce {
			return remindOnceRun(ctx, os.Stdout, runner)
		}
		if !appConfig.Reminder.Enabled {
			return errors.New("reminders are disabled; run 'kindctl settings set reminder.enabled true'")
		}
		return runScheduler(ctx, os.Stdout, runner)
	},
}

// reminderNotifiers returns the terminal notifier plus Telegram when it is
// configured. A Telegram setup problem is logged and leaves it out.
func reminderNotifiers(w io.Writer) []reminder.Notifier {
	ns := []reminder.Notifier{reminder.WriterNotifier{W: w}}
	if appConfig.Telegram.ChatID == 0 {
		return ns
	}
	token, err := secret.ResolveTelegramToken(appConfig.Telegram.Token)
	if err != nil {
		logger.Warn("telegram reminders disabled", "err", err)
		return ns
	}
	api, err := telegram.Dial(token, appConfig.Telegram.Debug)
	if err != nil {
		logger.Warn("telegram reminders disabled", "err", err)
		return ns
	}
	return append(ns, telegram.New(api, svc, appConfig.Telegram.ChatID))
}

func remindOnceRun(ctx context.Context, w io.Writer, runner *reminder.Runner) error {
	sent, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("sending reminder: %w", err)
	}
	if !sent {
		fmt.Fprintln(w, "Today's kindness is already done; no reminder sent.")
	}
	return nil
}

// runScheduler runs the reminder job until ctx is cancelled.
func runScheduler(ctx context.Context, w io.Writer, runner *reminder.Runner) error {
	s, err := reminder.Schedule(appConfig.Reminder, runner)
	if err != nil {
		return err
	}
	s.Start()
	defer func() {
		if err := s.Shutdown(); err != nil {
			logger.Warn("scheduler shutdown", "err", err)
		}
	}()

	if next, err := reminder.NextRun(s); err == nil {
		fmt.Fprintf(w, "Next reminder at %s. Press Ctrl+C to stop.\n", next.Format(time.DateTime))
	}
	<-ctx.Done()
	logger.Info("reminder scheduler stopping")
	return nil
}

func init() {
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "check once and exit")
	rootCmd.AddCommand(remindCmd)
}
