package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/reminder"
	"github.com/chris-regnier/kindctl/internal/secret"
	"github.com/chris-regnier/kindctl/internal/telegram"
	"github.com/spf13/cobra"
)

var botRemind bool

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot in the foreground.

The bot answers /today, /streak and /history and offers Done, Skip and
Favorite buttons on the prompt card. When telegram.chat_id is set only that
chat is served.

The token is read from telegram.token, KINDCTL_TELEGRAM_TOKEN or
TELEGRAM_BOT_TOKEN (a .env file works), then from the OS keyring
('kindctl bot token set').

With --remind the reminder scheduler runs alongside the bot and reminders go
to telegram.chat_id.`,
	Example: `  kindctl bot token set 123456:ABC...
  kindctl settings set telegram.chat_id 987654321
  kindctl bot --remind`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationDaemon: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		token, err := secret.ResolveTelegramToken(appConfig.Telegram.Token)
		if err != nil {
			if errors.Is(err, secret.ErrNotFound) {
				return errors.New("no Telegram token configured; run 'kindctl bot token set <token>'")
			}
			return err
		}
		api, err := telegram.Dial(token, appConfig.Telegram.Debug)
		if err != nil {
			return err
		}
		bot := telegram.New(api, svc, appConfig.Telegram.ChatID)

		if botRemind {
			if appConfig.Telegram.ChatID == 0 {
				return errors.New("--remind needs telegram.chat_id")
			}
			runner := reminder.NewRunner(svc, reminder.Options{
				Attempts: appConfig.Reminder.MaxAttempts,
				Sound:    appConfig.Reminder.Sound,
			}, bot)
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
		}

		fmt.Fprintln(os.Stdout, "Bot running. Press Ctrl+C to stop.")
		return bot.Run(ctx)
	},
}

var botTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Telegram token in the OS keyring",
}

var botTokenSetCmd = &cobra.Command{
	Use:   "set <token|->",
	Short: "Store the bot token in the OS keyring",
	Long: `Store the bot token in the OS keyring.

Pass "-" to read the token from stdin and keep it out of your shell history.`,
	Args:        cobra.ExactArgs(1),
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "-" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading token: %w", err)
			}
			token = line
		}
		if err := secret.SetTelegramToken(strings.TrimSpace(token)); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Telegram token stored in the OS keyring.")
		return nil
	},
}

var botTokenDeleteCmd = &cobra.Command{
	Use:         "delete",
	Short:       "Remove the bot token from the OS keyring",
	Args:        cobra.NoArgs,
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secret.DeleteTelegramToken(); err != nil {
			if errors.Is(err, secret.ErrNotFound) {
				fmt.Fprintln(os.Stdout, "No token stored.")
				return nil
			}
			return err
		}
		fmt.Fprintln(os.Stdout, "Telegram token removed.")
		return nil
	},
}

func init() {
	botCmd.Flags().BoolVar(&botRemind, "remind", false, "also send scheduled reminders to telegram.chat_id")
	botTokenCmd.AddCommand(botTokenSetCmd, botTokenDeleteCmd)
	botCmd.AddCommand(botTokenCmd)
	rootCmd.AddCommand(botCmd)
}
