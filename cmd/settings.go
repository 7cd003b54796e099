package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chris-regnier/kindctl/internal/config"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

var noStorage = map[string]string{annotationNoStorage: "true"}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Long: `Show preferences stored in the config file.

Use 'settings set <key> <value>' to change one and 'settings reset' to
restore every preference to its default.`,
	Example: `  kindctl settings
  kindctl settings set reminder.at 08:30
  kindctl settings set theme.preset calm-ocean
  kindctl settings reset`,
	Args:        cobra.NoArgs,
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsShowRun(os.Stdout, appConfig)
	},
}

// settingValues returns the current value of every settable key.
func settingValues(cfg *config.Config) map[string]string {
	return map[string]string{
		"storage":                 cfg.Storage,
		"editor":                  cfg.Editor,
		"retention_days":          strconv.Itoa(cfg.RetentionDays),
		"theme.preset":            cfg.Theme.Preset,
		"theme.markdown_style":    cfg.Theme.MarkdownStyle,
		"reminder.enabled":        strconv.FormatBool(cfg.Reminder.Enabled),
		"reminder.at":             cfg.Reminder.At,
		"reminder.interval_hours": strconv.Itoa(cfg.Reminder.IntervalHours),
		"reminder.timezone":       cfg.Reminder.Timezone,
		"reminder.sound":          strconv.FormatBool(cfg.Reminder.Sound),
		"telegram.chat_id":        strconv.FormatInt(cfg.Telegram.ChatID, 10),
		"shell.cache_ttl":         cfg.Shell.CacheTTL,
	}
}

func settingsShowRun(w io.Writer, cfg *config.Config) error {
	values := settingValues(cfg)
	if jsonOutput {
		return ui.FormatJSON(w, values)
	}
	fmt.Fprintf(w, "Config file: %s\n\n", config.Path(cfgFile))
	for _, key := range config.Keys() {
		v := values[key]
		if v == "" {
			v = "(unset)"
		}
		fmt.Fprintf(w, "  %-24s %-14s %s\n", key, v, config.Help(key))
	}
	return nil
}

var settingsSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Change one preference",
	Args:        cobra.ExactArgs(2),
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsSetRun(os.Stdout, cfgFile, args[0], args[1])
	},
}

func settingsSetRun(w io.Writer, path, key, value string) error {
	if key == "theme.preset" && !ui.HasPreset(value) {
		return fmt.Errorf("unknown theme preset %q (available: %s)", value, strings.Join(ui.Presets(), ", "))
	}
	if err := config.Set(path, key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(config.Keys(), ", "))
		}
		return err
	}
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

var settingsResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Restore default preferences",
	Args:        cobra.NoArgs,
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Reset(cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Preferences restored to defaults.")
		return nil
	},
}

var settingsThemesCmd = &cobra.Command{
	Use:         "themes",
	Short:       "List theme presets",
	Args:        cobra.NoArgs,
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := appConfig.Theme.Preset
		for _, name := range ui.Presets() {
			marker := " "
			if name == current {
				marker = "*"
			}
			t := ui.ResolveTheme(config.ThemeConfig{Preset: name})
			fmt.Fprintf(os.Stdout, "%s %s\n", marker, t.AccentStyle().Render(name))
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd, settingsResetCmd, settingsThemesCmd)
	rootCmd.AddCommand(settingsCmd)
}
