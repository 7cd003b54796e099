package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ThemeConfig selects a color preset and optional per-color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	DoneIcon    string `mapstructure:"done_icon"`
	PendingIcon string `mapstructure:"pending_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
}

// ReminderConfig controls when reminders fire.
type ReminderConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	At            string `mapstructure:"at"`
	IntervalHours int    `mapstructure:"interval_hours"`
	Timezone      string `mapstructure:"timezone"`
	Sound         bool   `mapstructure:"sound"`
	MaxAttempts   int    `mapstructure:"max_attempts"`
}

// TelegramConfig configures the Telegram bot and notifier.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
	Debug  bool   `mapstructure:"debug"`
}

// Config holds the application configuration.
type Config struct {
	Storage       string         `mapstructure:"storage"`
	DataDir       string         `mapstructure:"data_dir"`
	Editor        string         `mapstructure:"editor"`
	RetentionDays int            `mapstructure:"retention_days"`
	Debug         bool           `mapstructure:"debug"`
	Theme         ThemeConfig    `mapstructure:"theme"`
	Shell         ShellConfig    `mapstructure:"shell"`
	Reminder      ReminderConfig `mapstructure:"reminder"`
	Telegram      TelegramConfig `mapstructure:"telegram"`
}

// DefaultDataDir returns the default data directory (~/.kindctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".kindctl")
	}
	return filepath.Join(home, ".kindctl")
}

// Path returns the config file Load reads and Set writes: configPath when
// given, else $XDG_CONFIG_HOME/kindctl/config.toml if that directory
// exists, else ~/.kindctl/config.toml.
func Path(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir := filepath.Join(xdg, "kindctl")
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}
	return filepath.Join(DefaultDataDir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage", "sqlite")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("retention_days", 7)
	v.SetDefault("debug", false)
	v.SetDefault("theme.preset", "light")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.done_icon", "💛")
	v.SetDefault("shell.pending_icon", "🤍")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("reminder.enabled", true)
	v.SetDefault("reminder.at", "09:00")
	v.SetDefault("reminder.interval_hours", 24)
	v.SetDefault("reminder.timezone", "")
	v.SetDefault("reminder.sound", true)
	v.SetDefault("reminder.max_attempts", 3)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.debug", false)
}

// loadDotEnv loads .env from the working directory and the data directory.
// Variables already set in the environment win.
func loadDotEnv() error {
	for _, path := range []string{".env", filepath.Join(DefaultDataDir(), ".env")} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "kindctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: KINDCTL_STORAGE, KINDCTL_REMINDER_AT, etc.
	v.SetEnvPrefix("KINDCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("telegram.token", "KINDCTL_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, err
	}

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicit path that does not exist yet is fine; settings
			// set will create it.
			if configPath != "" && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
