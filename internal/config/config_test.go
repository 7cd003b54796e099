package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage 'sqlite', got %q", cfg.Storage)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("expected retention 7, got %d", cfg.RetentionDays)
	}
	if cfg.Theme.Preset != "light" {
		t.Errorf("expected preset 'light', got %q", cfg.Theme.Preset)
	}
	if cfg.Reminder.At != "09:00" || cfg.Reminder.IntervalHours != 24 || !cfg.Reminder.Enabled {
		t.Errorf("unexpected reminder defaults: %+v", cfg.Reminder)
	}
	if !strings.HasSuffix(cfg.DataDir, ".kindctl") {
		t.Errorf("unexpected data dir %q", cfg.DataDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
storage = "diskv"

[theme]
preset = "calm-ocean"
primary = "#FF0000"

[reminder]
at = "20:30"
interval_hours = 6
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != "diskv" {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.Theme.Preset != "calm-ocean" || cfg.Theme.Primary != "#FF0000" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Reminder.At != "20:30" || cfg.Reminder.IntervalHours != 6 {
		t.Errorf("reminder = %+v", cfg.Reminder)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("KINDCTL_STORAGE", "diskv")
	t.Setenv("KINDCTL_REMINDER_AT", "07:15")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != "diskv" {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.Reminder.At != "07:15" {
		t.Errorf("reminder.at = %q", cfg.Reminder.At)
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("telegram.token = %q", cfg.Telegram.Token)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KINDCTL_EDITOR", "")
	os.Unsetenv("KINDCTL_EDITOR")
	if err := os.WriteFile(".env", []byte("KINDCTL_EDITOR=nano\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor != "nano" {
		t.Errorf("editor = %q, want nano from .env", cfg.Editor)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing explicit file should not fail: %v", err)
	}
	if cfg.Storage != "sqlite" {
		t.Errorf("storage = %q", cfg.Storage)
	}
}

func TestSetWritesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Set(path, "reminder.at", "21:45"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(path, "reminder.enabled", "false"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(path, "reminder.interval_hours", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reminder.At != "21:45" || cfg.Reminder.Enabled || cfg.Reminder.IntervalHours != 3 {
		t.Errorf("reminder = %+v", cfg.Reminder)
	}
}

func TestSetValidation(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		key, value string
	}{
		{"reminder.at", "9am"},
		{"reminder.interval_hours", "5"},
		{"reminder.enabled", "maybe"},
		{"storage", "markdown"},
		{"retention_days", "0"},
		{"reminder.timezone", "Mars/Olympus"},
	}
	for _, tt := range tests {
		if err := Set(path, tt.key, tt.value); err == nil {
			t.Errorf("Set(%s, %s) expected error", tt.key, tt.value)
		}
	}

	if err := Set(path, "no.such.key", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestResetKeepsToken(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[telegram]\ntoken = \"keep-me\"\n\n[reminder]\nat = \"22:00\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Reset(path); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reminder.At != "09:00" {
		t.Errorf("reminder.at = %q, want default", cfg.Reminder.At)
	}
	if cfg.Telegram.Token != "keep-me" {
		t.Errorf("token = %q, want preserved", cfg.Telegram.Token)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:05")
	if err != nil || h != 9 || m != 5 {
		t.Errorf("ParseClock = %d, %d, %v", h, m, err)
	}
	if _, _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
	if Help("reminder.at") == "" {
		t.Error("missing help for reminder.at")
	}
}
