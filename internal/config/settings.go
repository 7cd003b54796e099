package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
)

type setting struct {
	kind     kind
	validate func(string) error
	help     string
}

// settings are the preference keys users may change with Set.
var settings = map[string]setting{
	"storage":                 {kindString, oneOf("sqlite", "diskv"), "storage backend (sqlite|diskv)"},
	"editor":                  {kindString, nil, "editor for notes"},
	"retention_days":          {kindInt, positive, "days to keep skipped prompts"},
	"theme.preset":            {kindString, nil, "color theme preset"},
	"theme.markdown_style":    {kindString, nil, "glamour style for prompt cards"},
	"reminder.enabled":        {kindBool, nil, "send daily reminders"},
	"reminder.at":             {kindString, validateClock, "reminder time (HH:MM)"},
	"reminder.interval_hours": {kindInt, oneOf("24", "6", "3", "1"), "hours between reminders (24|6|3|1)"},
	"reminder.timezone":       {kindString, validateTimezone, "IANA time zone for reminders"},
	"reminder.sound":          {kindBool, nil, "play a sound with notifications"},
	"telegram.chat_id":        {kindInt, nil, "Telegram chat that receives reminders"},
	"shell.cache_ttl":         {kindString, validateDuration, "shell status cache lifetime"},
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Help returns a one-line description of a settable key.
func Help(key string) string {
	return settings[key].help
}

// ErrUnknownKey is returned by Set for keys not in Keys().
var ErrUnknownKey = errors.New("unknown setting")

// Set validates value for key and writes it to the config file at
// Path(configPath), creating the file when needed.
func Set(configPath, key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if s.validate != nil {
		if err := s.validate(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}

	var typed any = value
	switch s.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typed = b
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected a number", key)
		}
		typed = n
	}

	return update(configPath, func(v *viper.Viper) {
		v.Set(key, typed)
	})
}

// Reset restores every settable key to its default, keeping other keys
// (data_dir, telegram.token) as they are.
func Reset(configPath string) error {
	defaults := viper.New()
	setDefaults(defaults)
	return update(configPath, func(v *viper.Viper) {
		for _, key := range Keys() {
			v.Set(key, defaults.Get(key))
		}
	})
}

func update(configPath string, apply func(*viper.Viper)) error {
	path := Path(configPath)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	apply(v)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

func oneOf(allowed ...string) func(string) error {
	return func(s string) error {
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}

func positive(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func validateClock(s string) error {
	_, _, err := ParseClock(s)
	return err
}

func validateTimezone(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.LoadLocation(s)
	return err
}

func validateDuration(s string) error {
	_, err := time.ParseDuration(s)
	return err
}

// ParseClock parses "HH:MM" in 24-hour time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Location returns the reminder time zone, or time.Local when unset.
func (r ReminderConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(r.Timezone)
}
