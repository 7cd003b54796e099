// Package secret keeps credentials in the OS keyring.
package secret

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service         = "kindctl"
	telegramAccount = "telegram-bot-token"
)

var (
	// ErrNotFound is returned when no credential is stored.
	ErrNotFound = errors.New("credential not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be used.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// TelegramToken returns the stored Telegram bot token.
func TelegramToken() (string, error) {
	token, err := keyring.Get(service, telegramAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return token, nil
}

// SetTelegramToken stores the Telegram bot token.
func SetTelegramToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(service, telegramAccount, token); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteTelegramToken removes the stored token.
func DeleteTelegramToken() error {
	if err := keyring.Delete(service, telegramAccount); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ResolveTelegramToken prefers an explicit token (config or environment)
// and falls back to the keyring.
func ResolveTelegramToken(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return TelegramToken()
}
