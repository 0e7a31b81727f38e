package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// MaxUsernameLen максимальная длина username в байтах (длина email адреса)
	MaxUsernameLen = 254
	// MaxPasswordLen ограничение bcrypt: байты после 72-го игнорируются
	MaxPasswordLen = 72
)

var (
	// ErrEmptyUsername username не передан
	ErrEmptyUsername = errors.New("username cannot be empty")
	// ErrEmptyPassword пароль не передан
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ValidateUsername проверяет username нового пользователя.
// Двоеточие запрещено: legacy схема передает пару как "username:password"
// и не смогла бы однозначно разобрать такой логин.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if strings.TrimSpace(username) != username {
		return fmt.Errorf("username must not start or end with whitespace")
	}

	if strings.ContainsRune(username, ':') {
		return fmt.Errorf("username must not contain ':'")
	}

	for _, r := range username {
		if unicode.IsControl(r) {
			return fmt.Errorf("username must not contain control characters")
		}
	}

	return nil
}

// ValidatePassword проверяет пароль перед хешированием
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}
