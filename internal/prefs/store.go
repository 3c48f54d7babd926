package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	KeyTheme    = "theme"
	KeyUsername = "username"

	ThemeLight = "light"
	ThemeDark  = "dark"

	maxUsernameRunes = 64
)

var (
	ErrUnknownKey   = errors.New("unknown preference key")
	ErrInvalidValue = errors.New("invalid preference value")
)

// Backend persists preferences for many visitors.
type Backend interface {
	Get(ctx context.Context, visitor, key string) (string, bool, error)
	Set(ctx context.Context, visitor, key, value string) error
	Close() error
}

// Store is the preference view of a single visitor.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type scoped struct {
	backend Backend
	visitor string
}

// Scope binds a backend to one visitor.
func Scope(b Backend, visitor string) Store {
	return scoped{backend: b, visitor: visitor}
}

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	if !Known(key) {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return s.backend.Get(ctx, s.visitor, key)
}

func (s scoped) Set(ctx context.Context, key, value string) error {
	v, err := Normalize(key, value)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.visitor, key, v)
}

// Known reports whether key is a supported preference.
func Known(key string) bool {
	return key == KeyTheme || key == KeyUsername
}

// Normalize validates value for key and returns the form to store.
func Normalize(key, value string) (string, error) {
	switch key {
	case KeyTheme:
		if value != ThemeLight && value != ThemeDark {
			return "", fmt.Errorf("%w: theme must be %q or %q", ErrInvalidValue, ThemeLight, ThemeDark)
		}
		return value, nil
	case KeyUsername:
		v := strings.TrimSpace(value)
		if v == "" {
			return "", fmt.Errorf("%w: username is empty", ErrInvalidValue)
		}
		if utf8.RuneCountInString(v) > maxUsernameRunes {
			return "", fmt.Errorf("%w: username longer than %d characters", ErrInvalidValue, maxUsernameRunes)
		}
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Open builds the backend named by kind.
func Open(kind, file, redisURL string) (Backend, error) {
	switch kind {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFileBackend(file)
	case "redis":
		return NewRedisBackend(redisURL)
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", kind)
	}
}
