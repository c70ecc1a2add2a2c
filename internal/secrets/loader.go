package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned by Load when no source yields a value.
var ErrNotConfigured = errors.New("not configured")

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Env names an environment variable consulted when neither File nor Value
	// is set. Its "_FILE" companion is consulted first.
	Env string
}

// Load returns the resolved secret value from the provided source. The lookup
// order is File, Value, Env+"_FILE", Env. The returned secret is always
// trimmed. An error is returned when no source contains a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	value := strings.TrimSpace(src.Value)

	if file == "" && value == "" && src.Env != "" {
		file = strings.TrimSpace(os.Getenv(src.Env + "_FILE"))
		if file == "" {
			value = strings.TrimSpace(os.Getenv(src.Env))
		}
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = strings.TrimSpace(string(data))
		if value == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
	}

	if value == "" {
		return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
	}

	return value, nil
}

// LoadOptional is Load for secrets that may legitimately be absent: a missing
// value yields "" without error, while an unreadable or empty file still fails.
func LoadOptional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}
