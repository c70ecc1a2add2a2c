// Package ai hosts the completion gateway: provider selection, the shared
// error taxonomy and helpers for reading JSON out of model completions.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider identifies a completion backend.
type Provider string

const (
	ProviderGroq      Provider = "groq"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// Priority is the fixed selection order. The first provider with a credential wins.
var Priority = []Provider{ProviderGroq, ProviderOpenAI, ProviderGemini, ProviderAnthropic}

// SystemMessage is sent as the system instruction with every prompt.
const SystemMessage = "You are a helpful AI assistant that provides structured, JSON-formatted responses when requested."

// Temperature is shared by all providers.
const Temperature = 0.3

var (
	// ErrProviderUnavailable is returned when no provider has a credential configured.
	ErrProviderUnavailable = errors.New("no completion provider configured")
	// ErrMalformedCompletion marks a completion that could not be parsed into the expected structure.
	ErrMalformedCompletion = errors.New("malformed completion")
	// ErrEmptyCompletion is returned by provider clients when the response has no text.
	ErrEmptyCompletion = errors.New("provider returned empty completion")
)

// ProviderError wraps a transport failure or a non-2xx response from a provider.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Completer sends a prompt to a model and returns the raw completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatClient is implemented by every provider client.
type ChatClient interface {
	Chat(ctx context.Context, system, prompt string) (string, error)
	Model() string
}
