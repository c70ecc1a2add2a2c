// Package claude adapts the Anthropic Messages API to the gateway's chat contract.
package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2048
)

// StatusError carries the HTTP status of a failed Messages API call.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// HTTPStatus exposes the response status to the gateway.
func (e *StatusError) HTTPStatus() int {
	return e.Code
}

type Client struct {
	client      anthropic.Client
	model       string
	temperature float64
}

// New builds a client. SDK-level retries are disabled; the gateway owns retry policy.
func New(apiKey, model string, temperature float64, opts ...option.RequestOption) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(0),
	}, opts...)

	return &Client{
		client:      anthropic.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Chat sends the prompt as a single user turn with system as the system block.
func (c *Client) Chat(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   defaultMaxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if system = strings.TrimSpace(system); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Code: apiErr.StatusCode, Err: fmt.Errorf("create message: %w", err)}
		}
		return "", fmt.Errorf("create message: %w", err)
	}

	var builder strings.Builder
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		builder.WriteString(block.AsText().Text)
	}

	return strings.TrimSpace(builder.String()), nil
}
