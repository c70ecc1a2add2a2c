package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/resume-matcher/internal/ai/claude"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/ai/openai"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxLogLength = 200
	retryBaseDelay      = time.Second
)

var waitFor = utils.WaitFor

// DefaultModels maps every provider to the model used when none is configured.
var DefaultModels = map[Provider]string{
	ProviderGroq:      "llama-3.3-70b-versatile",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// Credentials holds one API key per provider. Empty means not configured.
type Credentials struct {
	Groq      string
	OpenAI    string
	Gemini    string
	Anthropic string
}

// For returns the credential of the given provider.
func (c Credentials) For(p Provider) string {
	switch p {
	case ProviderGroq:
		return strings.TrimSpace(c.Groq)
	case ProviderOpenAI:
		return strings.TrimSpace(c.OpenAI)
	case ProviderGemini:
		return strings.TrimSpace(c.Gemini)
	case ProviderAnthropic:
		return strings.TrimSpace(c.Anthropic)
	default:
		return ""
	}
}

// Select walks Priority and returns the first provider with a credential.
func Select(c Credentials) (Provider, bool) {
	for _, p := range Priority {
		if c.For(p) != "" {
			return p, true
		}
	}
	return "", false
}

// Config is built once at process start and handed to NewFromConfig.
type Config struct {
	Credentials       Credentials
	Models            map[Provider]string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	MaxLogLength      int
}

// Options tune a Gateway independently of the provider behind it.
type Options struct {
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	MaxLogLength      int
}

// Gateway is the single entry point for completions. The provider is fixed at
// construction; failures are surfaced, never retried on another provider.
type Gateway struct {
	provider   Provider
	client     ChatClient
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// NewFromConfig selects the provider from cfg.Credentials and builds its client.
// Without any credential the returned gateway fails every call with ErrProviderUnavailable.
func NewFromConfig(ctx context.Context, cfg Config, log *zap.Logger) (*Gateway, error) {
	opts := Options{
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		RequestsPerSecond: cfg.RequestsPerSecond,
		MaxLogLength:      cfg.MaxLogLength,
	}

	provider, ok := Select(cfg.Credentials)
	if !ok {
		return New("", nil, opts, log), nil
	}

	model := strings.TrimSpace(cfg.Models[provider])
	if model == "" {
		model = DefaultModels[provider]
	}

	client, err := newClient(ctx, provider, cfg.Credentials.For(provider), model)
	if err != nil {
		return nil, fmt.Errorf("building %s client: %w", provider, err)
	}

	return New(provider, client, opts, log), nil
}

func newClient(ctx context.Context, p Provider, apiKey, model string) (ChatClient, error) {
	switch p {
	case ProviderGroq:
		return openai.New(apiKey, openai.GroqBaseURL, model, Temperature), nil
	case ProviderOpenAI:
		return openai.New(apiKey, openai.DefaultBaseURL, model, Temperature), nil
	case ProviderGemini:
		return gemini.NewGenerator(ctx, apiKey, model, Temperature)
	case ProviderAnthropic:
		return claude.New(apiKey, model, Temperature), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", p)
	}
}

// New wraps an already built client. A nil client yields an unavailable gateway.
func New(provider Provider, client ChatClient, opts Options, log *zap.Logger) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	g := &Gateway{
		provider:   provider,
		client:     client,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		maxLogLen:  opts.MaxLogLength,
	}

	if opts.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	g.logger = logger.WithAI(log, string(provider), g.Model())

	return g
}

// Provider returns the selected provider, empty when none is configured.
func (g *Gateway) Provider() Provider {
	if g == nil {
		return ""
	}
	return g.provider
}

// Model returns the model identifier of the selected provider.
func (g *Gateway) Model() string {
	if g == nil || g.client == nil {
		return ""
	}
	return g.client.Model()
}

// Available reports whether a provider was selected.
func (g *Gateway) Available() bool {
	return g != nil && g.client != nil
}

// Complete sends prompt with the shared system message and returns the raw text.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	if !g.Available() {
		return "", ErrProviderUnavailable
	}

	g.logger.Debug("completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			g.logger.Debug("retrying completion",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := waitFor(ctx, delay); err != nil {
				return "", g.wrap(err)
			}
		}

		out, err := g.call(ctx, prompt)
		if err == nil {
			g.logger.Debug("completion response",
				zap.Int("response_length", utf8.RuneCountInString(out)),
				zap.String("response_preview", utils.TruncateForLog(out, g.maxLogLen)),
			)
			return out, nil
		}

		lastErr = err
		if ctx.Err() != nil || !isTemporary(err) {
			break
		}
	}

	return "", lastErr
}

func (g *Gateway) call(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", g.wrap(err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.client.Chat(callCtx, SystemMessage, prompt)
	if err != nil {
		return "", g.wrap(err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", g.wrap(ErrEmptyCompletion)
	}

	return out, nil
}

type statusCoder interface {
	HTTPStatus() int
}

func (g *Gateway) wrap(err error) error {
	perr := &ProviderError{Provider: g.provider, Err: err}
	var sc statusCoder
	if errors.As(err, &sc) {
		perr.StatusCode = sc.HTTPStatus()
	}
	return perr
}

// isTemporary reports whether the same provider may be asked again.
func isTemporary(err error) bool {
	var perr *ProviderError
	if errors.As(err, &perr) && perr.StatusCode != 0 {
		switch perr.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
