package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/pipeline"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/secrets"
)

// credential describes one optional secret and where it may come from.
type credential struct {
	name   string
	env    string
	inline string
	file   string
}

func loadCredential(c credential) (string, error) {
	return secrets.LoadOptional(secrets.Source{
		Name:  c.name,
		Value: c.inline,
		File:  c.file,
		Env:   c.env,
	})
}

func providerCredentials(cfg AIConfig) (ai.Credentials, error) {
	var creds ai.Credentials
	targets := []struct {
		dst  *string
		cred credential
	}{
		{&creds.Groq, credential{name: "groq api key", env: "GROQ_API_KEY", inline: cfg.Groq.APIKey, file: cfg.Groq.APIKeyFile}},
		{&creds.OpenAI, credential{name: "openai api key", env: "OPENAI_API_KEY", inline: cfg.OpenAI.APIKey, file: cfg.OpenAI.APIKeyFile}},
		{&creds.Gemini, credential{name: "google api key", env: "GOOGLE_API_KEY", inline: cfg.Gemini.APIKey, file: cfg.Gemini.APIKeyFile}},
		{&creds.Anthropic, credential{name: "anthropic api key", env: "ANTHROPIC_API_KEY", inline: cfg.Anthropic.APIKey, file: cfg.Anthropic.APIKeyFile}},
	}

	for _, t := range targets {
		value, err := loadCredential(t.cred)
		if err != nil {
			return creds, err
		}
		*t.dst = value
	}

	return creds, nil
}

func jobsConfig(cfg JobsConfig) (jobs.Config, error) {
	jsearchKey, err := loadCredential(credential{name: "jsearch api key", env: "JSEARCH_API_KEY", inline: cfg.JSearch.APIKey, file: cfg.JSearch.APIKeyFile})
	if err != nil {
		return jobs.Config{}, err
	}
	appID, err := loadCredential(credential{name: "adzuna app id", env: "ADZUNA_APP_ID", inline: cfg.Adzuna.AppID, file: cfg.Adzuna.AppIDFile})
	if err != nil {
		return jobs.Config{}, err
	}
	appKey, err := loadCredential(credential{name: "adzuna app key", env: "ADZUNA_APP_KEY", inline: cfg.Adzuna.AppKey, file: cfg.Adzuna.AppKeyFile})
	if err != nil {
		return jobs.Config{}, err
	}

	return jobs.Config{
		JSearch:     jobs.JSearchConfig{APIKey: jsearchKey},
		Adzuna:      jobs.AdzunaConfig{AppID: appID, AppKey: appKey},
		Timeout:     cfg.Timeout,
		Threshold:   cfg.Threshold,
		MaxListings: cfg.MaxListings,
	}, nil
}

func newGateway(ctx context.Context, cfg AIConfig, logger *zap.Logger) (*ai.Gateway, error) {
	creds, err := providerCredentials(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading provider credentials: %w", err)
	}

	return ai.NewFromConfig(ctx, ai.Config{
		Credentials: creds,
		Models: map[ai.Provider]string{
			ai.ProviderGroq:      cfg.Groq.Model,
			ai.ProviderOpenAI:    cfg.OpenAI.Model,
			ai.ProviderGemini:    cfg.Gemini.Model,
			ai.ProviderAnthropic: cfg.Anthropic.Model,
		},
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		RequestsPerSecond: cfg.RequestsPerSecond,
		MaxLogLength:      cfg.MaxLogLength,
	}, logger)
}

func newPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Pipeline, *ai.Gateway, error) {
	gateway, err := newGateway(ctx, config.AI, logger)
	if err != nil {
		return nil, nil, err
	}

	jobsCfg, err := jobsConfig(config.Jobs)
	if err != nil {
		return nil, nil, fmt.Errorf("loading job source credentials: %w", err)
	}

	aggregator := jobs.NewAggregator(jobs.NewSources(jobsCfg, logger), jobsCfg.Threshold, jobsCfg.MaxListings, logger)

	return pipeline.New(
		profile.NewExtractor(gateway, logger),
		aggregator,
		matching.NewScorer(gateway, logger, config.AI.MaxLogLength),
		pipeline.Options{
			Concurrency: config.Matching.Concurrency,
			UseSamples:  config.Jobs.UseSamples,
			MinScore:    config.Matching.MinScore,
		},
		logger,
	), gateway, nil
}
