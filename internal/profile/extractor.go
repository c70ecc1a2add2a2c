package profile

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
)

// MaxInputRunes bounds the part of the resume sent to the model.
const MaxInputRunes = 4000

//go:embed prompt.md
var promptTemplate string

type Extractor struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewExtractor(completer ai.Completer, log *zap.Logger) *Extractor {
	return &Extractor{completer: completer, logger: logger.OrNop(log)}
}

// Extract never fails. Any gateway or parse failure yields Fallback marked as degraded.
func (e *Extractor) Extract(ctx context.Context, resumeText string) ai.Result[Profile] {
	prompt := buildPrompt(utils.TruncateRunes(resumeText, MaxInputRunes))

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("profile extraction failed, using fallback profile", zap.Error(err))
		return ai.Degraded(Fallback(), err)
	}

	p, err := parseResponse(raw)
	if err != nil {
		e.logger.Warn("unreadable profile completion, using fallback profile",
			zap.Error(err),
			zap.Int("response_length", utf8.RuneCountInString(raw)),
		)
		return ai.Degraded(Fallback(), err)
	}

	e.logger.Debug("profile extracted",
		zap.Int("skills", len(p.Skills)),
		zap.Int("tech_stack", len(p.TechStack)),
		zap.String("experience_level", p.ExperienceLevel),
	)

	return ai.Success(p)
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume text:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

func parseResponse(raw string) (Profile, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}

	return New(
		ai.CoerceStrings(data["skills"]),
		ai.CoerceStrings(data["techStack"]),
		ai.CoerceString(data["experienceLevel"]),
		ai.CoerceStrings(data["roles"]),
		ai.CoerceString(data["summary"]),
		ai.CoerceStrings(data["keywords"]),
	), nil
}
