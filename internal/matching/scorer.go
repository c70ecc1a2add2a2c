package matching

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type Scorer struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(completer ai.Completer, log *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Scorer{
		completer: completer,
		logger:    logger.OrNop(log),
		maxLogLen: maxLogLength,
	}
}

// Score never fails. When the completion is unusable the keyword fallback is
// returned with Degraded set.
func (s *Scorer) Score(ctx context.Context, p profile.Profile, listing *jobs.Listing) Match {
	if listing == nil {
		listing = &jobs.Listing{}
	}

	prompt := buildPrompt(p, listing)

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("scoring failed, using keyword fallback",
			logger.ListingField(listing.ID),
			zap.Error(err),
		)
		return Fallback(p, listing, err)
	}

	s.logger.Debug("scoring response",
		logger.ListingField(listing.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	score, reasons, err := parseResponse(raw)
	if err != nil {
		s.logger.Warn("unreadable scoring completion, using keyword fallback",
			logger.ListingField(listing.ID),
			zap.Error(err),
		)
		return Fallback(p, listing, err)
	}

	return Match{
		Listing:        listing,
		RelevanceScore: score,
		MatchReasons:   reasons,
	}
}

func buildPrompt(p profile.Profile, listing *jobs.Listing) string {
	candidate := fmt.Sprintf("Skills: %s\nTech Stack: %s\nExperience Level: %s\nRoles: %s\nSummary: %s",
		strings.Join(p.Skills, ", "),
		strings.Join(p.TechStack, ", "),
		p.ExperienceLevel,
		strings.Join(p.Roles, ", "),
		p.Summary,
	)

	job := fmt.Sprintf("Title: %s\nCompany: %s\nDescription: %s\nRequired Skills: %s\nExperience: %s",
		listing.Title,
		listing.Company,
		listing.Description,
		strings.Join(listing.RequiredSkills, ", "),
		listing.Experience,
	)

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_PROFILE}}\n\nJob:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_PROFILE}}", candidate)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", job)
	return prompt
}

func parseResponse(raw string) (float64, []string, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return 0, nil, fmt.Errorf("parse score: %w", err)
	}

	score := ai.CoerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return Clamp(score), ai.CoerceStrings(data["reasons"]), nil
}
