package matching

import (
	"strings"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

// neutralScore is used when the profile has no skills or tech stack to compare.
const neutralScore = 50

// KeywordScore counts how many profile keywords appear in the listing text.
// Every keyword category counts as a hit, but only skills and tech stack form
// the denominator, so the ratio is capped at 100.
func KeywordScore(p profile.Profile, listing *jobs.Listing) float64 {
	total := len(p.Skills) + len(p.TechStack)
	if total == 0 {
		return neutralScore
	}

	text := strings.ToLower(strings.Join([]string{
		listing.Title,
		listing.Description,
		strings.Join(listing.RequiredSkills, " "),
	}, " "))

	matched := 0
	for _, kw := range p.AllKeywords() {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			matched++
		}
	}

	return Clamp(float64(matched) / float64(total) * 100)
}

// Fallback builds the degraded match used when scoring by completion failed.
func Fallback(p profile.Profile, listing *jobs.Listing, reason error) Match {
	m := Match{
		Listing:        listing,
		RelevanceScore: KeywordScore(p, listing),
		MatchReasons:   []string{FallbackReason},
		Degraded:       true,
	}
	if reason != nil {
		m.DegradedReason = reason.Error()
	}
	return m
}
