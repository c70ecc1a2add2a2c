// Package matching scores job listings against a candidate profile and ranks them.
package matching

import "github.com/spigell/resume-matcher/internal/jobs"

// MaxDisplayReasons is the number of reasons shown per match.
const MaxDisplayReasons = 3

// FallbackReason is the only reason attached to keyword-based scores.
const FallbackReason = "Keyword-based match"

// Match is the relevance assessment of one listing.
type Match struct {
	Listing        *jobs.Listing `json:"job"`
	RelevanceScore float64       `json:"relevanceScore"`
	MatchReasons   []string      `json:"matchReasons"`
	Degraded       bool          `json:"degraded,omitempty"`
	DegradedReason string        `json:"degradedReason,omitempty"`
}

// DisplayReasons returns at most MaxDisplayReasons reasons.
func (m Match) DisplayReasons() []string {
	if len(m.MatchReasons) <= MaxDisplayReasons {
		return m.MatchReasons
	}
	return m.MatchReasons[:MaxDisplayReasons]
}

// Clamp limits a score to [0, 100].
func Clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
