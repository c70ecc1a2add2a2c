// Package profile turns free-form resume text into a structured candidate profile.
package profile

import "strings"

// Experience levels recognised when normalising model output.
const (
	LevelJunior = "Junior"
	LevelMid    = "Mid"
	LevelSenior = "Senior"
	LevelLead   = "Lead"
)

// FallbackSummary is the summary of the profile returned when extraction fails.
const FallbackSummary = "Unable to parse resume. Please try again."

var levels = []string{LevelJunior, LevelMid, LevelSenior, LevelLead}

// Profile is the structured view of a candidate. All slices are non-nil.
type Profile struct {
	Skills          []string `json:"skills"`
	TechStack       []string `json:"techStack"`
	ExperienceLevel string   `json:"experienceLevel"`
	Roles           []string `json:"roles"`
	Summary         string   `json:"summary"`
	Keywords        []string `json:"keywords"`
}

// New builds a profile, cleaning every list and normalising the experience level.
func New(skills, techStack []string, level string, roles []string, summary string, keywords []string) Profile {
	return Profile{
		Skills:          Clean(skills),
		TechStack:       Clean(techStack),
		ExperienceLevel: NormalizeLevel(level),
		Roles:           Clean(roles),
		Summary:         strings.TrimSpace(summary),
		Keywords:        Clean(keywords),
	}
}

// Fallback is the profile used when the model output cannot be used.
func Fallback() Profile {
	return New(nil, nil, LevelMid, nil, FallbackSummary, nil)
}

// NormalizeLevel maps case variants of the known levels to their canonical
// spelling. Other non-empty text is kept as is; empty text becomes Mid.
func NormalizeLevel(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return LevelMid
	}
	for _, known := range levels {
		if strings.EqualFold(level, known) {
			return known
		}
	}
	return level
}

// Clean trims entries, drops empty ones and removes case-insensitive
// duplicates keeping the first spelling seen.
func Clean(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// AllKeywords returns skills, tech stack, roles and keywords in that order.
func (p Profile) AllKeywords() []string {
	out := make([]string, 0, len(p.Skills)+len(p.TechStack)+len(p.Roles)+len(p.Keywords))
	out = append(out, p.Skills...)
	out = append(out, p.TechStack...)
	out = append(out, p.Roles...)
	out = append(out, p.Keywords...)
	return out
}

// SearchTerms returns the terms used to query job sources: skills, then tech stack.
func (p Profile) SearchTerms() []string {
	out := make([]string, 0, len(p.Skills)+len(p.TechStack))
	out = append(out, p.Skills...)
	out = append(out, p.TechStack...)
	return out
}

// IsEmpty reports whether the profile carries no searchable information.
func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && len(p.TechStack) == 0 && len(p.Roles) == 0 && len(p.Keywords) == 0
}
