package jobs

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Defaults applied when a source omits a field.
const (
	DefaultTitle      = "Job Title"
	DefaultCompany    = "Company"
	DefaultType       = "Full-time"
	DefaultExperience = "2+ years"
	NotDisclosed      = "Not disclosed"
)

// USDToINR is the fixed rate used to show USD salaries in rupees.
const USDToINR = 83

// SkillVocabulary is matched against descriptions when a source supplies no skills.
var SkillVocabulary = []string{
	"React", "Node.js", "Python", "JavaScript", "TypeScript",
	"Java", "AWS", "Docker", "Kubernetes", "MongoDB",
	"PostgreSQL", "Next.js", "Angular", "Vue.js", "Express",
	"Django", "Flask", "Spring Boot", "Git", "CI/CD",
}

var experienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)

// ExtractSkills returns the vocabulary entries found in description, in vocabulary order.
// Matching is a plain substring test, so "Java" also matches "JavaScript".
func ExtractSkills(description string) []string {
	desc := strings.ToLower(description)
	skills := []string{}
	for _, skill := range SkillVocabulary {
		if strings.Contains(desc, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// ExtractExperience finds the first "N years" mention and renders it as "N+ years".
func ExtractExperience(description string) string {
	m := experienceRe.FindStringSubmatch(description)
	if m == nil {
		return DefaultExperience
	}
	return m[1] + "+ years"
}

// FormatSalary renders a salary range in rupees. USD amounts are converted at
// USDToINR, any other currency code is treated as INR. Zero counts as absent.
func FormatSalary(minSalary, maxSalary *float64, currency string) string {
	lo := positive(minSalary)
	hi := positive(maxSalary)

	if strings.EqualFold(strings.TrimSpace(currency), "USD") {
		lo *= USDToINR
		hi *= USDToINR
	}

	switch {
	case lo > 0 && hi > 0:
		return "₹" + formatINR(lo) + " - ₹" + formatINR(hi)
	case lo > 0:
		return "₹" + formatINR(lo) + "+"
	case hi > 0:
		return "Up to ₹" + formatINR(hi)
	default:
		return NotDisclosed
	}
}

func positive(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || *v <= 0 {
		return 0
	}
	return *v
}

// formatINR rounds to a whole number and groups digits the Indian way:
// the last three together, then pairs ("12,34,567").
func formatINR(v float64) string {
	digits := strconv.FormatInt(int64(math.Floor(v+0.5)), 10)
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return strings.Join(groups, ",") + "," + tail
}

// PlainText reduces an HTML fragment to whitespace-normalised text. Input
// without markup is only normalised.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	doc.Find("script, style").Remove()
	doc.Find("br, p, li, div, tr, h1, h2, h3, h4, h5, h6").AfterHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " ")
}
