package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/pipeline"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	maxTitleWidth   = 40
	maxCompanyWidth = 24
	degradedMarker  = "*"
)

func renderJSON(w io.Writer, report *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderProfile(w io.Writer, p profile.Profile, degraded bool) {
	fmt.Fprintf(w, "Experience level: %s\n", p.ExperienceLevel)
	fmt.Fprintf(w, "Skills:           %s\n", joinOrDash(p.Skills))
	fmt.Fprintf(w, "Tech stack:       %s\n", joinOrDash(p.TechStack))
	fmt.Fprintf(w, "Roles:            %s\n", joinOrDash(p.Roles))
	if p.Summary != "" {
		fmt.Fprintf(w, "Summary:          %s\n", p.Summary)
	}
	if degraded {
		fmt.Fprintln(w, "(profile could not be extracted, fallback used)")
	}
}

func renderTable(w io.Writer, report *pipeline.Report) {
	renderProfile(w, report.Profile, report.ProfileDegraded)
	fmt.Fprintln(w)

	if len(report.Matches) == 0 {
		fmt.Fprintln(w, "No matching jobs found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tTITLE\tCOMPANY\tLOCATION\tSALARY\tREASONS")
	degraded := 0
	for i, m := range report.Matches {
		score := fmt.Sprintf("%.0f", m.RelevanceScore)
		if m.Degraded {
			score += degradedMarker
			degraded++
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			score,
			utils.TruncateForLog(m.Listing.Title, maxTitleWidth),
			utils.TruncateForLog(m.Listing.Company, maxCompanyWidth),
			m.Listing.Location,
			m.Listing.SalaryRange,
			strings.Join(m.DisplayReasons(), "; "),
		)
	}
	tw.Flush()

	if degraded > 0 {
		fmt.Fprintf(w, "\n%s keyword-based score, %d of %d listings\n", degradedMarker, degraded, len(report.Matches))
	}
}

func renderMatch(w io.Writer, m matching.Match) {
	l := m.Listing
	fmt.Fprintf(w, "%s at %s (%s)\n", l.Title, l.Company, l.ID)
	fmt.Fprintf(w, "Score:      %.1f\n", m.RelevanceScore)
	fmt.Fprintf(w, "Location:   %s\n", l.Location)
	fmt.Fprintf(w, "Type:       %s\n", l.Type)
	fmt.Fprintf(w, "Salary:     %s\n", l.SalaryRange)
	fmt.Fprintf(w, "Experience: %s\n", l.Experience)
	fmt.Fprintf(w, "Skills:     %s\n", joinOrDash(l.RequiredSkills))
	if l.URL != "" {
		fmt.Fprintf(w, "Apply:      %s\n", l.URL)
	}
	if l.PostedDate != "" {
		fmt.Fprintf(w, "Posted:     %s\n", l.PostedDate)
	}
	for _, reason := range m.DisplayReasons() {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
	if m.Degraded {
		fmt.Fprintf(w, "Scored by keywords: %s\n", m.DegradedReason)
	}
	fmt.Fprintf(w, "\n%s\n", l.Description)
}

// renderDetails prints the match of one listing from the run. Listings dropped
// by the minimum score are found but reported as an error.
func renderDetails(w io.Writer, report *pipeline.Report, id string) error {
	all := &jobs.Listings{Items: report.Listings}
	listing := all.FindByID(strings.TrimSpace(id))
	if listing == nil {
		return fmt.Errorf("listing %q was not collected in this run", id)
	}

	for _, m := range report.Matches {
		if m.Listing == listing {
			renderMatch(w, m)
			return nil
		}
	}
	return fmt.Errorf("listing %q scored below the minimum score", id)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
