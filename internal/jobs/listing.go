// Package jobs aggregates job listings from external job boards into one
// normalised, deduplicated list.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
)

// Listing is a job posting normalised across sources. ID is prefixed with the
// source name, e.g. "jsearch-123".
type Listing struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	SalaryRange    string   `json:"salaryRange"`
	Experience     string   `json:"experience"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	URL            string   `json:"url,omitempty"`
	PostedDate     string   `json:"postedDate,omitempty"`
	Source         string   `json:"source,omitempty"`
}

type Listings struct {
	Items []*Listing
}

func (l *Listings) Len() int {
	return len(l.Items)
}

func (l *Listings) FindByID(id string) *Listing {
	for _, listing := range l.Items {
		if listing.ID == id {
			return listing
		}
	}
	return nil
}

// ReportByCompany groups a short view of every listing by company name.
func (l *Listings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, listing := range l.Items {
		key := listing.Company
		if listing.Source != "" {
			key = fmt.Sprintf("%s (%s)", listing.Company, listing.Source)
		}
		report[key] = append(report[key], map[string]string{
			"title":      listing.Title,
			"url":        listing.URL,
			"location":   listing.Location,
			"salary":     listing.SalaryRange,
			"experience": listing.Experience,
			"type":       listing.Type,
		})
	}
	return report
}

func (l *Listings) DumpToTmpFile() (string, error) {
	return dumpJSON("listings_*.json", l)
}

func dumpJSON(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
