package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
)

const (
	JSearchName     = "jsearch"
	jsearchEndpoint = "https://api.openwebninja.com/jsearch/search"
)

type JSearchConfig struct {
	APIKey   string
	Endpoint string
	Country  string
	Language string
}

// JSearch queries the OpenWeb Ninja JSearch API.
type JSearch struct {
	cfg    JSearchConfig
	client *client
	logger *zap.Logger
}

type jsearchItem struct {
	JobID          string `json:"job_id"`
	ID             string `json:"id"`
	JobTitle       string `json:"job_title"`
	Title          string `json:"title"`
	EmployerName   string `json:"employer_name"`
	Company        string `json:"company"`
	Employer       string `json:"employer"`
	JobDescription string `json:"job_description"`
	Description    string `json:"description"`
	JobHighlights  struct {
		Items []string `json:"items"`
	} `json:"job_highlights"`
	JobCity           string   `json:"job_city"`
	City              string   `json:"city"`
	JobState          string   `json:"job_state"`
	State             string   `json:"state"`
	JobEmploymentType string   `json:"job_employment_type"`
	EmploymentType    string   `json:"employment_type"`
	JobApplyLink      string   `json:"job_apply_link"`
	ApplyLink         string   `json:"apply_link"`
	URL               string   `json:"url"`
	JobPostedAt       string   `json:"job_posted_at_datetime_utc"`
	PostedDate        string   `json:"posted_date"`
	MinSalary         *float64 `json:"job_min_salary"`
	MaxSalary         *float64 `json:"job_max_salary"`
	SalaryCurrency    string   `json:"job_salary_currency"`
	RequiredSkills    []string `json:"job_required_skills"`
}

func NewJSearch(cfg JSearchConfig, timeout time.Duration, log *zap.Logger) *JSearch {
	if cfg.Endpoint == "" {
		cfg.Endpoint = jsearchEndpoint
	}
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	log = logger.WithSource(log, JSearchName)
	return &JSearch{cfg: cfg, client: newClient(timeout, log), logger: log}
}

func (j *JSearch) Name() string { return JSearchName }

func (j *JSearch) Search(ctx context.Context, keywords []string, location string) ([]*Listing, error) {
	if strings.TrimSpace(j.cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", JSearchName, ErrMissingCredentials)
	}

	query := "developer jobs"
	if q := BuildQuery(keywords); q != "" {
		query = q + " jobs"
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("num_pages", "1")
	q.Set("country", j.cfg.Country)
	q.Set("language", j.cfg.Language)

	body, err := j.client.getJSON(ctx, j.cfg.Endpoint, q, map[string]string{"x-api-key": j.cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", JSearchName, err)
	}

	items, err := findItems(body)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", JSearchName, err)
	}

	listings := make([]*Listing, 0, len(items))
	for idx, item := range items {
		var raw jsearchItem
		if err := decodeItem(item, &raw); err != nil {
			if isObjectError(err) {
				j.logger.Debug("skipping non-object item", zap.Int("index", idx), zap.Error(err))
				continue
			}
			j.logger.Debug("item decoded partially, mistyped fields use defaults", zap.Int("index", idx), zap.Error(err))
		}
		listings = append(listings, raw.toListing(idx, location))
	}

	return listings, nil
}

func (r *jsearchItem) toListing(idx int, location string) *Listing {
	description := PlainText(firstNonEmpty(
		r.JobDescription,
		r.Description,
		strings.Join(r.JobHighlights.Items, " "),
	))

	city := firstNonEmpty(r.JobCity, r.City)
	state := firstNonEmpty(r.JobState, r.State)
	place := firstNonEmpty(city, state, location)
	if city != "" && state != "" {
		place = city + ", " + state
	}

	skills := cleanSkills(r.RequiredSkills)
	if len(skills) == 0 {
		skills = ExtractSkills(description)
	}

	return &Listing{
		ID:             JSearchName + "-" + firstNonEmpty(r.JobID, r.ID, strconv.Itoa(idx)),
		Title:          firstNonEmpty(r.JobTitle, r.Title, DefaultTitle),
		Company:        firstNonEmpty(r.EmployerName, r.Company, r.Employer, DefaultCompany),
		Description:    description,
		RequiredSkills: skills,
		SalaryRange:    FormatSalary(r.MinSalary, r.MaxSalary, r.SalaryCurrency),
		Experience:     ExtractExperience(description),
		Location:       place,
		Type:           firstNonEmpty(r.JobEmploymentType, r.EmploymentType, DefaultType),
		URL:            firstNonEmpty(r.JobApplyLink, r.ApplyLink, r.URL),
		PostedDate:     firstNonEmpty(r.JobPostedAt, r.PostedDate),
		Source:         JSearchName,
	}
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
