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
	AdzunaName     = "adzuna"
	adzunaEndpoint = "https://api.adzuna.com/v1/api/jobs/in/search/1"
	adzunaPerPage  = 50
)

type AdzunaConfig struct {
	AppID    string
	AppKey   string
	Endpoint string
}

// Adzuna queries the Adzuna India search API. Salaries are reported in INR.
type Adzuna struct {
	cfg    AdzunaConfig
	client *client
	logger *zap.Logger
}

type adzunaItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	ContractType string   `json:"contract_type"`
	RedirectURL  string   `json:"redirect_url"`
	Created      string   `json:"created"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
}

func NewAdzuna(cfg AdzunaConfig, timeout time.Duration, log *zap.Logger) *Adzuna {
	if cfg.Endpoint == "" {
		cfg.Endpoint = adzunaEndpoint
	}
	log = logger.WithSource(log, AdzunaName)
	return &Adzuna{cfg: cfg, client: newClient(timeout, log), logger: log}
}

func (a *Adzuna) Name() string { return AdzunaName }

func (a *Adzuna) Search(ctx context.Context, keywords []string, location string) ([]*Listing, error) {
	if strings.TrimSpace(a.cfg.AppID) == "" || strings.TrimSpace(a.cfg.AppKey) == "" {
		return nil, fmt.Errorf("%s: %w", AdzunaName, ErrMissingCredentials)
	}

	q := url.Values{}
	q.Set("app_id", a.cfg.AppID)
	q.Set("app_key", a.cfg.AppKey)
	q.Set("results_per_page", strconv.Itoa(adzunaPerPage))
	q.Set("what", BuildQuery(keywords))
	q.Set("where", location)
	q.Set("content-type", contentType)

	body, err := a.client.getJSON(ctx, a.cfg.Endpoint, q, nil)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", AdzunaName, err)
	}

	items, err := findItems(body)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", AdzunaName, err)
	}

	listings := make([]*Listing, 0, len(items))
	for idx, item := range items {
		var raw adzunaItem
		if err := decodeItem(item, &raw); err != nil {
			if isObjectError(err) {
				a.logger.Debug("skipping non-object item", zap.Int("index", idx), zap.Error(err))
				continue
			}
			a.logger.Debug("item decoded partially, mistyped fields use defaults", zap.Int("index", idx), zap.Error(err))
		}
		listings = append(listings, raw.toListing(idx, location))
	}

	return listings, nil
}

func (r *adzunaItem) toListing(idx int, location string) *Listing {
	description := PlainText(r.Description)

	return &Listing{
		ID:             AdzunaName + "-" + firstNonEmpty(r.ID, strconv.Itoa(idx)),
		Title:          firstNonEmpty(r.Title, DefaultTitle),
		Company:        firstNonEmpty(r.Company.DisplayName, DefaultCompany),
		Description:    description,
		RequiredSkills: ExtractSkills(description),
		SalaryRange:    FormatSalary(r.SalaryMin, r.SalaryMax, "INR"),
		Experience:     ExtractExperience(description),
		Location:       firstNonEmpty(r.Location.DisplayName, location),
		Type:           firstNonEmpty(r.ContractType, DefaultType),
		URL:            r.RedirectURL,
		PostedDate:     r.Created,
		Source:         AdzunaName,
	}
}
