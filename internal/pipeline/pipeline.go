// Package pipeline wires profile extraction, job aggregation and scoring into
// one request-scoped run.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
)

// DefaultConcurrency bounds the number of listings scored at once.
const DefaultConcurrency = 8

var (
	// ErrEmptyInput is returned when neither resume text nor a profile is given.
	ErrEmptyInput = errors.New("empty input: resume text or profile is required")
	// ErrConflictingInput is returned when both resume text and a profile are given.
	ErrConflictingInput = errors.New("conflicting input: give either resume text or a profile")
)

type ProfileExtractor interface {
	Extract(ctx context.Context, resumeText string) ai.Result[profile.Profile]
}

type ListingAggregator interface {
	Aggregate(ctx context.Context, keywords []string, location string) []*jobs.Listing
}

type MatchScorer interface {
	Score(ctx context.Context, p profile.Profile, listing *jobs.Listing) matching.Match
}

// Input carries either raw resume text or an already extracted profile.
type Input struct {
	ResumeText string
	Profile    *profile.Profile
	// Keywords, when set, are used to search listings instead of the
	// extracted profile terms, which lets search run during extraction.
	Keywords   []string
	Location   string
}

type Options struct {
	Concurrency int
	UseSamples  bool
	MinScore    float64
}

// Report is the outcome of one run.
type Report struct {
	RunID           string           `json:"runId"`
	Profile         profile.Profile  `json:"profile"`
	ProfileDegraded bool             `json:"profileDegraded,omitempty"`
	ProfileReason   string           `json:"profileReason,omitempty"`
	Matches         []matching.Match `json:"matches"`
	Listings        []*jobs.Listing  `json:"-"`
	Filter          matching.Step    `json:"-"`
	Duration        time.Duration    `json:"-"`
}

type Pipeline struct {
	extractor  ProfileExtractor
	aggregator ListingAggregator
	scorer     MatchScorer
	opts       Options
	logger     *zap.Logger
}

func New(extractor ProfileExtractor, aggregator ListingAggregator, scorer MatchScorer, opts Options, log *zap.Logger) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Pipeline{
		extractor:  extractor,
		aggregator: aggregator,
		scorer:     scorer,
		opts:       opts,
		logger:     logger.OrNop(log),
	}
}

// ProcessResume runs one match request. Only invalid input is an error;
// provider and source failures degrade the report instead.
func (p *Pipeline) ProcessResume(ctx context.Context, in Input) (*Report, error) {
	hasText := strings.TrimSpace(in.ResumeText) != ""
	switch {
	case !hasText && in.Profile == nil:
		return nil, ErrEmptyInput
	case hasText && in.Profile != nil:
		return nil, ErrConflictingInput
	}

	started := time.Now()
	report := &Report{RunID: uuid.NewString()}
	log := logger.WithRun(p.logger, report.RunID)

	log.Info("starting match run",
		zap.Bool("from_text", hasText),
		zap.Int("explicit_keywords", len(in.Keywords)),
	)

	var listings []*jobs.Listing
	if hasText && len(in.Keywords) > 0 {
		var g errgroup.Group
		g.Go(func() error {
			p.applyProfile(report, p.extractor.Extract(ctx, in.ResumeText))
			return nil
		})
		g.Go(func() error {
			listings = p.aggregator.Aggregate(ctx, in.Keywords, in.Location)
			return nil
		})
		_ = g.Wait()
	} else {
		if hasText {
			p.applyProfile(report, p.extractor.Extract(ctx, in.ResumeText))
		} else {
			prof := in.Profile
			report.Profile = profile.New(prof.Skills, prof.TechStack, prof.ExperienceLevel, prof.Roles, prof.Summary, prof.Keywords)
		}

		keywords := in.Keywords
		if len(keywords) == 0 {
			keywords = report.Profile.SearchTerms()
		}
		if len(keywords) == 0 {
			log.Info("no search terms, job sources use their default query",
				zap.Bool("profile_empty", report.Profile.IsEmpty()),
			)
		}
		listings = p.aggregator.Aggregate(ctx, keywords, in.Location)
	}

	if report.ProfileDegraded {
		log.Warn("profile extraction degraded", zap.String("reason", report.ProfileReason))
	}

	if len(listings) == 0 && p.opts.UseSamples {
		log.Info("no listings aggregated, using sample listings")
		listings = jobs.SampleListings()
	}
	report.Listings = listings

	log.Info("scoring listings", zap.Int("count", len(listings)))

	ranked := matching.Rank(p.scoreAll(ctx, report.Profile, listings))
	report.Matches, report.Filter = matching.FilterByScore(ranked, p.opts.MinScore)
	report.Duration = time.Since(started)

	log.Info("match run finished",
		zap.Int("initial", report.Filter.Initial),
		zap.Int("dropped", report.Filter.Dropped),
		zap.Int("left", report.Filter.Left),
		zap.Int("degraded", countDegraded(report.Matches)),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

func (p *Pipeline) applyProfile(report *Report, res ai.Result[profile.Profile]) {
	report.Profile = res.Value
	if res.IsDegraded() {
		report.ProfileDegraded = true
		report.ProfileReason = res.Reason.Error()
	}
}

// scoreAll scores every listing with bounded concurrency. Results keep the
// listing order.
func (p *Pipeline) scoreAll(ctx context.Context, prof profile.Profile, listings []*jobs.Listing) []matching.Match {
	matches := make([]matching.Match, len(listings))
	if len(listings) == 0 {
		return matches
	}

	limit := p.opts.Concurrency
	if limit > len(listings) {
		limit = len(listings)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, listing := range listings {
		g.Go(func() error {
			matches[i] = p.scorer.Score(ctx, prof, listing)
			return nil
		})
	}
	_ = g.Wait()

	return matches
}

func countDegraded(matches []matching.Match) int {
	n := 0
	for _, m := range matches {
		if m.Degraded {
			n++
		}
	}
	return n
}
