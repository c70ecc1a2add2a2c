package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
)

const (
	// DefaultThreshold is the running total below which the next source is queried.
	DefaultThreshold = 20
	// DefaultMaxListings caps the aggregated result.
	DefaultMaxListings = 50
	// DefaultLocation is used when the caller gives none.
	DefaultLocation = "India"
)

// Config configures the built-in sources and the aggregation limits.
type Config struct {
	JSearch     JSearchConfig
	Adzuna      AdzunaConfig
	Timeout     time.Duration
	Threshold   int
	MaxListings int
}

// NewSources returns the built-in sources in priority order.
func NewSources(cfg Config, log *zap.Logger) []Source {
	log = logger.OrNop(log)
	return []Source{
		NewJSearch(cfg.JSearch, cfg.Timeout, log),
		NewAdzuna(cfg.Adzuna, cfg.Timeout, log),
	}
}

type Aggregator struct {
	sources     []Source
	threshold   int
	maxListings int
	logger      *zap.Logger
}

// NewAggregator queries sources in the given order.
func NewAggregator(sources []Source, threshold, maxListings int, log *zap.Logger) *Aggregator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxListings <= 0 {
		maxListings = DefaultMaxListings
	}
	return &Aggregator{
		sources:     sources,
		threshold:   threshold,
		maxListings: maxListings,
		logger:      logger.OrNop(log),
	}
}

// Aggregate never fails: a failing source contributes zero listings. The
// result is deduplicated by ID and capped at the configured maximum.
func (a *Aggregator) Aggregate(ctx context.Context, keywords []string, location string) []*Listing {
	if location == "" {
		location = DefaultLocation
	}

	var collected []*Listing
	for _, src := range a.sources {
		if len(collected) >= a.threshold {
			a.logger.Debug("skipping source, enough listings collected",
				zap.String(logger.FieldSource, src.Name()),
				zap.Int("collected", len(collected)),
				zap.Int("threshold", a.threshold),
			)
			continue
		}

		if ctx.Err() != nil {
			break
		}

		found, err := src.Search(ctx, keywords, location)
		if err != nil {
			a.logSourceError(src.Name(), err)
			continue
		}

		a.logger.Info("fetched listings",
			zap.String(logger.FieldSource, src.Name()),
			zap.Int("count", len(found)),
		)
		collected = append(collected, found...)
	}

	listings := Dedupe(collected)
	if len(listings) > a.maxListings {
		listings = listings[:a.maxListings]
	}

	return listings
}

func (a *Aggregator) logSourceError(name string, err error) {
	field := zap.String(logger.FieldSource, name)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		a.logger.Warn("source credentials are not configured, skipping", field)
	case errors.Is(err, ErrUnsupportedShape):
		a.logger.Warn("source returned no recognisable job list", field, zap.Error(err))
	default:
		a.logger.Warn("source failed", field, zap.Error(err))
	}
}

// Dedupe keeps one listing per ID. A later duplicate replaces the earlier
// one but the listing stays at the position where its ID first appeared.
func Dedupe(listings []*Listing) []*Listing {
	index := make(map[string]int, len(listings))
	out := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		if pos, ok := index[l.ID]; ok {
			out[pos] = l
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}
