package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
)

type stubExtractor struct {
	result  ai.Result[profile.Profile]
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (s *stubExtractor) Extract(_ context.Context, _ string) ai.Result[profile.Profile] {
	atomic.AddInt32(&s.calls, 1)
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result
}

type stubAggregator struct {
	mu       sync.Mutex
	listings []*jobs.Listing
	keywords []string
	location string
	onCall   func()
}

func (s *stubAggregator) Aggregate(_ context.Context, keywords []string, location string) []*jobs.Listing {
	if s.onCall != nil {
		s.onCall()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = keywords
	s.location = location
	return s.listings
}

type stubScorer struct {
	scores   map[string]float64
	inFlight int32
	peak     int32
	delay    time.Duration
}

func (s *stubScorer) Score(_ context.Context, _ profile.Profile, l *jobs.Listing) matching.Match {
	cur := atomic.AddInt32(&s.inFlight, 1)
	for {
		peak := atomic.LoadInt32(&s.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&s.peak, peak, cur) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	atomic.AddInt32(&s.inFlight, -1)
	return matching.Match{Listing: l, RelevanceScore: s.scores[l.ID], MatchReasons: []string{}}
}

func listings(ids ...string) []*jobs.Listing {
	out := make([]*jobs.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, &jobs.Listing{ID: id})
	}
	return out
}

func goProfile() profile.Profile {
	return profile.New([]string{"Go"}, []string{"Docker"}, "Senior", nil, "", nil)
}

func TestProcessResumeRanksMatches(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	agg := &stubAggregator{listings: listings("a", "b", "c")}
	sc := &stubScorer{scores: map[string]float64{"a": 30, "b": 90, "c": 60}}

	p := New(&stubExtractor{result: ai.Success(goProfile())}, agg, sc, Options{}, zap.New(core))

	report, err := p.ProcessResume(context.Background(), Input{ResumeText: "Go engineer", Location: "Pune"})
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)

	assert.False(t, report.ProfileDegraded)
	assert.Equal(t, []string{"Go", "Docker"}, agg.keywords)
	assert.Equal(t, "Pune", agg.location)
	require.Len(t, report.Matches, 3)
	assert.Equal(t, "b", report.Matches[0].Listing.ID)
	assert.Equal(t, "c", report.Matches[1].Listing.ID)
	assert.Equal(t, "a", report.Matches[2].Listing.ID)
	assert.Len(t, report.Listings, 3)

	finished := observed.FilterMessage("match run finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, report.RunID, finished[0].ContextMap()[logger.FieldRunID])
}

func TestProcessResumeInputValidation(t *testing.T) {
	p := New(&stubExtractor{}, &stubAggregator{}, &stubScorer{}, Options{}, nil)

	_, err := p.ProcessResume(context.Background(), Input{ResumeText: "   "})
	assert.ErrorIs(t, err, ErrEmptyInput)

	prof := goProfile()
	_, err = p.ProcessResume(context.Background(), Input{ResumeText: "text", Profile: &prof})
	assert.ErrorIs(t, err, ErrConflictingInput)
}

func TestProcessResumeWithProfileSkipsExtraction(t *testing.T) {
	ex := &stubExtractor{}
	agg := &stubAggregator{listings: listings("a")}
	prof := goProfile()

	report, err := New(ex, agg, &stubScorer{}, Options{}, nil).ProcessResume(context.Background(), Input{Profile: &prof})
	require.NoError(t, err)

	assert.Zero(t, atomic.LoadInt32(&ex.calls))
	assert.Equal(t, prof, report.Profile)
	assert.Len(t, report.Matches, 1)
}

func TestProcessResumeDegradedProfile(t *testing.T) {
	reason := fmt.Errorf("parse profile: %w", ai.ErrMalformedCompletion)
	ex := &stubExtractor{result: ai.Degraded(profile.Fallback(), reason)}
	agg := &stubAggregator{}

	report, err := New(ex, agg, &stubScorer{}, Options{}, zap.NewNop()).ProcessResume(context.Background(), Input{ResumeText: "???"})
	require.NoError(t, err)

	assert.True(t, report.ProfileDegraded)
	assert.Contains(t, report.ProfileReason, ai.ErrMalformedCompletion.Error())
	assert.Equal(t, profile.FallbackSummary, report.Profile.Summary)
	assert.Empty(t, agg.keywords)
	assert.NotNil(t, report.Matches)
	assert.Empty(t, report.Matches)
}

func TestProcessResumeRunsStagesConcurrentlyWithKeywords(t *testing.T) {
	ex := &stubExtractor{
		result:  ai.Success(goProfile()),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	var sawExtractionRunning bool
	agg := &stubAggregator{listings: listings("a")}
	agg.onCall = func() {
		select {
		case <-ex.started:
			sawExtractionRunning = true
		case <-time.After(2 * time.Second):
		}
		close(ex.release)
	}

	report, err := New(ex, agg, &stubScorer{}, Options{}, zap.NewNop()).ProcessResume(context.Background(), Input{
		ResumeText: "Go engineer",
		Keywords:   []string{"golang", "kubernetes"},
	})
	require.NoError(t, err)

	assert.True(t, sawExtractionRunning, "aggregation should overlap extraction")
	assert.Equal(t, []string{"golang", "kubernetes"}, agg.keywords)
	assert.Equal(t, goProfile(), report.Profile)
}

func TestProcessResumeBoundsScoringConcurrency(t *testing.T) {
	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		ids = append(ids, fmt.Sprintf("l%d", i))
	}
	sc := &stubScorer{delay: 5 * time.Millisecond}

	report, err := New(&stubExtractor{result: ai.Success(goProfile())}, &stubAggregator{listings: listings(ids...)}, sc, Options{Concurrency: 3}, nil).
		ProcessResume(context.Background(), Input{ResumeText: "text"})
	require.NoError(t, err)

	assert.Len(t, report.Matches, 20)
	assert.LessOrEqual(t, atomic.LoadInt32(&sc.peak), int32(3))
	assert.Equal(t, 20, report.Filter.Initial)
}

func TestProcessResumeSamplesAndThreshold(t *testing.T) {
	samples := jobs.SampleListings()
	scores := map[string]float64{}
	for i, l := range samples {
		scores[l.ID] = float64(i * 20)
	}

	p := New(&stubExtractor{result: ai.Success(goProfile())}, &stubAggregator{}, &stubScorer{scores: scores}, Options{UseSamples: true, MinScore: 50}, nil)

	report, err := p.ProcessResume(context.Background(), Input{ResumeText: "text"})
	require.NoError(t, err)

	assert.Len(t, report.Listings, len(samples))
	assert.Equal(t, matching.Step{Initial: len(samples), Dropped: 3, Left: len(samples) - 3}, report.Filter)
	for _, m := range report.Matches {
		assert.GreaterOrEqual(t, m.RelevanceScore, 50.0)
	}

	report, err = New(&stubExtractor{result: ai.Success(goProfile())}, &stubAggregator{}, &stubScorer{}, Options{}, nil).
		ProcessResume(context.Background(), Input{ResumeText: "text"})
	require.NoError(t, err)
	assert.Empty(t, report.Listings)
}

func TestProcessResumeDegradedScoresSurvive(t *testing.T) {
	agg := &stubAggregator{listings: listings("a", "b")}
	sc := &fallbackScorer{}

	report, err := New(&stubExtractor{result: ai.Success(goProfile())}, agg, sc, Options{}, nil).
		ProcessResume(context.Background(), Input{ResumeText: "text"})
	require.NoError(t, err)

	require.Len(t, report.Matches, 2)
	for _, m := range report.Matches {
		assert.True(t, m.Degraded)
		assert.Equal(t, []string{matching.FallbackReason}, m.MatchReasons)
	}
}

type fallbackScorer struct{}

func (fallbackScorer) Score(_ context.Context, p profile.Profile, l *jobs.Listing) matching.Match {
	return matching.Fallback(p, l, errors.New("timeout"))
}

// hangingChat blocks until the call deadline for prompts mentioning hang.
type hangingChat struct {
	hang string
}

func (c hangingChat) Chat(ctx context.Context, _, prompt string) (string, error) {
	if strings.Contains(prompt, c.hang) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return `{"score": 90, "reasons": ["Strong overlap"]}`, nil
}

func (hangingChat) Model() string { return "stub-model" }

func TestProcessResumeTimeoutDegradesOnlyThatListing(t *testing.T) {
	gateway := ai.New(ai.ProviderGroq, hangingChat{hang: "Title: Stalled Role"}, ai.Options{Timeout: 50 * time.Millisecond}, zap.NewNop())
	agg := &stubAggregator{listings: []*jobs.Listing{
		{ID: "a", Title: "Go Developer", Description: "Go services"},
		{ID: "b", Title: "Stalled Role", Description: "Kafka streaming"},
		{ID: "c", Title: "Rust Engineer", Description: "Rust tooling"},
	}}
	prof := profile.New([]string{"Go", "Kafka", "Rust"}, nil, "Senior", nil, "", nil)

	p := New(&stubExtractor{}, agg, matching.NewScorer(gateway, zap.NewNop(), 0), Options{}, zap.NewNop())

	report, err := p.ProcessResume(context.Background(), Input{Profile: &prof})
	require.NoError(t, err)
	require.Len(t, report.Matches, 3)

	byID := map[string]matching.Match{}
	for _, m := range report.Matches {
		byID[m.Listing.ID] = m
	}

	for _, id := range []string{"a", "c"} {
		assert.False(t, byID[id].Degraded, id)
		assert.Equal(t, float64(90), byID[id].RelevanceScore, id)
		assert.Equal(t, []string{"Strong overlap"}, byID[id].MatchReasons, id)
	}

	stalled := byID["b"]
	assert.True(t, stalled.Degraded)
	assert.InDelta(t, 100.0/3, stalled.RelevanceScore, 0.01)
	assert.Equal(t, []string{matching.FallbackReason}, stalled.MatchReasons)
	assert.Contains(t, stalled.DegradedReason, context.DeadlineExceeded.Error())
	assert.Equal(t, "b", report.Matches[2].Listing.ID)
}

func TestProcessResumeNormalisesGivenProfile(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	agg := &stubAggregator{}
	p := New(&stubExtractor{}, agg, &stubScorer{}, Options{}, zap.New(core))

	report, err := p.ProcessResume(context.Background(), Input{Profile: &profile.Profile{Summary: "  Generalist  "}})
	require.NoError(t, err)

	assert.Equal(t, profile.LevelMid, report.Profile.ExperienceLevel)
	assert.Equal(t, "Generalist", report.Profile.Summary)
	assert.NotNil(t, report.Profile.Skills)
	assert.NotNil(t, report.Profile.Keywords)
	assert.Empty(t, agg.keywords)

	encoded, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"skills":[]`)
	assert.NotContains(t, string(encoded), "null")

	noTerms := observed.FilterMessage("no search terms, job sources use their default query").All()
	require.Len(t, noTerms, 1)
	assert.Equal(t, true, noTerms[0].ContextMap()["profile_empty"])
}
