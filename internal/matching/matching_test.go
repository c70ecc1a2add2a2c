package matching

import (
	"reflect"
	"testing"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

func TestKeywordScore(t *testing.T) {
	listing := testListing()

	tests := []struct {
		name    string
		profile profile.Profile
		want    float64
	}{
		{name: "half of skills and stack", profile: testProfile(), want: 50},
		{name: "empty profile is neutral", profile: profile.Fallback(), want: 50},
		{name: "only roles is neutral", profile: profile.New(nil, nil, "", []string{"Engineer"}, "", nil), want: 50},
		{name: "no overlap", profile: profile.New([]string{"Rust"}, nil, "", nil, "", nil), want: 0},
		{
			name:    "capped at 100",
			profile: profile.New([]string{"React"}, nil, "", []string{"Frontend"}, "", []string{"dashboards"}),
			want:    100,
		},
		{name: "case insensitive", profile: profile.New([]string{"REACT", "node.JS"}, nil, "", nil, "", nil), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeywordScore(tt.profile, listing); got != tt.want {
				t.Fatalf("KeywordScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankIsStableAndDescending(t *testing.T) {
	in := []Match{
		{Listing: &jobs.Listing{ID: "a"}, RelevanceScore: 40},
		{Listing: &jobs.Listing{ID: "b"}, RelevanceScore: 90},
		{Listing: &jobs.Listing{ID: "c"}, RelevanceScore: 40},
		{Listing: &jobs.Listing{ID: "d"}, RelevanceScore: 100},
		{Listing: &jobs.Listing{ID: "e"}, RelevanceScore: 90},
	}

	ranked := Rank(in)

	var ids []string
	for _, m := range ranked {
		ids = append(ids, m.Listing.ID)
	}
	if want := []string{"d", "b", "e", "a", "c"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("Rank() order = %v, want %v", ids, want)
	}

	if in[0].Listing.ID != "a" || in[1].Listing.ID != "b" {
		t.Fatal("input must not be reordered")
	}

	if got := Rank(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestFilterByScore(t *testing.T) {
	in := []Match{{RelevanceScore: 10}, {RelevanceScore: 60}, {RelevanceScore: 59.9}, {RelevanceScore: 100}}

	kept, step := FilterByScore(in, 60)
	if len(kept) != 2 || kept[0].RelevanceScore != 60 || kept[1].RelevanceScore != 100 {
		t.Fatalf("unexpected kept matches %v", kept)
	}
	if step != (Step{Initial: 4, Dropped: 2, Left: 2}) {
		t.Fatalf("unexpected step %+v", step)
	}

	kept, step = FilterByScore(in, 0)
	if len(kept) != 4 || step.Dropped != 0 {
		t.Fatalf("non-positive threshold must keep everything, got %v", kept)
	}
}

func TestDisplayReasons(t *testing.T) {
	m := Match{MatchReasons: []string{"1", "2", "3", "4"}}
	if got := m.DisplayReasons(); len(got) != MaxDisplayReasons {
		t.Fatalf("expected %d reasons, got %v", MaxDisplayReasons, got)
	}
	if got := (Match{MatchReasons: []string{"1"}}).DisplayReasons(); len(got) != 1 {
		t.Fatalf("unexpected reasons %v", got)
	}
}

func TestClamp(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0: 0, 42.5: 42.5, 100: 100, 101: 100} {
		if got := Clamp(in); got != want {
			t.Fatalf("Clamp(%v) = %v, want %v", in, got, want)
		}
	}
}
