package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
)

func sampleProjects() []entity.Project {
	return []entity.Project{
		{
			ID:          "1",
			Title:       "AI Task Manager",
			Description: "A task management app that uses AI to prioritize and suggest tasks.",
			Price:       500,
			Author:      entity.Author{ID: "u1"},
		},
		{
			ID:          "2",
			Title:       "Voting System",
			Description: "A secure and transparent voting system built on blockchain technology.",
			Price:       1000,
			Author:      entity.Author{ID: "u2"},
		},
	}
}

func ids(projects []entity.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "match all", criteria: MatchAll(), want: []string{"1", "2"}},
		{name: "keyword in title", criteria: Criteria{Keyword: "voting"}, want: []string{"2"}},
		{name: "keyword case insensitive", criteria: Criteria{Keyword: "TASK manager"}, want: []string{"1"}},
		{name: "keyword in description", criteria: Criteria{Keyword: "blockchain"}, want: []string{"2"}},
		{name: "keyword surrounding spaces ignored", criteria: Criteria{Keyword: "  voting "}, want: []string{"2"}},
		{name: "keyword without match", criteria: Criteria{Keyword: "quantum"}, want: []string{}},
		{name: "min price", criteria: Criteria{MinPrice: 600}, want: []string{"2"}},
		{name: "min price inclusive", criteria: Criteria{MinPrice: 500}, want: []string{"1", "2"}},
		{name: "max price inclusive", criteria: Criteria{}.WithMax(500), want: []string{"1"}},
		{name: "range", criteria: Criteria{MinPrice: 400}.WithMax(999.99), want: []string{"1"}},
		{name: "min above max", criteria: Criteria{MinPrice: 800}.WithMax(700), want: []string{}},
		{name: "keyword and price", criteria: Criteria{Keyword: "a", MinPrice: 501}, want: []string{"2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(sampleProjects(), tc.criteria)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilter_VotingScenario(t *testing.T) {
	got := Filter(sampleProjects(), Criteria{Keyword: "voting"})

	require.Len(t, got, 1)
	assert.Equal(t, "Voting System", got[0].Title)
}

func TestFilter_MinPriceScenario(t *testing.T) {
	got := Filter(sampleProjects(), Criteria{Keyword: "", MinPrice: 600})

	require.Len(t, got, 1)
	assert.Equal(t, "Voting System", got[0].Title)
	assert.Equal(t, 1000.0, got[0].Price)
}

func TestFilter_IdentityReturnsEqualButFreshSlice(t *testing.T) {
	in := sampleProjects()

	got := Filter(in, MatchAll())

	assert.Equal(t, in, got)
	got[0].Title = "changed"
	assert.Equal(t, "AI Task Manager", in[0].Title)
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := sampleProjects()
	before := sampleProjects()

	_ = Filter(in, Criteria{Keyword: "voting", MinPrice: 10})

	assert.Equal(t, before, in)
}

func TestFilter_PreservesOrder(t *testing.T) {
	in := []entity.Project{
		{ID: "c", Title: "go api", Price: 30},
		{ID: "a", Title: "go cli", Price: 10},
		{ID: "x", Title: "rust", Price: 20},
		{ID: "b", Title: "go worker", Price: 20},
	}

	got := Filter(in, Criteria{Keyword: "go"})

	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, MatchAll())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_SingleProjectKeywordProperty(t *testing.T) {
	p := sampleProjects()[1]
	keywords := map[string]bool{
		"Voting":      true,
		"vOtInG sYs":  true,
		"transparent": true,
		"system":      true,
		"task":        false,
		"votes":       false,
	}

	for k, match := range keywords {
		got := Filter([]entity.Project{p}, Criteria{Keyword: k})
		if match {
			assert.Equal(t, []entity.Project{p}, got, k)
		} else {
			assert.Empty(t, got, k)
		}
	}
}

func TestMatches(t *testing.T) {
	p := sampleProjects()[0]

	assert.True(t, Criteria{Keyword: "ai"}.Matches(p))
	assert.False(t, Criteria{MinPrice: 501}.Matches(p))
}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name    string
		min     string
		max     string
		wantMin float64
		wantMax *float64
	}{
		{name: "empty bounds", wantMin: 0, wantMax: nil},
		{name: "valid bounds", min: "100", max: "250.5", wantMin: 100, wantMax: ptr(250.5)},
		{name: "malformed min", min: "abc", max: "10", wantMin: 0, wantMax: ptr(10)},
		{name: "malformed max", min: "5", max: "lots", wantMin: 5, wantMax: nil},
		{name: "whitespace", min: " 7 ", max: "  ", wantMin: 7, wantMax: nil},
		{name: "nan", min: "NaN", max: "NaN", wantMin: 0, wantMax: nil},
		{name: "zero max is a bound", max: "0", wantMin: 0, wantMax: ptr(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := ParseCriteria("kw", tc.min, tc.max)

			assert.Equal(t, "kw", c.Keyword)
			assert.Equal(t, tc.wantMin, c.MinPrice)
			assert.Equal(t, tc.wantMax, c.MaxPrice)
		})
	}
}

func TestTechnologies(t *testing.T) {
	in := []entity.Project{
		{Technologies: []string{"React", "Node.js"}},
		{Technologies: []string{"Solidity", "React"}},
		{},
	}

	assert.Equal(t, []string{"React", "Node.js", "Solidity"}, Technologies(in))
	assert.Empty(t, Technologies(nil))
}

func ptr(v float64) *float64 { return &v }
