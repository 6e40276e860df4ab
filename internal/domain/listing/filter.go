// Package listing narrows a project listing by keyword and price range.
package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
)

// Criteria is an immutable set of filter parameters evaluated per call.
// A nil MaxPrice means there is no upper bound.
type Criteria struct {
	Keyword  string
	MinPrice float64
	MaxPrice *float64
}

// MatchAll returns criteria that keep every project.
func MatchAll() Criteria {
	return Criteria{}
}

// WithMax returns a copy of c bounded above by max.
func (c Criteria) WithMax(max float64) Criteria {
	c.MaxPrice = &max
	return c
}

// ParseCriteria builds criteria from raw user input. Bounds that do not parse
// are coerced instead of rejected: min falls back to 0 and max to unbounded.
func ParseCriteria(keyword, minPrice, maxPrice string) Criteria {
	c := Criteria{Keyword: keyword}
	if v, ok := parseBound(minPrice); ok {
		c.MinPrice = v
	}
	if v, ok := parseBound(maxPrice); ok {
		c.MaxPrice = &v
	}
	return c
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Matches reports whether p satisfies c.
func (c Criteria) Matches(p entity.Project) bool {
	return c.matchesKeyword(normalize(c.Keyword), p) && c.matchesPrice(p.Price)
}

func (c Criteria) matchesKeyword(term string, p entity.Project) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func (c Criteria) matchesPrice(price float64) bool {
	if price < c.MinPrice {
		return false
	}
	return c.MaxPrice == nil || price <= *c.MaxPrice
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Filter returns the projects matching c in their original order.
// The input slice is never modified; the result is always a fresh slice.
func Filter(projects []entity.Project, c Criteria) []entity.Project {
	term := normalize(c.Keyword)
	out := make([]entity.Project, 0, len(projects))
	for _, p := range projects {
		if c.matchesKeyword(term, p) && c.matchesPrice(p.Price) {
			out = append(out, p)
		}
	}
	return out
}

// Technologies returns the distinct technology tags across projects in
// first-seen order.
func Technologies(projects []entity.Project) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range projects {
		for _, t := range p.Technologies {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
