// Package plan translates a validated query into the structured store query
// and owns the relevance-ranking contract: field boost weights, exact-tag
// boosts, the click-feedback sort order, and the semantic score floor.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// Relevance weights. These are part of the ranking contract and must not
// change without reranking expectations across deployed clients.
const (
	TitleWeight    = 5.0
	HeadingsWeight = 3.0
	ContentWeight  = 1.5

	// Exact facet-tag boosts: a document carrying "<filter>-head" or
	// "<filter>-cont" in its filters outweighs plain field matches.
	TagHeadWeight = 10.0
	TagContWeight = 2.0
)

// Semantic scoring: raw cosine similarity is shifted by +1.0 so scores stay
// non-negative; hits below the floor are excluded.
const (
	SemanticScoreOffset = 1.0
	SemanticMinScore    = 1.24
)

// TimeRange is an inclusive [From, To] unix-seconds window.
type TimeRange struct {
	From int64
	To   int64
}

// Lexical is the weighted multi-signal lexical query: a should-match over
// title/headings/content, a mandatory facet filter when FilterTag is set,
// and an optional date window.
type Lexical struct {
	Text      string // normalized query text; "" matches on filters alone
	FilterTag string
	Dates     *TimeRange
	Skip      int
	Limit     int
}

// Semantic is the vector-similarity query. No field weighting; the
// embedding captures semantics holistically.
type Semantic struct {
	Text      string
	FilterTag string
	Dates     *TimeRange
	Skip      int
	Limit     int
}

// YearRange converts a yyyy string into the inclusive
// [year-01-01, year-12-31] window in UTC.
func YearRange(year string) (*TimeRange, error) {
	if year == "" {
		return nil, nil
	}
	start, err := time.Parse("2006-01-02", year+"-01-01")
	if err != nil {
		return nil, fmt.Errorf("parse year %q: %w", year, err)
	}
	end := start.AddDate(1, 0, 0).Add(-time.Second)
	return &TimeRange{From: start.Unix(), To: end.Unix()}, nil
}

// Boosts computes the score multiplier for one candidate document.
//
// Matched boost weights are summed, then multiplied into the base relevance
// score by the caller (score_mode=sum, boost_mode=multiply). A field clause
// matches when any normalized query term occurs in the field; tag clauses
// match on exact facet membership of "<filter>-head" / "<filter>-cont".
// With no matching clause the multiplier is neutral (1).
func Boosts(title, headings, content string, filters []string, text, filterTag string) float64 {
	terms := strings.Fields(text)

	sum := 0.0
	if fieldMatches(title, terms) {
		sum += TitleWeight
	}
	if fieldMatches(headings, terms) {
		sum += HeadingsWeight
	}
	if fieldMatches(content, terms) {
		sum += ContentWeight
	}
	if filterTag != "" {
		if hasTag(filters, filterTag+"-head") {
			sum += TagHeadWeight
		}
		if hasTag(filters, filterTag+"-cont") {
			sum += TagContWeight
		}
	}

	if sum == 0 {
		return 1
	}
	return sum
}

// SemanticScore converts a cosine distance reported by the store into the
// offset similarity score: (1 - distance) + 1.
func SemanticScore(distance float64) float64 {
	return (1 - distance) + SemanticScoreOffset
}

func fieldMatches(field string, terms []string) bool {
	if field == "" || len(terms) == 0 {
		return false
	}
	lowered := strings.ToLower(field)
	for _, t := range terms {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

func hasTag(filters []string, tag string) bool {
	for _, f := range filters {
		if f == tag {
			return true
		}
	}
	return false
}
