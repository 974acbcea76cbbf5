// Package query holds the validated per-request search query.
package query

import (
	"fmt"

	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/search/mode"
	"github.com/astroseek/astroseek/internal/domain/search/normalize"
)

// DefaultLimit is the page size used when the caller does not pass one.
const DefaultLimit = 10

// Query is a validated, normalized search request. Ephemeral; never persisted.
type Query struct {
	raw        string
	normalized string
	filterTag  string
	year       string
	skip       int
	limit      int
	searchMode mode.Mode
}

// New validates search parameters and normalizes the query text.
//
// Fails with domain.ErrInvalidQuery on non-positive limit, negative skip,
// a malformed year, or an unknown mode. Never fails on empty text: a query
// of pure stop words normalizes to "" and still yields a well-formed
// (filter-only) query downstream.
func New(raw, filterTag, year string, skip, limit int, m mode.Mode) (Query, error) {
	if limit <= 0 {
		return Query{}, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, limit)
	}
	if skip < 0 {
		return Query{}, fmt.Errorf("%w: skip must be non-negative, got %d", domain.ErrInvalidQuery, skip)
	}
	if m == "" {
		m = mode.Lexical
	}
	if !m.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidQuery, m)
	}
	if year != "" && !validYear(year) {
		return Query{}, fmt.Errorf("%w: year must be four digits, got %q", domain.ErrInvalidQuery, year)
	}

	return Query{
		raw:        raw,
		normalized: normalize.Normalize(raw),
		filterTag:  filterTag,
		year:       year,
		skip:       skip,
		limit:      limit,
		searchMode: m,
	}, nil
}

// Raw returns the query text as the user typed it.
func (q *Query) Raw() string { return q.raw }

// Normalized returns the lowercased, stop-word-stripped query text.
func (q *Query) Normalized() string { return q.normalized }

// FilterTag returns the facet tag constraint ("" = all documents eligible).
func (q *Query) FilterTag() string { return q.filterTag }

// Year returns the yyyy date constraint ("" = no date filter).
func (q *Query) Year() string { return q.year }

// Skip returns the pagination offset.
func (q *Query) Skip() int { return q.skip }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// Mode returns the ranking strategy.
func (q *Query) Mode() mode.Mode { return q.searchMode }

func validYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
