// Package hit holds scored search results prior to projection.
package hit

import (
	"sort"

	"github.com/astroseek/astroseek/internal/domain/page"
)

// Hit is a single scored result (ephemeral, per-response).
type Hit struct {
	page  page.Page
	score float64
}

// New creates a scored hit.
func New(p page.Page, score float64) Hit {
	return Hit{page: p, score: score}
}

// Page returns the underlying document.
func (h *Hit) Page() *page.Page { return &h.page }

// Score returns the relevance score.
func (h *Hit) Score() float64 { return h.score }

// WithScore returns a copy carrying the given score.
func (h *Hit) WithScore(s float64) Hit {
	return Hit{page: h.page, score: s}
}

// SortLexical orders hits by click count descending, then score descending.
// URL breaks remaining ties so ordering is deterministic for identical
// store state.
func SortLexical(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		if a.page.ClickCount() != b.page.ClickCount() {
			return a.page.ClickCount() > b.page.ClickCount()
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.page.URL() < b.page.URL()
	})
}

// SortSemantic orders hits by similarity score descending, URL as tie-break.
func SortSemantic(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		if a.score != b.score {
			return a.score > b.score
		}
		return a.page.URL() < b.page.URL()
	})
}
