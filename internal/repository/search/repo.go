// Package search executes structured queries against the page index and
// applies the ranking contract to the raw hits.
package search

import (
	"context"
	"fmt"

	"github.com/astroseek/astroseek/internal/db"
	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/search/hit"
	"github.com/astroseek/astroseek/internal/domain/search/plan"
	"github.com/astroseek/astroseek/internal/repository/pages"
)

// DefaultCandidatePool bounds how many raw candidates are pulled from the
// store for client-side rescoring and the two-key sort. FT.SEARCH sorts by
// a single key; the (click_count, score) order is applied here instead.
const DefaultCandidatePool = 1000

// textFields is the should-match field set for lexical queries.
var textFields = []string{pages.FieldTitle, pages.FieldHeadings, pages.FieldContent}

// store is the consumer interface for search execution (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	AggregateYearCounts(ctx context.Context, q *db.HistogramQuery) (map[string]int, error)
}

// Repo executes search plans.
type Repo struct {
	store store
	pool  int
}

// New creates a search repository with the default candidate pool.
func New(s store) *Repo {
	return &Repo{store: s, pool: DefaultCandidatePool}
}

// WithCandidatePool overrides the rescoring candidate window.
func (r *Repo) WithCandidatePool(n int) *Repo {
	if n > 0 {
		r.pool = n
	}
	return r
}

// Lexical runs the weighted lexical query and returns the fully ordered
// hits plus the total match count. Scoring: the store's base relevance is
// multiplied by the summed boost weights of matched clauses, then hits are
// ordered by click count descending, boosted score descending.
func (r *Repo) Lexical(ctx context.Context, p *plan.Lexical) ([]hit.Hit, int, error) {
	topK := r.pool
	if need := p.Skip + p.Limit; need > topK {
		topK = need
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    pages.IndexName(),
		Fields:       textFields,
		Query:        p.Text,
		FilterTag:    p.FilterTag,
		Dates:        toDBRange(p.Dates),
		TopK:         topK,
		ReturnFields: pages.ReturnFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: search text: %w", domain.ErrSearchBackend, err)
	}

	hits := make([]hit.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		pg := pages.FieldsToPage(entry.Fields)
		boost := plan.Boosts(
			pg.Title(), pg.Headings(), pg.Content(), pg.Filters(),
			p.Text, p.FilterTag,
		)
		hits = append(hits, hit.New(pg, entry.Score*boost))
	}

	hit.SortLexical(hits)
	return hits, sr.Total, nil
}

// Semantic runs the KNN query, converts cosine distances into offset
// similarity scores, and drops hits below the score floor. The total
// reflects the post-floor count: excluded hits are not matches.
func (r *Repo) Semantic(ctx context.Context, p *plan.Semantic, vector []float32) ([]hit.Hit, int, error) {
	topK := r.pool
	if need := p.Skip + p.Limit; need > topK {
		topK = need
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    pages.IndexName(),
		Vector:       vector,
		K:            topK,
		FilterTag:    p.FilterTag,
		Dates:        toDBRange(p.Dates),
		ReturnFields: pages.ReturnFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: search knn: %w", domain.ErrSearchBackend, err)
	}

	hits := make([]hit.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		score := plan.SemanticScore(entry.Score)
		if score < plan.SemanticMinScore {
			continue
		}
		hits = append(hits, hit.New(pages.FieldsToPage(entry.Fields), score))
	}

	hit.SortSemantic(hits)
	return hits, len(hits), nil
}

// YearHistogram counts matching documents per calendar year.
func (r *Repo) YearHistogram(ctx context.Context, normalizedText string) (map[string]int, error) {
	counts, err := r.store.AggregateYearCounts(ctx, &db.HistogramQuery{
		IndexName: pages.IndexName(),
		Fields:    []string{pages.FieldTitle, pages.FieldContent},
		Query:     normalizedText,
		TimeField: pages.FieldTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: year histogram: %w", domain.ErrSearchBackend, err)
	}
	return counts, nil
}

func toDBRange(tr *plan.TimeRange) *db.TimeRange {
	if tr == nil {
		return nil
	}
	return &db.TimeRange{From: tr.From, To: tr.To}
}
