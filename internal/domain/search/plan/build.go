package plan

import (
	"fmt"

	"github.com/astroseek/astroseek/internal/domain/search/mode"
	"github.com/astroseek/astroseek/internal/domain/search/query"
)

// Build translates a validated query into its structured store query.
// Exactly one of the returned variants is non-nil, keyed by the query mode.
func Build(q *query.Query) (*Lexical, *Semantic, error) {
	dates, err := YearRange(q.Year())
	if err != nil {
		return nil, nil, fmt.Errorf("build date filter: %w", err)
	}

	switch q.Mode() {
	case mode.Semantic:
		return nil, &Semantic{
			Text:      q.Normalized(),
			FilterTag: q.FilterTag(),
			Dates:     dates,
			Skip:      q.Skip(),
			Limit:     q.Limit(),
		}, nil
	case mode.Lexical:
		fallthrough
	default:
		return &Lexical{
			Text:      q.Normalized(),
			FilterTag: q.FilterTag(),
			Dates:     dates,
			Skip:      q.Skip(),
			Limit:     q.Limit(),
		}, nil, nil
	}
}
