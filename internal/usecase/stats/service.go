// Package stats serves corpus statistics over the page index.
package stats

import (
	"context"
	"fmt"

	"github.com/astroseek/astroseek/internal/domain/search/normalize"
)

// Service handles statistics queries.
type Service struct {
	years YearCounter
}

// New creates a stats service.
func New(years YearCounter) *Service {
	return &Service{years: years}
}

// DocsPerYear counts matching documents per publication year. The query
// text gets the same normalization as search; an empty query counts the
// whole corpus.
func (s *Service) DocsPerYear(ctx context.Context, rawQuery string) (map[string]int, error) {
	counts, err := s.years.YearHistogram(ctx, normalize.Normalize(rawQuery))
	if err != nil {
		return nil, fmt.Errorf("docs per year: %w", err)
	}
	return counts, nil
}
