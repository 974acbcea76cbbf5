// Package search is the search usecase: it builds the store query from a
// validated request, executes it, and projects hits into result records.
package search

import (
	"context"
	"fmt"

	"github.com/astroseek/astroseek/internal/domain/search/hit"
	"github.com/astroseek/astroseek/internal/domain/search/plan"
	"github.com/astroseek/astroseek/internal/domain/search/query"
	"github.com/astroseek/astroseek/internal/domain/search/snippet"
)

// MaxListResults caps the unfiltered page listing.
const MaxListResults = 200

// Response is one page of search results. MaxPages is derived from the
// total match count and the requested page size.
type Response struct {
	Hits     []snippet.Record `json:"hits"`
	Total    int              `json:"total"`
	MaxPages int              `json:"max_pages"`
}

// Service handles page search across lexical and semantic modes.
type Service struct {
	repo  Repository
	pages PageLister
	embed Embedder
}

// New creates a search service.
func New(repo Repository, pages PageLister, embed Embedder) *Service {
	return &Service{repo: repo, pages: pages, embed: embed}
}

// Search executes one search request. The embedding provider is consulted
// only for semantic queries; lexical searches never spend embedding calls.
func (s *Service) Search(ctx context.Context, q *query.Query) (*Response, error) {
	lex, sem, err := plan.Build(q)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		hits  []hit.Hit
		total int
	)

	switch {
	case sem != nil:
		vec, embErr := s.embed.Embed(ctx, q.Raw())
		if embErr != nil {
			return nil, fmt.Errorf("vectorize query: %w", embErr)
		}
		hits, total, err = s.repo.Semantic(ctx, sem, vec)
	default:
		hits, total, err = s.repo.Lexical(ctx, lex)
	}
	if err != nil {
		return nil, err
	}

	pageHits := paginate(hits, q.Skip(), q.Limit())

	records := make([]snippet.Record, 0, len(pageHits))
	for i := range pageHits {
		records = append(records, snippet.Project(&pageHits[i], q.Normalized()))
	}

	return &Response{
		Hits:     records,
		Total:    total,
		MaxPages: maxPages(total, q.Limit()),
	}, nil
}

// ListAll returns up to MaxListResults indexed pages as unscored records.
func (s *Service) ListAll(ctx context.Context) ([]snippet.Record, error) {
	pages, err := s.pages.List(ctx, MaxListResults)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	records := make([]snippet.Record, 0, len(pages))
	for i := range pages {
		h := hit.New(pages[i], 0)
		records = append(records, snippet.Project(&h, ""))
	}
	return records, nil
}

func paginate(hits []hit.Hit, skip, limit int) []hit.Hit {
	if skip >= len(hits) {
		return nil
	}
	end := skip + limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[skip:end]
}

func maxPages(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
