package search

import (
	"context"

	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/page"
	"github.com/astroseek/astroseek/internal/domain/search/hit"
	"github.com/astroseek/astroseek/internal/domain/search/plan"
)

// Repository defines the storage contract for search execution. Both methods
// return the full ordered candidate set plus the total match count; paging
// is applied by the service.
type Repository interface {
	Lexical(ctx context.Context, p *plan.Lexical) ([]hit.Hit, int, error)
	Semantic(ctx context.Context, p *plan.Semantic, vector []float32) ([]hit.Hit, int, error)
}

// PageLister lists indexed pages with no text constraint.
type PageLister interface {
	List(ctx context.Context, limit int) ([]page.Page, error)
}

// Embedder vectorizes query text. Only consulted in semantic mode.
type Embedder = domain.Embedder
