// Package pages persists crawled pages as indexed store hashes.
package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/astroseek/astroseek/internal/db"
	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/page"
)

// BulkBatchSize is the pipelined HSET batch size for full reindexes.
const BulkBatchSize = 500

// store is the consumer interface for page persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrByIfExists(ctx context.Context, key, field string, delta int64) (bool, error)
	SearchList(ctx context.Context, index, query string, offset, limit int) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements page persistence over db.Store.
type Repo struct {
	store store
}

// New creates a page repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexName returns the FT index name for pages.
func IndexName() string {
	return domain.KeyPrefix + "page:idx"
}

func keyPrefix() string {
	return domain.KeyPrefix + "page:"
}

// Key returns the store key for a page URL.
func Key(url string) string {
	return keyPrefix() + page.Key(url)
}

// EnsureIndex creates the page index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	err := r.store.CreateIndex(ctx, IndexDefinition())
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create page index: %w", err)
	}
	return nil
}

// RecreateIndex drops and recreates the page index (full reindex path).
func (r *Repo) RecreateIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, IndexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop page index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, IndexDefinition()); err != nil {
		return fmt.Errorf("create page index: %w", err)
	}
	return nil
}

// Upsert stores a single page. Existing click counts survive: the counter
// field is never part of the written fields.
func (r *Repo) Upsert(ctx context.Context, p *page.Page) error {
	if err := r.store.HSet(ctx, Key(p.URL()), pageToFields(p)); err != nil {
		return fmt.Errorf("hset %s: %w", p.URL(), err)
	}
	return nil
}

// BulkIndex stores pages in pipelined batches of BulkBatchSize.
func (r *Repo) BulkIndex(ctx context.Context, ps []page.Page) error {
	for start := 0; start < len(ps); start += BulkBatchSize {
		end := start + BulkBatchSize
		if end > len(ps) {
			end = len(ps)
		}

		items := make([]db.HashSetItem, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, db.HashSetItem{
				Key:    Key(ps[i].URL()),
				Fields: pageToFields(&ps[i]),
			})
		}

		if err := r.store.HSetMulti(ctx, items); err != nil {
			return fmt.Errorf("bulk index batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// Get returns a page by exact URL.
func (r *Repo) Get(ctx context.Context, url string) (page.Page, error) {
	fields, err := r.store.HGetAll(ctx, Key(url))
	if err != nil {
		return page.Page{}, fmt.Errorf("hgetall %s: %w", url, err)
	}
	if len(fields) == 0 {
		return page.Page{}, domain.ErrPageNotFound
	}
	return FieldsToPage(fields), nil
}

// List returns up to limit pages with no text constraint.
func (r *Repo) List(ctx context.Context, limit int) ([]page.Page, error) {
	sr, err := r.store.SearchList(ctx, IndexName(), "*", 0, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list pages: %w", domain.ErrSearchBackend, err)
	}

	out := make([]page.Page, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		out = append(out, FieldsToPage(entry.Fields))
	}
	return out, nil
}

// RecordClick atomically bumps the click counter of the page matching the
// exact URL. Returns false (and no error) when no such page is indexed.
// Existence check and increment are one server-side operation, so N
// concurrent clicks on one URL always land as +N and a page deleted
// mid-flight never leaves a counter-only hash behind.
func (r *Repo) RecordClick(ctx context.Context, url string) (bool, error) {
	updated, err := r.store.HIncrByIfExists(ctx, Key(url), FieldClickCount, 1)
	if err != nil {
		return false, fmt.Errorf("incr click_count %s: %w", url, err)
	}
	return updated, nil
}
