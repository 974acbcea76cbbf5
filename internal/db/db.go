// Package db defines the document-store facade consumed by repositories.
package db

import (
	"context"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	KVStore
	IndexManager
	Searcher
	Aggregator
	Close()
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based document operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// HIncrByIfExists atomically increments a hash field server-side, but
	// only when the key already exists; returns false otherwise. Existence
	// check and increment run as one store call, so a key deleted in
	// between can never be re-materialized by the increment. The only
	// mutation path for shared counters.
	HIncrByIfExists(ctx context.Context, key, field string, delta int64) (bool, error)
	Del(ctx context.Context, key string) error
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int) (*SearchResult, error)
}

// Aggregator provides facet aggregations over FT indexes.
type Aggregator interface {
	// AggregateYearCounts buckets matching documents by calendar year of
	// a numeric unix-seconds field, returning yyyy label -> count.
	AggregateYearCounts(ctx context.Context, q *HistogramQuery) (map[string]int, error)
}
