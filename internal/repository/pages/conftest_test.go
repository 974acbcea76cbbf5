package pages

import (
	"context"
	"strconv"

	"github.com/astroseek/astroseek/internal/db"
)

// mockStore records store calls for repository tests.
type mockStore struct {
	hashes map[string]map[string]string

	hsetCalls      []string
	hsetMultiSizes []int
	incrCalls      []string

	createIndexErr error
	dropIndexErr   error
	searchListFn   func(index, query string, offset, limit int) (*db.SearchResult, error)
}

func newMockStore() *mockStore {
	return &mockStore{hashes: make(map[string]map[string]string)}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.hsetCalls = append(m.hsetCalls, key)
	existing := m.hashes[key]
	if existing == nil {
		existing = make(map[string]string)
		m.hashes[key] = existing
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	m.hsetMultiSizes = append(m.hsetMultiSizes, len(items))
	for _, item := range items {
		if err := m.HSet(ctx, item.Key, item.Fields); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hashes[key], nil
}

func (m *mockStore) HIncrByIfExists(_ context.Context, key, field string, delta int64) (bool, error) {
	fields, ok := m.hashes[key]
	if !ok {
		return false, nil
	}
	m.incrCalls = append(m.incrCalls, key)
	var n int64
	if v, ok := fields[field]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			n = parsed
		}
	}
	fields[field] = strconv.FormatInt(n+delta, 10)
	return true, nil
}

func (m *mockStore) SearchList(
	_ context.Context, index, query string, offset, limit int,
) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(index, query, offset, limit)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(_ context.Context, _ *db.IndexDefinition) error {
	return m.createIndexErr
}

func (m *mockStore) DropIndex(_ context.Context, _ string) error {
	return m.dropIndexErr
}

func (m *mockStore) IndexExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}
