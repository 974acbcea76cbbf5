package search

import (
	"context"

	"github.com/astroseek/astroseek/internal/db"
)

// mockStore returns canned results and records the queries it received.
type mockStore struct {
	textResult *db.SearchResult
	textErr    error
	lastText   *db.TextQuery

	knnResult *db.SearchResult
	knnErr    error
	lastKNN   *db.KNNQuery

	yearCounts map[string]int
	yearErr    error
	lastHisto  *db.HistogramQuery
}

func (m *mockStore) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.lastText = q
	if m.textErr != nil {
		return nil, m.textErr
	}
	if m.textResult == nil {
		return &db.SearchResult{}, nil
	}
	return m.textResult, nil
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastKNN = q
	if m.knnErr != nil {
		return nil, m.knnErr
	}
	if m.knnResult == nil {
		return &db.SearchResult{}, nil
	}
	return m.knnResult, nil
}

func (m *mockStore) AggregateYearCounts(
	_ context.Context, q *db.HistogramQuery,
) (map[string]int, error) {
	m.lastHisto = q
	if m.yearErr != nil {
		return nil, m.yearErr
	}
	return m.yearCounts, nil
}
