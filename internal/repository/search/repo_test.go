package search

import (
	"context"
	"errors"
	"testing"

	"github.com/astroseek/astroseek/internal/db"
	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/search/plan"
	"github.com/astroseek/astroseek/internal/repository/pages"
)

func entry(url, title string, clicks string, score float64) db.SearchEntry {
	fields := map[string]string{
		pages.FieldURL:   url,
		pages.FieldTitle: title,
	}
	if clicks != "" {
		fields[pages.FieldClickCount] = clicks
	}
	return db.SearchEntry{Key: "k:" + url, Score: score, Fields: fields}
}

func TestLexical_BoostsAndClickOrder(t *testing.T) {
	store := &mockStore{textResult: &db.SearchResult{
		Total: 3,
		Entries: []db.SearchEntry{
			// Title match: base 2.0 * 5 = 10, no clicks.
			entry("https://title-match", "mars landing", "", 2.0),
			// No field match: base 9.0 * 1 = 9, no clicks.
			entry("https://plain", "venus", "", 9.0),
			// Weak match but clicked: clicks dominate the ordering.
			entry("https://clicked", "about mars", "4", 0.5),
		},
	}}
	repo := New(store)

	hits, total, err := repo.Lexical(context.Background(), &plan.Lexical{
		Text: "mars", Skip: 0, Limit: 10,
	})
	if err != nil {
		t.Fatalf("lexical: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	wantOrder := []string{"https://clicked", "https://title-match", "https://plain"}
	for i, want := range wantOrder {
		if got := hits[i].Page().URL(); got != want {
			t.Fatalf("order[%d] = %q, want %q", i, got, want)
		}
	}
	if hits[1].Score() != 10.0 {
		t.Errorf("boosted score = %v, want 10.0", hits[1].Score())
	}
	if hits[2].Score() != 9.0 {
		t.Errorf("unmatched score = %v, want neutral 9.0", hits[2].Score())
	}
}

func TestLexical_QueryShape(t *testing.T) {
	store := &mockStore{}
	repo := New(store)

	_, _, err := repo.Lexical(context.Background(), &plan.Lexical{
		Text:      "mars",
		FilterTag: "space",
		Dates:     &plan.TimeRange{From: 100, To: 200},
		Skip:      0,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("lexical: %v", err)
	}

	q := store.lastText
	if q.IndexName != pages.IndexName() {
		t.Errorf("index = %q", q.IndexName)
	}
	if q.FilterTag != "space" || q.Dates == nil || q.Dates.From != 100 {
		t.Errorf("filters = %+v", q)
	}
	if q.TopK != DefaultCandidatePool {
		t.Errorf("topK = %d, want candidate pool %d", q.TopK, DefaultCandidatePool)
	}
	if len(q.Fields) != 3 {
		t.Errorf("fields = %v", q.Fields)
	}
}

func TestLexical_PoolCoversDeepPagination(t *testing.T) {
	store := &mockStore{}
	repo := New(store).WithCandidatePool(50)

	_, _, err := repo.Lexical(context.Background(), &plan.Lexical{
		Text: "mars", Skip: 90, Limit: 20,
	})
	if err != nil {
		t.Fatalf("lexical: %v", err)
	}
	if store.lastText.TopK != 110 {
		t.Errorf("topK = %d, want skip+limit 110", store.lastText.TopK)
	}
}

func TestLexical_BackendError(t *testing.T) {
	store := &mockStore{textErr: errors.New("connection reset")}
	repo := New(store)

	_, _, err := repo.Lexical(context.Background(), &plan.Lexical{Text: "mars", Limit: 10})
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Errorf("expected ErrSearchBackend, got %v", err)
	}
}

func TestSemantic_FloorAndTotal(t *testing.T) {
	store := &mockStore{knnResult: &db.SearchResult{
		Total: 3,
		Entries: []db.SearchEntry{
			// Entry scores carry raw cosine distance: 0.1 and 0.7 convert
			// to 1.9 and 1.3 (kept), 0.9 converts to 1.1 (below the floor).
			entry("https://close", "a", "", 0.1),
			entry("https://edge", "b", "", 0.7),
			entry("https://far", "c", "", 0.9),
		},
	}}
	repo := New(store)

	hits, total, err := repo.Semantic(context.Background(), &plan.Semantic{
		Text: "mars", Limit: 10,
	}, []float32{0.1, 0.2})
	if err != nil {
		t.Fatalf("semantic: %v", err)
	}

	// Total reflects hits above the floor, not the raw store total.
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(hits) != 2 || hits[0].Page().URL() != "https://close" {
		t.Errorf("hits = %d, first = %q", len(hits), hits[0].Page().URL())
	}
	if hits[0].Score() != 1.9 {
		t.Errorf("score = %v, want 1.9", hits[0].Score())
	}
}

func TestSemantic_BackendError(t *testing.T) {
	store := &mockStore{knnErr: errors.New("index gone")}
	repo := New(store)

	_, _, err := repo.Semantic(context.Background(),
		&plan.Semantic{Text: "mars", Limit: 10}, []float32{0.1})
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Errorf("expected ErrSearchBackend, got %v", err)
	}
}

func TestYearHistogram(t *testing.T) {
	store := &mockStore{yearCounts: map[string]int{"2020": 3, "2021": 7}}
	repo := New(store)

	counts, err := repo.YearHistogram(context.Background(), "mars rover")
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if counts["2021"] != 7 {
		t.Errorf("counts = %v", counts)
	}
	if store.lastHisto.Query != "mars rover" || store.lastHisto.TimeField != pages.FieldTimestamp {
		t.Errorf("histogram query = %+v", store.lastHisto)
	}
}

func TestYearHistogram_BackendError(t *testing.T) {
	store := &mockStore{yearErr: errors.New("down")}
	repo := New(store)

	_, err := repo.YearHistogram(context.Background(), "mars")
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Errorf("expected ErrSearchBackend, got %v", err)
	}
}
