package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/page"
	"github.com/astroseek/astroseek/internal/domain/search/hit"
	"github.com/astroseek/astroseek/internal/domain/search/plan"
	feedbackuc "github.com/astroseek/astroseek/internal/usecase/feedback"
	healthuc "github.com/astroseek/astroseek/internal/usecase/health"
	searchuc "github.com/astroseek/astroseek/internal/usecase/search"
	statsuc "github.com/astroseek/astroseek/internal/usecase/stats"
)

// --- Mocks ---

type mockSearchRepo struct {
	hits  []hit.Hit
	total int
	err   error
}

func (m *mockSearchRepo) Lexical(_ context.Context, _ *plan.Lexical) ([]hit.Hit, int, error) {
	return m.hits, m.total, m.err
}

func (m *mockSearchRepo) Semantic(_ context.Context, _ *plan.Semantic, _ []float32) ([]hit.Hit, int, error) {
	return m.hits, m.total, m.err
}

type mockLister struct {
	pages []page.Page
	err   error
}

func (m *mockLister) List(_ context.Context, _ int) ([]page.Page, error) {
	return m.pages, m.err
}

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return m.vec, m.err
}

type mockClicks struct {
	updated bool
	err     error
}

func (m *mockClicks) RecordClick(_ context.Context, _ string) (bool, error) {
	return m.updated, m.err
}

type mockYears struct {
	counts map[string]int
	err    error
}

func (m *mockYears) YearHistogram(_ context.Context, _ string) (map[string]int, error) {
	return m.counts, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type deps struct {
	repo   *mockSearchRepo
	lister *mockLister
	embed  *mockEmbedder
	clicks *mockClicks
	years  *mockYears
	pinger *mockPinger
}

func newTestRouter(t *testing.T, d deps) *chi.Mux {
	t.Helper()

	if d.repo == nil {
		d.repo = &mockSearchRepo{}
	}
	if d.lister == nil {
		d.lister = &mockLister{}
	}
	if d.embed == nil {
		d.embed = &mockEmbedder{vec: []float32{0.1}}
	}
	if d.clicks == nil {
		d.clicks = &mockClicks{updated: true}
	}
	if d.years == nil {
		d.years = &mockYears{counts: map[string]int{}}
	}
	if d.pinger == nil {
		d.pinger = &mockPinger{}
	}

	srv := NewServer(
		searchuc.New(d.repo, d.lister, d.embed),
		feedbackuc.New(d.clicks),
		statsuc.New(d.years),
		healthuc.New(d.pinger, nil),
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func somePage(t *testing.T, url string) page.Page {
	t.Helper()
	return page.Reconstruct(url, "", "Mars Rover", "", "all about mars", nil, 2,
		time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), nil)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

// --- Tests ---

func TestRegularSearch_OK(t *testing.T) {
	repo := &mockSearchRepo{
		hits:  []hit.Hit{hit.New(somePage(t, "https://a"), 2.5)},
		total: 1,
	}
	r := newTestRouter(t, deps{repo: repo})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regular_search/?search_query=mars", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	hits, ok := body["hits"].([]any)
	if !ok || len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %v", body["hits"])
	}
	if body["max_pages"].(float64) != 1 {
		t.Errorf("expected max_pages 1, got %v", body["max_pages"])
	}
}

func TestRegularSearch_InvalidLimit(t *testing.T) {
	r := newTestRouter(t, deps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regular_search/?search_query=mars&limit=0", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["code"] != codeInvalidQuery {
		t.Errorf("expected %s code", codeInvalidQuery)
	}
}

func TestRegularSearch_NonNumericSkip(t *testing.T) {
	r := newTestRouter(t, deps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regular_search/?search_query=mars&skip=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegularSearch_BackendDown(t *testing.T) {
	repo := &mockSearchRepo{err: domain.ErrSearchBackend}
	r := newTestRouter(t, deps{repo: repo})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regular_search/?search_query=mars", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestSemanticSearch_EmbedderDown(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	r := newTestRouter(t, deps{embed: embed})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/semantic_search/?search_query=mars", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if decodeBody(t, w)["code"] != codeEmbedding {
		t.Errorf("expected %s code", codeEmbedding)
	}
}

func TestQuickSearch_CompactPayload(t *testing.T) {
	repo := &mockSearchRepo{
		hits:  []hit.Hit{hit.New(somePage(t, "https://a"), 2.5)},
		total: 1,
	}
	r := newTestRouter(t, deps{repo: repo})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/search/?query=mars", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	results, ok := body["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", body["results"])
	}

	first := results[0].(map[string]any)
	if first["url"] != "https://a" || first["title"] != "Mars Rover" {
		t.Errorf("unexpected result: %v", first)
	}
	for _, hidden := range []string{"score", "click_count", "headings", "filters"} {
		if _, leaked := first[hidden]; leaked {
			t.Errorf("field %q must not appear in the quick-search payload", hidden)
		}
	}
}

func TestClick_Registered(t *testing.T) {
	r := newTestRouter(t, deps{clicks: &mockClicks{updated: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/click/", strings.NewReader(`{"url":"https://a"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestClick_UnknownURL(t *testing.T) {
	r := newTestRouter(t, deps{clicks: &mockClicks{updated: false}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/click/", strings.NewReader(`{"url":"https://gone"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestClick_BadBody(t *testing.T) {
	r := newTestRouter(t, deps{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/click/", strings.NewReader("{"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDocsPerYear(t *testing.T) {
	years := &mockYears{counts: map[string]int{"2020": 2}}
	r := newTestRouter(t, deps{years: years})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/get_docs_per_year_count/?search_query=mars", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	counts, ok := body["docs_per_year"].(map[string]any)
	if !ok || counts["2020"].(float64) != 2 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestListAll(t *testing.T) {
	lister := &mockLister{pages: []page.Page{somePage(t, "https://a")}}
	r := newTestRouter(t, deps{lister: lister})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if results, ok := body["results"].([]any); !ok || len(results) != 1 {
		t.Errorf("expected 1 result, got %v", body["results"])
	}
}

func TestHealth_Degraded(t *testing.T) {
	r := newTestRouter(t, deps{pinger: &mockPinger{err: domain.ErrSearchBackend}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
