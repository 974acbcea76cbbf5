// Package chi exposes the search API over a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/astroseek/astroseek/internal/domain"
	"github.com/astroseek/astroseek/internal/domain/search/mode"
	"github.com/astroseek/astroseek/internal/domain/search/query"
	feedbackuc "github.com/astroseek/astroseek/internal/usecase/feedback"
	healthuc "github.com/astroseek/astroseek/internal/usecase/health"
	searchuc "github.com/astroseek/astroseek/internal/usecase/search"
	statsuc "github.com/astroseek/astroseek/internal/usecase/stats"
)

// Error response codes.
const (
	codeBadRequest    = "bad_request"
	codeInvalidQuery  = "invalid_query"
	codePageNotFound  = "page_not_found"
	codeSearchBackend = "search_backend_error"
	codeEmbedding     = "embedding_provider_error"
	codeInternal      = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the HTTP API.
type Server struct {
	search        *searchuc.Service
	feedback      *feedbackuc.Service
	stats         *statsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	feedback *feedbackuc.Service,
	stats *statsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		feedback: feedback,
		stats:    stats,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrPageNotFound, http.StatusNotFound, codePageNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbedding),
		sentinelHandler(domain.ErrSearchBackend, http.StatusBadGateway, codeSearchBackend),
	}
	return s
}

// Routes registers all API routes.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api", s.listPages)
	r.Post("/api/search/", s.quickSearch)
	r.Post("/api/click/", s.recordClick)
	r.Get("/api/regular_search/", s.regularSearch)
	r.Get("/api/semantic_search/", s.semanticSearch)
	r.Get("/api/get_docs_per_year_count/", s.docsPerYear)
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metrics)
}

// listPages handles GET /api.
func (s *Server) listPages(w http.ResponseWriter, r *http.Request) {
	records, err := s.search.ListAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": records})
}

// quickResult is the compact payload of the quick-search endpoint. Ranking
// detail (score, click counts) stays internal.
type quickResult struct {
	URL     string `json:"url"`
	Favicon string `json:"favicon,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// quickSearch handles POST /api/search/: a single-page ranked lexical
// search driven by query parameters.
func (s *Server) quickSearch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("query")
	filter := r.URL.Query().Get("filter")

	q, err := query.New(raw, filter, "", 0, query.DefaultLimit, mode.Lexical)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]quickResult, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		results = append(results, quickResult{
			URL:     h.URL,
			Favicon: h.Favicon,
			Title:   h.Title,
			Content: h.Content,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// recordClick handles POST /api/click/.
func (s *Server) recordClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := s.feedback.RecordClick(r.Context(), req.URL)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if outcome == feedbackuc.NotFound {
		writeError(w, http.StatusNotFound, codePageNotFound, "no indexed page for url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "click registered"})
}

// regularSearch handles GET /api/regular_search/.
func (s *Server) regularSearch(w http.ResponseWriter, r *http.Request) {
	s.pagedSearch(w, r, mode.Lexical)
}

// semanticSearch handles GET /api/semantic_search/.
func (s *Server) semanticSearch(w http.ResponseWriter, r *http.Request) {
	s.pagedSearch(w, r, mode.Semantic)
}

func (s *Server) pagedSearch(w http.ResponseWriter, r *http.Request, m mode.Mode) {
	params := r.URL.Query()

	skip, err := intParam(params.Get("skip"), 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	limit, err := intParam(params.Get("limit"), query.DefaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	q, err := query.New(params.Get("search_query"), "", params.Get("year"), skip, limit, m)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// docsPerYear handles GET /api/get_docs_per_year_count/.
func (s *Server) docsPerYear(w http.ResponseWriter, r *http.Request) {
	counts, err := s.stats.DocsPerYear(r.Context(), r.URL.Query().Get("search_query"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"docs_per_year": counts})
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: not an integer: %q", domain.ErrInvalidQuery, raw)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrPageNotFound,
		domain.ErrSearchBackend,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
