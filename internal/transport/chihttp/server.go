// Package chihttp exposes the classification and search engine over a JSON
// HTTP API built on chi.
package chihttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/procyonhq/defscope/internal/domain"
	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/domain/search/filter"
	"github.com/procyonhq/defscope/internal/metrics"
	analyticsuc "github.com/procyonhq/defscope/internal/usecase/analytics"
	healthuc "github.com/procyonhq/defscope/internal/usecase/health"
	ingestuc "github.com/procyonhq/defscope/internal/usecase/ingest"
	searchuc "github.com/procyonhq/defscope/internal/usecase/search"
)

const defaultMaxBatchSize = 500

// corpusReader supplies the record set the search side works over.
type corpusReader interface {
	List(ctx context.Context) ([]record.Record, error)
}

// ingester accepts record batches for classification and storage.
type ingester interface {
	Ingest(ctx context.Context, records []record.Record) (ingestuc.Result, error)
}

// Server holds the HTTP handlers for the engine.
type Server struct {
	corpus       corpusReader
	ingest       ingester
	search       *searchuc.Service
	analytics    *analyticsuc.Service
	health       *healthuc.Service
	logger       *zap.Logger
	maxBatchSize int
}

// NewServer creates an HTTP API server.
func NewServer(
	corpus corpusReader,
	ingest ingester,
	search *searchuc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		corpus:       corpus,
		ingest:       ingest,
		search:       search,
		analytics:    analytics,
		health:       health,
		logger:       logger,
		maxBatchSize: defaultMaxBatchSize,
	}
}

// WithMaxBatchSize overrides the ingest batch cap.
func (s *Server) WithMaxBatchSize(n int) *Server {
	if n > 0 {
		s.maxBatchSize = n
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/records", s.IngestRecords)
		r.Get("/search", s.SearchRecords)
		r.Get("/suggest", s.SuggestQueries)
		r.Get("/analytics", s.AnalyzeRecords)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// IngestRecords handles POST /api/v1/records.
func (s *Server) IngestRecords(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if len(req.Records) == 0 || len(req.Records) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, "validation_failed",
			fmt.Sprintf("records count must be between 1 and %d", s.maxBatchSize))
		return
	}

	now := time.Now().UTC()
	records := make([]record.Record, 0, len(req.Records))
	for _, item := range req.Records {
		rec, err := recordFromRequest(item, now)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		records = append(records, rec)
	}

	res, err := s.ingest.Ingest(r.Context(), records)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.ObserveClassification(res.Accepted, res.Rejected)

	writeJSON(w, http.StatusOK, ingestResponse{
		Accepted: res.Accepted,
		Rejected: res.Rejected,
	})
}

// SearchRecords handles GET /api/v1/search.
func (s *Server) SearchRecords(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	records, err := s.corpus.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := s.search.Search(records, r.URL.Query().Get("q"), filters)
	metrics.ObserveSearch(len(results))

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToItem(&results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{Items: items, Total: len(items)})
}

// SuggestQueries handles GET /api/v1/suggest.
func (s *Server) SuggestQueries(w http.ResponseWriter, r *http.Request) {
	records, err := s.corpus.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	suggestions := s.search.Suggest(r.URL.Query().Get("q"), records)
	if suggestions == nil {
		suggestions = []string{}
	}

	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// AnalyzeRecords handles GET /api/v1/analytics.
func (s *Server) AnalyzeRecords(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	records, err := s.corpus.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	report := s.analytics.Analyze(records, r.URL.Query().Get("q"), filters)
	writeJSON(w, http.StatusOK, reportToResponse(report))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToResponse(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// filtersFromQuery builds structured filters from URL query parameters.
func filtersFromQuery(r *http.Request) (filter.Filters, error) {
	q := r.URL.Query()
	var opts []filter.Option

	if bodies := splitParam(q.Get("funding_body")); len(bodies) > 0 {
		opts = append(opts, filter.WithFundingBodies(bodies...))
	}
	if areas := splitParam(q.Get("tech_area")); len(areas) > 0 {
		opts = append(opts, filter.WithTechAreas(areas...))
	}

	valueMin, err := floatParam(q.Get("value_min"))
	if err != nil {
		return filter.Filters{}, fmt.Errorf("value_min: %w", err)
	}
	valueMax, err := floatParam(q.Get("value_max"))
	if err != nil {
		return filter.Filters{}, fmt.Errorf("value_max: %w", err)
	}
	if valueMin != nil || valueMax != nil {
		opts = append(opts, filter.WithValueRange(valueMin, valueMax))
	}

	if raw := q.Get("deadline_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Filters{}, fmt.Errorf("deadline_days: %w", err)
		}
		opts = append(opts, filter.WithDeadlineDays(days))
	}
	if q.Get("sme_friendly") == "true" {
		opts = append(opts, filter.WithSMEFriendly())
	}
	if status := q.Get("status"); status != "" {
		opts = append(opts, filter.WithStatus(status))
	}

	filters, err := filter.New(opts...)
	if err != nil {
		return filter.Filters{}, fmt.Errorf("build filters: %w", err)
	}
	return filters, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecordNotFound,
		domain.ErrRecordExists,
		domain.ErrInvalidRecord,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "record_not_found", msg)
	case errors.Is(err, domain.ErrRecordExists):
		writeError(w, http.StatusConflict, "record_already_exists", msg)
	case errors.Is(err, domain.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, "validation_failed", msg)
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
