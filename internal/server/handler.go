// Package server exposes scoring, querying and export of uploaded tenant
// files over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/ingest"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/Veraticus/the-rent-must-flow/internal/scoring"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultTopN is used when a top request has no n parameter.
const DefaultTopN = 10

// Handler serves the dataset API.
type Handler struct {
	store     *Store
	parser    *ingest.Parser
	cache     *scoring.Cache
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	now       func() time.Time
	maxUpload int64
}

// NewHandler creates a handler registering its metrics with registry.
func NewHandler(store *Store, registry *prometheus.Registry, logger *slog.Logger, maxUpload int64) *Handler {
	return &Handler{
		store:     store,
		parser:    ingest.NewParser(),
		cache:     scoring.NewCache(),
		metrics:   NewMetrics(registry),
		gatherer:  registry,
		logger:    logger,
		now:       time.Now,
		maxUpload: maxUpload,
	}
}

// Routes wires every endpoint with middleware.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recovery(h.logger))
	r.Use(Logger(h.logger, h.metrics))

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleUpload)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.handleDelete)
			r.Get("/tenants", h.handleTenants)
			r.Get("/tenants/{index}", h.handleTenant)
			r.Get("/top", h.handleTop)
			r.Get("/insights", h.handleInsights)
			r.Get("/export/{kind}", h.handleExport)
		})
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"datasets": h.store.Len(),
	})
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	body, err := uploadBody(r)
	if err != nil {
		h.rejectUpload(w, r, err)
		return
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			h.logger.Warn("Failed to close upload", "error", closeErr)
		}
	}()

	dataset, err := h.parser.Parse(r.Context(), body)
	if err != nil {
		h.rejectUpload(w, r, err)
		return
	}

	tenants := scoring.NewEnricher(scoring.WithCache(h.cache)).Enrich(dataset.Tenants)
	id := h.store.Add(&model.Analysis{Dataset: dataset, Tenants: tenants})

	h.metrics.Uploads.Inc()
	h.metrics.TenantsScored.Add(float64(len(tenants)))
	h.metrics.Datasets.Set(float64(h.store.Len()))
	h.logger.Info("Dataset uploaded", "id", id, "tenants", len(tenants), "request_id", GetRequestID(r.Context()))

	writeJSON(w, http.StatusCreated, UploadResponse{ID: id, Tenants: len(tenants)})
}

// uploadBody returns the CSV of a request, taken from the "file" field of a
// multipart form or from the raw body.
func uploadBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: multipart upload needs a file field: %w", common.ErrNoRecords, err)
	}
	return file, nil
}

func (h *Handler) rejectUpload(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.UploadFailures.WithLabelValues(failureReason(err)).Inc()
	h.writeError(w, r, err)
}

func failureReason(err error) string {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return "too_large"
	case errors.Is(err, common.ErrMissingColumns):
		return "missing_columns"
	case errors.Is(err, common.ErrNoRecords):
		return "no_records"
	case errors.Is(err, common.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, common.ErrInvalidField):
		return "invalid_field"
	default:
		return "other"
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.Datasets.Set(float64(h.store.Len()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTenants(w http.ResponseWriter, r *http.Request) {
	analysis, filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	key, err := query.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	dir, err := query.ParseDirection(r.URL.Query().Get("order"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTenantsResponse(query.Sort(filtered, key, dir), len(analysis.Tenants)))
}

func (h *Handler) handleTop(w http.ResponseWriter, r *http.Request) {
	analysis, filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	n := DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, r, fmt.Errorf("%w: n must be a positive integer, got %q", common.ErrInvalidField, raw))
			return
		}
		n = parsed
	}

	writeJSON(w, http.StatusOK, newTenantsResponse(query.Top(filtered, n), len(analysis.Tenants)))
}

func (h *Handler) handleTenant(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.lookup(w, r)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: tenant index %q", common.ErrInvalidField, raw))
		return
	}
	if index < 0 || index >= len(analysis.Tenants) {
		h.writeError(w, r, fmt.Errorf("tenant %d: %w", index, common.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, newTenantResponse(&analysis.Tenants[index], true))
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	analysis, filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, insights.NewReport(filtered, analysis.Tenants))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, err := export.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	analysis, filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": kind.FileName(h.now()),
	}))
	if err := export.WriteCSV(w, analysis.Dataset, kind.Select(filtered, analysis.Tenants)); err != nil {
		h.logger.Error("Failed to stream export", "kind", kind, "error", err, "request_id", GetRequestID(r.Context()))
		return
	}
	h.metrics.Exports.WithLabelValues(string(kind)).Inc()
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*model.Analysis, bool) {
	analysis, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return analysis, true
}

// filtered looks up the dataset and applies the request's filter parameters.
func (h *Handler) filtered(w http.ResponseWriter, r *http.Request) (*model.Analysis, []model.ScoredTenant, bool) {
	analysis, ok := h.lookup(w, r)
	if !ok {
		return nil, nil, false
	}

	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return nil, nil, false
	}
	return analysis, query.Apply(analysis.Tenants, filter), true
}

// ParseFilter reads min_score, category, employment, payment and q.
// category and employment may repeat.
func ParseFilter(values url.Values) (query.Filter, error) {
	f := query.Filter{
		Search:     values.Get("q"),
		Employment: values["employment"],
	}

	if raw := values.Get("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(v >= 0 && v <= 100) {
			return f, fmt.Errorf("%w: min_score must be between 0 and 100, got %q", common.ErrInvalidField, raw)
		}
		f.MinScore = v
	}

	payment, err := model.ParsePaymentMode(values.Get("payment"))
	if err != nil {
		return f, fmt.Errorf("%w: %w", common.ErrInvalidField, err)
	}
	f.Payment = payment

	for _, raw := range values["category"] {
		c, err := model.ParseCategory(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %w", common.ErrInvalidField, err)
		}
		f.Categories = append(f.Categories, c)
	}

	return f, nil
}
