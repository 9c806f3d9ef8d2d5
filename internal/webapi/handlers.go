// Package webapi implements the JSON API over a model catalog.
package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/cost"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/query"
	"github.com/spboyer/llmcompare/internal/recommend"
	"github.com/yuin/goldmark"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// Config holds optional handler settings.
type Config struct {
	// DefaultUsage is the workload used by /api/cost when the request does
	// not specify one.
	DefaultUsage cost.Usage
	Logger       *slog.Logger
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	provider catalog.Provider
	usage    cost.Usage
	markdown goldmark.Markdown
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers serving snapshots from provider.
func NewHandlers(provider catalog.Provider, cfg Config) *Handlers {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handlers{
		provider: provider,
		usage:    cfg.DefaultUsage,
		markdown: goldmark.New(),
		logger:   cfg.Logger,
	}
}

// snapshot fetches the current catalog, writing a 503 on failure.
func (h *Handlers) snapshot(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	c, err := h.provider.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("catalog unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return nil, false
	}
	return c, true
}

// lookup resolves the {id} path value, writing a 404 when it is unknown.
func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) (models.Model, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "model id is required")
		return models.Model{}, false
	}
	m, err := c.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "model not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return models.Model{}, false
	}
	return m, true
}

// HandleHealth returns a health check response describing the loaded catalog.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       Version,
		Models:        c.Len(),
		CatalogSource: c.Source(),
		LoadedAt:      c.LoadedAt(),
	})
}

// HandleFacets returns the distinct filter values in the catalog.
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, query.FacetsOf(c.Models()))
}

// HandleModels returns the models matching the request's filters.
func (h *Handlers) HandleModels(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	result, err := query.Apply(c.Models(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ModelListResponse{
		Total:  c.Len(),
		Count:  len(result),
		Query:  q,
		Models: ViewsOf(result),
	})
}

// HandleModelDetail returns one model with its description rendered to HTML.
func (h *Handlers) HandleModelDetail(w http.ResponseWriter, r *http.Request) {
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	m, ok := h.lookup(w, r, c)
	if !ok {
		return
	}

	detail := ModelDetail{ModelView: ViewOf(m)}
	if m.Description != "" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(m.Description), &buf); err != nil {
			h.logger.Warn("rendering description", "id", m.ID, "error", err)
		} else {
			detail.DescriptionHTML = buf.String()
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleAlternatives returns similar, cheaper and better models for {id}.
func (h *Handlers) HandleAlternatives(w http.ResponseWriter, r *http.Request) {
	kind, err := recommend.ParseAlternativeKind(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	ref, ok := h.lookup(w, r, c)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, AlternativesResponse{
		Reference:    ref.ID,
		Kind:         kind,
		Alternatives: recommend.NewEngine().Alternatives(kind, ref, c.Models()),
	})
}

// HandleRecommend scores the catalog for a task and priority.
func (h *Handlers) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	task, err := models.ParseTaskType(params.Get("task"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	priority, err := models.ParsePriority(params.Get("priority"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	constraints, err := parseConstraints(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := recommend.DefaultLimit
	if s := params.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > recommend.DefaultLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(recommend.DefaultLimit))
			return
		}
		limit = n
	}

	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	resp := RecommendResponse{
		Task:     task,
		Priority: priority,
		Weights:  recommend.Weights(priority),
		Results:  recommend.NewEngine().WithLimit(limit).Recommend(c.Models(), task, priority, constraints),
	}
	if !constraints.Unbounded() {
		budget := constraints.MaxCostPer1M
		resp.MaxCostPer1M = &budget
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCost estimates spend for the models selected by ids (or every model
// when ids is absent), cheapest first.
func (h *Handlers) HandleCost(w http.ResponseWriter, r *http.Request) {
	usage, err := parseUsage(r.URL.Query(), h.usage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	selected, err := query.Apply(c.Models(), query.Query{IDs: parseList(r.URL.Query(), "ids")})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	estimates, err := cost.Compare(selected, usage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	usage.Days = usage.PeriodDays()
	writeJSON(w, http.StatusOK, CostResponse{Usage: usage, Estimates: CostRowsOf(estimates)})
}

// HandleCompare returns the requested models in the order given. Unknown
// ids are a 404.
func (h *Handlers) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ids := parseList(r.URL.Query(), "ids")
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}
	c, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	out := make([]ModelView, 0, len(ids))
	for _, id := range ids {
		m, err := c.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		out = append(out, ViewOf(m))
	}
	writeJSON(w, http.StatusOK, CompareResponse{Models: out})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, provider catalog.Provider, cfg Config) {
	h := NewHandlers(provider, cfg)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/facets", h.HandleFacets)
	mux.HandleFunc("GET /api/models", h.HandleModels)
	mux.HandleFunc("GET /api/models/{id}", h.HandleModelDetail)
	mux.HandleFunc("GET /api/models/{id}/alternatives", h.HandleAlternatives)
	mux.HandleFunc("GET /api/recommend", h.HandleRecommend)
	mux.HandleFunc("GET /api/cost", h.HandleCost)
	mux.HandleFunc("GET /api/compare", h.HandleCompare)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
