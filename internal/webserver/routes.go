package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spboyer/llmcompare/internal/webapi"
)

// buildHandler assembles the mux and wraps it in the middleware chain:
// metrics (outermost), CORS, then gzip.
func buildHandler(cfg Config) (http.Handler, error) {
	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, cfg.Provider, webapi.Config{
		DefaultUsage: cfg.DefaultUsage,
		Logger:       cfg.Logger,
	})
	mux.HandleFunc("/api/", handleAPINotFound)

	var h http.Handler = mux
	if !cfg.DisableGzip {
		h = gzhttp.GzipHandler(h)
	}
	h = webapi.CORSMiddleware(h, cfg.AllowedOrigins...)

	if cfg.DisableMetrics {
		return h, nil
	}

	reg := prometheus.NewRegistry()
	m, err := newMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return m.instrument(h), nil
}

// handleAPINotFound returns a JSON 404 for unknown API paths.
func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{Error: "not found", Code: http.StatusNotFound}) //nolint:errcheck
}
