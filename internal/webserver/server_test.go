package webserver

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate ...func(*Config)) http.Handler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	cfg := Config{Port: 0, Provider: catalog.NewStaticProvider(c)}
	for _, m := range mutate {
		m(&cfg)
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	return srv.Handler()
}

func TestNew_RequiresProvider(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_DefaultsToLoopback(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	srv, err := New(Config{Provider: catalog.NewStaticProvider(c)})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr())
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, catalog.EmbeddedSource, body["catalogSource"])
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":404`)
}

func TestModelsAreGzipped(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Positive(t, body.Count)
}

func TestGzipCanBeDisabled(t *testing.T) {
	handler := newTestServer(t, func(c *Config) { c.DisableGzip = true })

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t)

	for _, target := range []string{"/api/health", "/api/models/gpt-4o", "/nowhere"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `llmcompare_http_requests_total{method="GET",route="GET /api/health",status="200"} 1`)
	assert.Contains(t, body, `route="GET /api/models/{id}"`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, "llmcompare_http_request_duration_seconds_bucket")
}

func TestMetricsCanBeDisabled(t *testing.T) {
	handler := newTestServer(t, func(c *Config) { c.DisableMetrics = true })

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSAllowList(t *testing.T) {
	handler := newTestServer(t, func(c *Config) { c.AllowedOrigins = []string{"http://localhost:5173"} })

	req := httptest.NewRequest(http.MethodGet, "/api/facets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
