package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"issue-tracker-api/internal/metrics"
)

// setupTestConfig creates a router config with minimal dependencies
func setupTestConfig(basePath string, m *metrics.Metrics) Config {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	return Config{
		DB:        db,
		Logger:    zap.NewNop(),
		Metrics:   m,
		JWTSecret: "test-secret",
		BasePath:  basePath,
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	r := Setup(setupTestConfig("/api/issues", m))

	for _, path := range []string{"/health", "/api/issues/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
		assert.Contains(t, w.Body.String(), "ok")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	r := Setup(setupTestConfig("/api/issues", m))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_IssueRoutesRequireAuth(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	r := Setup(setupTestConfig("/api/issues", m))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/issues"},
		{http.MethodPost, "/api/issues"},
		{http.MethodGet, "/api/issues/11111111-1111-1111-1111-111111111111"},
		{http.MethodPut, "/api/issues/11111111-1111-1111-1111-111111111111"},
		{http.MethodDelete, "/api/issues/11111111-1111-1111-1111-111111111111"},
		{http.MethodGet, "/api/issues/11111111-1111-1111-1111-111111111111/comments"},
		{http.MethodPost, "/api/issues/11111111-1111-1111-1111-111111111111/comments"},
		{http.MethodGet, "/api/issues/comments/22222222-2222-2222-2222-222222222222"},
		{http.MethodPut, "/api/issues/comments/22222222-2222-2222-2222-222222222222"},
		{http.MethodDelete, "/api/issues/comments/22222222-2222-2222-2222-222222222222"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without a token", route.method, route.path)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	cfg := setupTestConfig("/api/issues", m)
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	r := Setup(cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/issues", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
