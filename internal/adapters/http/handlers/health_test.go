package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/mocks"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

func probeRouter(t *testing.T, registry ports.HealthRegistry, bi BuildInfo) *gin.Engine {
	t.Helper()

	router := gin.New()
	NewHealthHandler(registry, bi).RegisterRoutes(router)

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return w
}

func TestNewBuildInfo_KeepsLdflagsValues(t *testing.T) {
	bi := NewBuildInfo("1.4.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.4.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestLiveness(t *testing.T) {
	router := probeRouter(t, mocks.NewMockHealthRegistry(t), BuildInfo{})

	w := get(router, "/-/live")
	require.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(0))
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantCode   int
		wantStatus string
	}{
		{
			name: "store and index healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"badger": {Status: ports.HealthStatusHealthy},
					"bleve":  {Status: ports.HealthStatusHealthy},
				},
			},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "providers down stays in rotation",
			result: &ports.HealthResult{
				Status: ports.HealthStatusDegraded,
				Checks: map[string]*ports.CheckResult{
					"badger":       {Status: ports.HealthStatusHealthy},
					"ai-providers": {Status: ports.HealthStatusDegraded, Optional: true, Message: "circuit open: gemini"},
				},
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name: "store failure takes the pod out",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"badger": {Status: ports.HealthStatusUnhealthy, Message: "database closed"},
				},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			w := get(probeRouter(t, registry, BuildInfo{}), "/-/ready")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Checks, len(tt.result.Checks))
		})
	}
}

func TestBuildInfoHandler(t *testing.T) {
	bi := BuildInfo{Version: "1.2.3", Commit: "def456", BuildTime: "2026-02-01T12:00:00Z", GoVersion: "go1.25.7"}

	w := get(probeRouter(t, mocks.NewMockHealthRegistry(t), bi), "/-/build")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bi, resp)
}

func TestMetricsRoute(t *testing.T) {
	w := get(probeRouter(t, mocks.NewMockHealthRegistry(t), BuildInfo{}), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestReadiness_RunsRegisteredCheckers(t *testing.T) {
	store := mocks.NewMockHealthChecker(t)
	store.EXPECT().Name().Return("badger")
	store.EXPECT().Check(mock.Anything).Return(errors.New("database closed")).Once()

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	w := get(probeRouter(t, registry, BuildInfo{}), "/-/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Checks, "badger")
	assert.Equal(t, ports.HealthStatusUnhealthy, resp.Checks["badger"].Status)
	assert.Equal(t, "database closed", resp.Checks["badger"].Message)
}
