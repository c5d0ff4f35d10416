// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// BuildInfo identifies the running binary on /-/build.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// NewBuildInfo returns the ldflags values, filling a missing commit or build
// time from the VCS stamp the Go toolchain embeds.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	bi := BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "" {
				bi.Commit = s.Value
			}
		case "vcs.time":
			if bi.BuildTime == "" {
				bi.BuildTime = s.Value
			}
		case "vcs.modified":
			bi.Dirty = s.Value == "true"
		}
	}

	return bi
}

// HealthHandler serves the /-/ probe and introspection routes.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	started   time.Time
}

// NewHealthHandler creates a health handler over registry.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		started:   time.Now(),
	}
}

type livenessResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// Liveness answers 200 while the process can serve HTTP. It checks nothing.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs the registered checks. A degraded service, one whose AI
// providers are failing, stays in rotation with 200; only a failed required
// check such as the badger store returns 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// BuildInfoHandler serves /-/build.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the default Prometheus registry, which holds the
// analysis collectors and the Go runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterRoutes mounts the probes under /-/:
//
//	GET /-/live
//	GET /-/ready
//	GET /-/build
//	GET /-/metrics
func (h *HealthHandler) RegisterRoutes(engine *gin.Engine) {
	probes := engine.Group("/-")
	probes.GET("/live", h.Liveness)
	probes.GET("/ready", h.Readiness)
	probes.GET("/build", h.BuildInfoHandler)
	probes.GET("/metrics", gin.WrapH(MetricsHandler()))
}
