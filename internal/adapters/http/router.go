package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the server in traces.
	ServiceName string

	// Authenticator verifies Bearer tokens on protected routes.
	Authenticator middleware.Authenticator

	// Limiter enforces request budgets. Nil disables rate limiting; pass an
	// untyped nil, not a nil pointer.
	Limiter middleware.Limiter

	// Timeout is the default request timeout.
	Timeout time.Duration

	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Bookmarks *handlers.BookmarkHandler
	Folders   *handlers.FolderHandler
	Tags      *handlers.TagHandler
	Admin     *handlers.AdminHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline for /api/v1
//  7. Rate limit - per client IP on public routes, per user once authenticated
//  8. Auth - Bearer token verification, then role checks for /admin
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/auth (public): register, login, refresh
//   - /api/v1/ (protected): everything else
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Tracing(cfg.ServiceName),
		telemetry.Metrics(),
		middleware.Logging(cfg.Logger),
	)

	// Probes bypass auth, limits and timeouts.
	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Deadline(timeout))

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	public := rg.Group("")
	public.Use(middleware.RateLimit(cfg.Limiter, middleware.ClientIPKey))

	if cfg.Auth != nil {
		cfg.Auth.RegisterPublicRoutes(public)
	}

	// Per-user limits need the verified subject, so auth runs first here.
	protected := rg.Group("")
	protected.Use(
		middleware.RequireAuth(cfg.Authenticator),
		middleware.RateLimit(cfg.Limiter, middleware.UserKey),
	)

	if cfg.Auth != nil {
		cfg.Auth.RegisterAuthRoutes(protected)
	}

	if cfg.Bookmarks != nil {
		cfg.Bookmarks.RegisterBookmarkRoutes(protected)
	}

	if cfg.Folders != nil {
		cfg.Folders.RegisterFolderRoutes(protected)
	}

	if cfg.Tags != nil {
		cfg.Tags.RegisterTagRoutes(protected)
	}

	if cfg.Admin != nil {
		admin := protected.Group("")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		cfg.Admin.RegisterAdminRoutes(admin)
	}
}
