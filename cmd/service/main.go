// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/auth"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/fetcher"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/flags"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/search"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/storage"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/platform/ratelimit"
	"github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open storage and the search index
	store, err := storage.Open(storage.Options{
		Path:     cfg.Storage.Path,
		InMemory: cfg.Storage.InMemory,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer closeWithLog(logger, "storage", store.Close)

	index, err := search.Open(search.Options{
		Path:     cfg.Search.Path,
		InMemory: cfg.Search.InMemory,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("opening search index: %w", err)
	}

	defer closeWithLog(logger, "search index", index.Close)

	// 6. Build the AI providers behind their anti-corruption layer
	providers, err := newProviderRegistry(cfg, logger)
	if err != nil {
		return err
	}

	// 7. Create health registry
	healthRegistry := ports.NewHealthRegistry()
	for _, checker := range []ports.HealthChecker{store, index, providers} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	// 8. Analysis pipeline: fetcher, dispatcher, enricher and workers
	metrics, err := telemetry.NewAnalysisMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering analysis metrics: %w", err)
	}

	featureFlags := flags.New(cfg.Features)
	bookmarks := store.Bookmarks()

	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Providers: providers,
		Metrics:   metrics,
		Logger:    logger,
		Limits: app.ExcerptLimits{
			Summary:  cfg.Analysis.SummaryExcerptRunes,
			Tags:     cfg.Analysis.TagsExcerptRunes,
			Category: cfg.Analysis.CategoryExcerptRunes,
			MaxTags:  cfg.Analysis.MaxTags,
		},
	})

	enricher := app.NewEnricher(app.EnricherConfig{
		Bookmarks:  bookmarks,
		Vocabulary: bookmarks,
		Users:      store.Users(),
		Fetcher: fetcher.New(fetcher.Config{
			Timeout:         cfg.Fetcher.Timeout,
			MaxBodyBytes:    cfg.Fetcher.MaxBodyBytes,
			MaxContentRunes: cfg.Fetcher.MaxContentRunes,
			UserAgent:       cfg.Fetcher.UserAgent,
			Logger:          logger,
		}),
		Analyzer:        dispatcher,
		Search:          index,
		Flags:           featureFlags,
		DefaultProvider: defaultProvider(&cfg.AI),
		Logger:          logger,
	})

	worker := app.NewEnrichmentWorker(app.EnrichmentWorkerConfig{
		Handler:    enricher.Enrich,
		Workers:    cfg.Analysis.Workers,
		QueueSize:  cfg.Analysis.QueueSize,
		JobTimeout: cfg.Server.RequestTimeout,
		Metrics:    metrics,
		Logger:     logger,
	})
	worker.Start(ctx)

	// 9. Auth: token issuer, password hasher and the revocation list
	issuer, err := auth.NewJWTIssuer(auth.IssuerConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}

	// Revoked ids must outlive the longest token.
	revoked := auth.NewRevocationList(
		auth.NewExpiringStore[string, time.Time](cfg.Auth.StateCapacity, cfg.Auth.RefreshTokenTTL),
	)

	// 10. Create application services
	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:   store.Users(),
		Hasher:  auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:  issuer,
		Revoked: revoked,
		Logger:  logger,
	})

	bookmarkService := app.NewBookmarkService(app.BookmarkServiceConfig{
		Bookmarks: bookmarks,
		Folders:   store.Folders(),
		Search:    index,
		Flags:     featureFlags,
		Enricher:  enricher,
		Queue:     worker,
		Logger:    logger,
	})

	tagService := app.NewTagService(app.TagServiceConfig{
		Bookmarks:  bookmarks,
		Vocabulary: bookmarks,
		Enricher:   enricher,
		Workers:    cfg.Analysis.Workers,
		Logger:     logger,
	})

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Authenticator: authService,
		Limiter:       newLimiter(&cfg.RateLimit),
		Timeout:       cfg.Server.RequestTimeout,
		Health:        handlers.NewHealthHandler(healthRegistry, buildInfo),
		Auth:          handlers.NewAuthHandler(authService),
		Bookmarks:     handlers.NewBookmarkHandler(bookmarkService),
		Folders:       handlers.NewFolderHandler(app.NewFolderService(store.Folders(), logger)),
		Tags:          handlers.NewTagHandler(tagService),
		Admin:         handlers.NewAdminHandler(app.NewAdminService(bookmarks, index, worker, logger)),
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		_ = worker.Stop(ctx)
		return err
	}

	// 15. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, worker, serverErr, cfg.Server.ShutdownTimeout)
}

// newProviderRegistry creates one resilient HTTP client per AI backend.
func newProviderRegistry(cfg *config.Config, logger *slog.Logger) (*acl.ProviderRegistry, error) {
	endpoint := func(kind domain.ProviderKind, pc config.ProviderEndpointConfig) (*acl.Endpoint, error) {
		client, err := clients.New(&clients.Config{
			BaseURL:     pc.BaseURL,
			ServiceName: string(kind),
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s client: %w", kind, err)
		}

		return &acl.Endpoint{Client: client, Model: pc.Model}, nil
	}

	openAI, err := endpoint(domain.ProviderOpenAI, cfg.AI.OpenAI)
	if err != nil {
		return nil, err
	}

	gemini, err := endpoint(domain.ProviderGemini, cfg.AI.Gemini)
	if err != nil {
		return nil, err
	}

	return acl.NewProviderRegistry(acl.ProviderRegistryConfig{
		OpenAI: openAI,
		Gemini: gemini,
		Logger: logger,
	}), nil
}

// defaultProvider is the server-wide selection for users without their own key.
func defaultProvider(cfg *config.AIConfig) domain.ProviderConfig {
	kind := domain.ProviderKind(cfg.DefaultProvider)

	ep := cfg.OpenAI
	if kind == domain.ProviderGemini {
		ep = cfg.Gemini
	}

	return domain.ProviderConfig{Provider: kind, APIKey: ep.APIKey, Model: ep.Model}
}

// newLimiter returns nil when rate limiting is disabled.
func newLimiter(cfg *config.RateLimitConfig) middleware.Limiter {
	if !cfg.Enabled {
		return nil
	}

	return ratelimit.New(cfg.RequestsPerSecond, cfg.Burst, cfg.MaxKeys, cfg.TTL)
}

func closeWithLog(logger *slog.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("close failed", slog.String("resource", what), slog.Any("error", err))
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then drains the HTTP server and the enrichment workers.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	worker *app.EnrichmentWorker,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		_ = worker.Stop(ctx)
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Requests can no longer enqueue; finish or abandon queued analyses.
	if err := worker.Stop(shutdownCtx); err != nil {
		logger.Warn("enrichment workers did not drain", slog.Any("error", err))
	}

	logger.Info("shutdown complete")

	return nil
}
