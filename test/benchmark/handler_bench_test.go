package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apihttp "github.com/jsamuelsen/bookmark-service/internal/adapters/http"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/search"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/storage"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

// storeBackedHealth registers the in-memory document store and search index,
// the two checks /-/ready runs in production.
func storeBackedHealth(b *testing.B) *handlers.HealthHandler {
	b.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.Open(storage.Options{InMemory: true, Logger: logger})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = store.Close() })

	index, err := search.Open(search.Options{InMemory: true, Logger: logger})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = index.Close() })

	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		b.Fatal(err)
	}

	if err := registry.Register(index); err != nil {
		b.Fatal(err)
	}

	return handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z"))
}

// BenchmarkLivenessHandler measures the liveness probe. It runs no checks.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc123", ""))
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		handler.Liveness(createGinContext(w, req))
	}
}

// BenchmarkReadinessHandler_StoreAndIndex measures readiness with badger and
// bleve checks registered.
func BenchmarkReadinessHandler_StoreAndIndex(b *testing.B) {
	handler := storeBackedHealth(b)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		handler.Readiness(createGinContext(w, req))

		if w.Code != http.StatusOK {
			b.Fatalf("readiness returned %d", w.Code)
		}
	}
}

// BenchmarkRouter_Unauthenticated measures the full middleware chain up to
// the auth rejection, the cheapest path through /api/v1.
func BenchmarkRouter_Unauthenticated(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := gin.New()
	apihttp.SetupRouter(engine, apihttp.RouterConfig{
		Logger:        logger,
		ServiceName:   "bookmark-service",
		Authenticator: rejectAll{},
		Health:        storeBackedHealth(b),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-token")

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			b.Fatalf("expected 401, got %d", w.Code)
		}
	}
}

// rejectAll fails every token the way an expired JWT would.
type rejectAll struct{}

func (rejectAll) Authenticate(context.Context, string) (*domain.TokenClaims, error) {
	return nil, domain.NewUnauthorizedError("token expired")
}
