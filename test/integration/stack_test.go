//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/auth"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/fetcher"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/flags"
	apihttp "github.com/jsamuelsen/bookmark-service/internal/adapters/http"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/search"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/storage"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

const testSecret = "integration-test-secret-0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAI answers chat completion requests the way a well-behaved model would.
type fakeAI struct {
	*httptest.Server
	calls atomic.Int64
	fail  atomic.Bool
	keys  chan string
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeAI(t *testing.T) *fakeAI {
	t.Helper()

	ai := &fakeAI{keys: make(chan string, 64)}
	ai.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ai.calls.Add(1)

		select {
		case ai.keys <- strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "):
		default:
		}

		if ai.fail.Load() {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]string{"role": "assistant", "content": reply(req.Messages[0].Content)},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(ai.Close)

	return ai
}

// reply picks an answer from the system prompt.
func reply(system string) string {
	switch {
	case strings.Contains(system, "label"):
		return "```json\n[\"databases\", \"sql\", \"performance\"]\n```"
	case strings.Contains(system, "classify"):
		return "Article."
	default:
		return "A practical guide to making Postgres queries fast."
	}
}

// newPageServer serves small HTML documents under /articles/.
func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/articles/")
		if name == r.URL.Path || name == "" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<!doctype html>
<html><head>
<title>Tuning %[1]s</title>
<meta name="description" content="How we tuned %[1]s for heavy read traffic.">
<meta property="og:site_name" content="Engineering Blog">
</head><body>
<nav>Home | About</nav>
<article><h1>Tuning %[1]s</h1>
<p>Indexes, query plans and connection pooling for %[1]s under load.</p>
<p>We measured every change against production traffic.</p>
</article></body></html>`, name)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// pageTransport sends every fetch to the page server whatever its host, so
// well-known hosts can be bookmarked without network access.
func pageTransport(pages *httptest.Server) http.RoundTripper {
	target, _ := url.Parse(pages.URL)

	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		out := req.Clone(req.Context())
		out.URL.Scheme = target.Scheme
		out.URL.Host = target.Host
		out.Host = target.Host

		return http.DefaultTransport.RoundTrip(out)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// stack is the whole service running in process against fakes.
type stack struct {
	URL    string
	AI     *fakeAI
	Worker *app.EnrichmentWorker
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startStack wires the service the way cmd/service does, with in-memory
// storage and search.
func startStack(t *testing.T, features map[string]any) *stack {
	t.Helper()

	logger := discardLogger()
	ai := newFakeAI(t)
	pages := newPageServer(t)

	store, err := storage.Open(storage.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	index, err := search.Open(search.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	client, err := clients.New(&clients.Config{
		BaseURL:     ai.URL,
		ServiceName: "openai",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   50,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: logger,
	})
	require.NoError(t, err)

	providers := acl.NewProviderRegistry(acl.ProviderRegistryConfig{
		OpenAI: &acl.Endpoint{Client: client, Model: "test-model"},
		Logger: logger,
	})

	metrics, err := telemetry.NewAnalysisMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	featureFlags := flags.New(features)
	bookmarks := store.Bookmarks()

	enricher := app.NewEnricher(app.EnricherConfig{
		Bookmarks:  bookmarks,
		Vocabulary: bookmarks,
		Users:      store.Users(),
		Fetcher: fetcher.New(fetcher.Config{
			Timeout:   2 * time.Second,
			Transport: pageTransport(pages),
			Logger:    logger,
		}),
		Analyzer: app.NewDispatcher(app.DispatcherConfig{
			Providers: providers,
			Metrics:   metrics,
			Logger:    logger,
		}),
		Search:          index,
		Flags:           featureFlags,
		DefaultProvider: domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "server-key"},
		Logger:          logger,
	})

	worker := app.NewEnrichmentWorker(app.EnrichmentWorkerConfig{
		Handler:    enricher.Enrich,
		Workers:    2,
		QueueSize:  16,
		JobTimeout: 5 * time.Second,
		Metrics:    metrics,
		Logger:     logger,
	})
	worker.Start(t.Context())
	t.Cleanup(func() { _ = worker.Stop(t.Context()) })

	issuer, err := auth.NewJWTIssuer(auth.IssuerConfig{
		Secret:     testSecret,
		Issuer:     "bookmark-service",
		Audience:   "bookmark-service-api",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:   store.Users(),
		Hasher:  auth.NewBcryptHasher(4),
		Tokens:  issuer,
		Revoked: auth.NewRevocationList(auth.NewExpiringStore[string, time.Time](1000, time.Hour)),
		Logger:  logger,
	})

	healthRegistry := ports.NewHealthRegistry()
	require.NoError(t, healthRegistry.Register(store))
	require.NoError(t, healthRegistry.Register(index))

	engine := gin.New()
	apihttp.SetupRouter(engine, apihttp.RouterConfig{
		Logger:        logger,
		ServiceName:   "bookmark-service",
		Authenticator: authService,
		Timeout:       10 * time.Second,
		Health:        handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo("test", "none", "now")),
		Auth:          handlers.NewAuthHandler(authService),
		Bookmarks: handlers.NewBookmarkHandler(app.NewBookmarkService(app.BookmarkServiceConfig{
			Bookmarks: bookmarks,
			Folders:   store.Folders(),
			Search:    index,
			Flags:     featureFlags,
			Enricher:  enricher,
			Queue:     worker,
			Logger:    logger,
		})),
		Folders: handlers.NewFolderHandler(app.NewFolderService(store.Folders(), logger)),
		Tags: handlers.NewTagHandler(app.NewTagService(app.TagServiceConfig{
			Bookmarks:  bookmarks,
			Vocabulary: bookmarks,
			Enricher:   enricher,
			Logger:     logger,
		})),
		Admin: handlers.NewAdminHandler(app.NewAdminService(bookmarks, index, worker, logger)),
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &stack{URL: srv.URL, AI: ai, Worker: worker}
}

// page returns the URL of a served article.
func (s *stack) page(name string) string {
	return "https://blog.example.com/articles/" + name
}
