package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/mocks"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture holds the port mocks behind the real application services.
type fixture struct {
	t         *testing.T
	bookmarks *mocks.MockBookmarkRepository
	vocab     *mocks.MockTagVocabulary
	folders   *mocks.MockFolderRepository
	users     *mocks.MockUserRepository
	search    *mocks.MockSearchIndex
	flags     *mocks.MockFeatureFlags
	queue     *queueRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return &fixture{
		t:         t,
		bookmarks: mocks.NewMockBookmarkRepository(t),
		vocab:     mocks.NewMockTagVocabulary(t),
		folders:   mocks.NewMockFolderRepository(t),
		users:     mocks.NewMockUserRepository(t),
		search:    mocks.NewMockSearchIndex(t),
		flags:     mocks.NewMockFeatureFlags(t),
		queue:     &queueRecorder{},
	}
}

// asyncFlags turns on queued analysis so no fetch or provider call happens
// inside a request.
func (f *fixture) asyncFlags(search bool) {
	f.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagAsyncAnalysis, false).Return(true).Maybe()
	f.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagSearchEnabled, true).Return(search).Maybe()
	f.flags.EXPECT().GetFloat(mock.Anything, ports.FlagTagSimilarityThreshold, mock.Anything).Return(0.85).Maybe()
}

func (f *fixture) enricher() *app.Enricher {
	return app.NewEnricher(app.EnricherConfig{
		Bookmarks:  f.bookmarks,
		Vocabulary: f.vocab,
		Users:      f.users,
		Fetcher:    mocks.NewMockContentFetcher(f.t),
		Analyzer:   mocks.NewMockAnalyzer(f.t),
		Search:     f.search,
		Flags:      f.flags,
		Logger:     discardLogger(),
	})
}

func (f *fixture) bookmarkHandler() *BookmarkHandler {
	return NewBookmarkHandler(app.NewBookmarkService(app.BookmarkServiceConfig{
		Bookmarks: f.bookmarks,
		Folders:   f.folders,
		Search:    f.search,
		Flags:     f.flags,
		Enricher:  f.enricher(),
		Queue:     f.queue,
		Logger:    discardLogger(),
	}))
}

type queueRecorder struct {
	jobs []app.EnrichmentJob
}

func (q *queueRecorder) Submit(job app.EnrichmentJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

// signedIn returns an engine whose requests are authenticated as claims.
// Nil claims leave requests anonymous.
func signedIn(claims *domain.TokenClaims) (*gin.Engine, *gin.RouterGroup) {
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextKeyClaims, claims)
		}

		c.Next()
	})

	return engine, api
}

var alice = &domain.TokenClaims{Subject: "usr_1", Kind: domain.TokenAccess}

func do(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	return decode[dto.ErrorResponse](t, w).Error.Code
}

func storedBookmark(id string, tags ...string) *domain.Bookmark {
	return &domain.Bookmark{
		ID:        id,
		UserID:    "usr_1",
		URL:       "https://example.com/" + id,
		Title:     "Title " + id,
		Summary:   "summary",
		Category:  domain.CategoryArticle,
		Tags:      tags,
		Status:    domain.AnalysisComplete,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}
