package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/mocks"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var serverDefault = domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "sk-server"}

// deps bundles the port mocks the application services are built from.
type deps struct {
	bookmarks *mocks.MockBookmarkRepository
	vocab     *mocks.MockTagVocabulary
	folders   *mocks.MockFolderRepository
	users     *mocks.MockUserRepository
	fetcher   *mocks.MockContentFetcher
	analyzer  *mocks.MockAnalyzer
	search    *mocks.MockSearchIndex
	flags     *mocks.MockFeatureFlags
}

func newDeps(t *testing.T) *deps {
	t.Helper()

	return &deps{
		bookmarks: mocks.NewMockBookmarkRepository(t),
		vocab:     mocks.NewMockTagVocabulary(t),
		folders:   mocks.NewMockFolderRepository(t),
		users:     mocks.NewMockUserRepository(t),
		fetcher:   mocks.NewMockContentFetcher(t),
		analyzer:  mocks.NewMockAnalyzer(t),
		search:    mocks.NewMockSearchIndex(t),
		flags:     mocks.NewMockFeatureFlags(t),
	}
}

// stubFlags answers every flag lookup the services make.
func (d *deps) stubFlags(async, search bool) {
	d.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagAsyncAnalysis, false).Return(async).Maybe()
	d.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagSearchEnabled, true).Return(search).Maybe()
	d.flags.EXPECT().GetFloat(mock.Anything, ports.FlagTagSimilarityThreshold, mock.Anything).Return(0.85).Maybe()
}

func (d *deps) enricher() *Enricher {
	return NewEnricher(EnricherConfig{
		Bookmarks:       d.bookmarks,
		Vocabulary:      d.vocab,
		Users:           d.users,
		Fetcher:         d.fetcher,
		Analyzer:        d.analyzer,
		Search:          d.search,
		Flags:           d.flags,
		DefaultProvider: serverDefault,
		Logger:          discardLogger(),
	})
}

func (d *deps) bookmarkService(queue EnrichmentQueue) *BookmarkService {
	return NewBookmarkService(BookmarkServiceConfig{
		Bookmarks: d.bookmarks,
		Folders:   d.folders,
		Search:    d.search,
		Flags:     d.flags,
		Enricher:  d.enricher(),
		Queue:     queue,
		Logger:    discardLogger(),
	})
}

// recordingQueue captures submitted jobs.
type recordingQueue struct {
	jobs []EnrichmentJob
	err  error
}

func (q *recordingQueue) Submit(job EnrichmentJob) error {
	if q.err != nil {
		return q.err
	}

	q.jobs = append(q.jobs, job)

	return nil
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testBookmark(id string, tags ...string) *domain.Bookmark {
	return &domain.Bookmark{
		ID:        id,
		UserID:    "usr_1",
		URL:       "https://example.com/" + id,
		Title:     "Bookmark " + id,
		Tags:      tags,
		Category:  domain.CategoryArticle,
		Status:    domain.AnalysisComplete,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func plainUser() *domain.User {
	return &domain.User{ID: "usr_1", Email: "ada@example.com", Name: "Ada"}
}
