package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// AdminService runs maintenance over every user's data.
type AdminService struct {
	bookmarks ports.BookmarkRepository
	search    ports.SearchIndex
	queue     EnrichmentQueue
	logger    *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(bookmarks ports.BookmarkRepository, search ports.SearchIndex, queue EnrichmentQueue, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminService{
		bookmarks: bookmarks,
		search:    search,
		queue:     queue,
		logger:    logger.With(slog.String("component", "app.AdminService")),
	}
}

// ReindexResult reports a search rebuild.
type ReindexResult struct {
	Indexed  int           `json:"indexed"`
	Duration time.Duration `json:"duration_ns"`
}

// ReindexSearch rebuilds the search index from storage.
func (s *AdminService) ReindexSearch(ctx context.Context) (*ReindexResult, error) {
	start := time.Now()

	n, err := s.search.Rebuild(ctx, func(fn func(*domain.Bookmark) error) error {
		return s.bookmarks.Walk(ctx, fn)
	})
	if err != nil {
		return nil, err
	}

	res := &ReindexResult{Indexed: n, Duration: time.Since(start)}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "search index rebuilt",
		slog.Int("indexed", n),
		slog.Duration("duration", res.Duration),
	)

	return res, nil
}

// BulkReanalyzeResult reports a bulk reanalysis request.
type BulkReanalyzeResult struct {
	Queued  int `json:"queued"`
	Skipped int `json:"skipped"`
}

// ReanalyzeAll queues bookmarks for analysis. With onlyFailed, only
// bookmarks whose last analysis failed or never ran are queued. Bookmarks
// that do not fit in the queue are counted as skipped.
func (s *AdminService) ReanalyzeAll(ctx context.Context, onlyFailed bool) (*BulkReanalyzeResult, error) {
	if s.queue == nil {
		return nil, domain.NewUnavailableError("enrichment", "no enrichment workers configured")
	}

	res := &BulkReanalyzeResult{}

	err := s.bookmarks.Walk(ctx, func(b *domain.Bookmark) error {
		if onlyFailed && b.Status == domain.AnalysisComplete {
			return nil
		}

		err := s.queue.Submit(EnrichmentJob{UserID: b.UserID, BookmarkID: b.ID})
		switch {
		case err == nil:
			res.Queued++
		case errors.Is(err, ErrQueueFull):
			res.Skipped++
		default:
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "bulk reanalysis queued",
		slog.Int("queued", res.Queued),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}
