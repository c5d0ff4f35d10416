package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	appctx "github.com/jsamuelsen/bookmark-service/internal/app/context"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/domain/tags"
	"github.com/jsamuelsen/bookmark-service/internal/domain/urlclean"
	"github.com/jsamuelsen/bookmark-service/internal/platform/id"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// Input limits.
const (
	MaxTitleRunes       = 500
	MaxDescriptionRunes = 2000
	MaxNotesRunes       = 10000
	MaxUserTags         = 20

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// EnrichmentQueue accepts bookmarks for background analysis.
type EnrichmentQueue interface {
	Submit(job EnrichmentJob) error
}

// BookmarkService orchestrates bookmark use cases.
type BookmarkService struct {
	bookmarks ports.BookmarkRepository
	folders   ports.FolderRepository
	search    ports.SearchIndex
	flags     ports.FeatureFlags
	enricher  *Enricher
	queue     EnrichmentQueue
	executor  *Executor
	logger    *slog.Logger
	now       func() time.Time
}

// BookmarkServiceConfig contains the service's dependencies. Queue may be
// nil, in which case analysis always runs inline.
type BookmarkServiceConfig struct {
	Bookmarks ports.BookmarkRepository
	Folders   ports.FolderRepository
	Search    ports.SearchIndex
	Flags     ports.FeatureFlags
	Enricher  *Enricher
	Queue     EnrichmentQueue
	Logger    *slog.Logger
}

// NewBookmarkService creates a bookmark service.
func NewBookmarkService(cfg BookmarkServiceConfig) *BookmarkService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.BookmarkService"))

	return &BookmarkService{
		bookmarks: cfg.Bookmarks,
		folders:   cfg.Folders,
		search:    cfg.Search,
		flags:     cfg.Flags,
		enricher:  cfg.Enricher,
		queue:     cfg.Queue,
		executor:  NewExecutor(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// CreateBookmarkInput is a request to save a URL.
type CreateBookmarkInput struct {
	UserID      string
	URL         string
	Title       string
	Description string
	Notes       string
	FolderID    string
	Tags        []string
	Favorite    bool
}

// Create saves a new bookmark. The page is fetched and analyzed inline, or
// queued for the enrichment workers when async analysis is enabled.
func (s *BookmarkService) Create(ctx context.Context, in CreateBookmarkInput) (*domain.Bookmark, error) {
	ctx = withRequestContext(ctx)

	var queued bool

	op := Operation[CreateBookmarkInput, *domain.Bookmark]{
		Name: "create_bookmark",
		Validate: func(ctx context.Context, in CreateBookmarkInput) error {
			if err := validateBookmarkFields(in.UserID, in.URL, in.Title, in.Description, in.Notes, in.Tags); err != nil {
				return err
			}

			return s.checkFolder(ctx, in.UserID, in.FolderID)
		},
		Perform: func(ctx context.Context, in CreateBookmarkInput) (*domain.Bookmark, error) {
			cleaned, err := urlclean.Clean(in.URL)
			if err != nil {
				return nil, err
			}

			if err := s.ensureUnique(ctx, in.UserID, cleaned); err != nil {
				return nil, err
			}

			b, err := s.newBookmark(in, cleaned)
			if err != nil {
				return nil, err
			}

			if s.asyncAnalysis(ctx) {
				queued = true

				vocab, err := s.enricher.Vocabulary(ctx, in.UserID)
				if err != nil {
					return nil, err
				}

				b.Tags = tags.ProcessTags(in.Tags, vocab, s.enricher.Threshold(ctx))
				b.Status = domain.AnalysisPending

				return b, nil
			}

			analysis, err := s.enricher.Analyze(ctx, AnalyzeInput{
				UserID:      in.UserID,
				URL:         cleaned,
				Title:       b.Title,
				Description: b.Description,
				Tags:        in.Tags,
			})
			if err != nil {
				return nil, err
			}

			analysis.Apply(b)

			return b, nil
		},
		Verify: func(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
			return verifyBookmark(b)
		},
		Archive: func(ctx context.Context, b *domain.Bookmark) error {
			rc := appctx.New(ctx)
			if err := rc.AddAction(&createBookmarkAction{repo: s.bookmarks, bookmark: b}); err != nil {
				return err
			}

			if s.enricher.SearchEnabled(ctx) {
				if err := rc.AddAction(&indexBookmarkAction{index: s.search, bookmark: b}); err != nil {
					return err
				}
			}

			return rc.Commit(ctx)
		},
		Respond: func(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
			if queued {
				s.enqueue(ctx, b)
			}

			return b, nil
		},
	}

	return Execute(ctx, s.executor, op, in)
}

// Get returns one of the user's bookmarks.
func (s *BookmarkService) Get(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	return s.bookmarks.Get(ctx, userID, bookmarkID)
}

// ListBookmarksInput selects a page of bookmarks.
type ListBookmarksInput struct {
	UserID string
	Filter domain.BookmarkFilter
	Cursor string
	Limit  int
}

// BookmarkPage is one page of a newest-first listing.
type BookmarkPage struct {
	Bookmarks  []*domain.Bookmark `json:"bookmarks"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// List returns a page of the user's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, in ListBookmarksInput) (*BookmarkPage, error) {
	after, err := DecodeCursor(in.Cursor)
	if err != nil {
		return nil, err
	}

	if in.Filter.Category != "" {
		c, ok := domain.ParseCategory(string(in.Filter.Category))
		if !ok {
			return nil, domain.NewValidationErrorWithValue("category", "unknown category", in.Filter.Category)
		}

		in.Filter.Category = c
	}

	if in.Filter.Tag != "" {
		in.Filter.Tag = tags.Normalize(in.Filter.Tag)
	}

	limit := clampPageSize(in.Limit)

	// One extra row tells us whether another page exists.
	items, err := s.bookmarks.List(ctx, in.UserID, in.Filter, after, limit+1)
	if err != nil {
		return nil, err
	}

	page := &BookmarkPage{Bookmarks: items}
	if len(items) > limit {
		page.Bookmarks = items[:limit]
		page.NextCursor = EncodeCursor(items[limit-1])
	}

	return page, nil
}

// UpdateBookmarkInput carries a partial update. Nil fields are unchanged.
// An empty FolderID removes the bookmark from its folder.
type UpdateBookmarkInput struct {
	UserID      string
	ID          string
	Title       *string
	Description *string
	Notes       *string
	FolderID    *string
	Tags        *[]string
	Favorite    *bool
}

// Update applies a partial update. New tags are reconciled with the user's
// vocabulary the same way analysis tags are.
func (s *BookmarkService) Update(ctx context.Context, in UpdateBookmarkInput) (*domain.Bookmark, error) {
	ctx = withRequestContext(ctx)

	b, err := s.bookmarks.Get(ctx, in.UserID, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := checkLength("title", *in.Title, MaxTitleRunes); err != nil {
			return nil, err
		}

		b.Title = strings.TrimSpace(*in.Title)
		if b.Title == "" {
			b.Title = b.URL
		}
	}

	if in.Description != nil {
		if err := checkLength("description", *in.Description, MaxDescriptionRunes); err != nil {
			return nil, err
		}

		b.Description = strings.TrimSpace(*in.Description)
	}

	if in.Notes != nil {
		if err := checkLength("notes", *in.Notes, MaxNotesRunes); err != nil {
			return nil, err
		}

		b.Notes = *in.Notes
	}

	if in.FolderID != nil {
		if err := s.checkFolder(ctx, in.UserID, *in.FolderID); err != nil {
			return nil, err
		}

		b.FolderID = *in.FolderID
	}

	if in.Tags != nil {
		if len(*in.Tags) > MaxUserTags {
			return nil, domain.NewValidationError("tags", fmt.Sprintf("at most %d tags", MaxUserTags))
		}

		vocab, err := s.enricher.Vocabulary(ctx, in.UserID)
		if err != nil {
			return nil, err
		}

		b.Tags = tags.ProcessTags(*in.Tags, vocab, s.enricher.Threshold(ctx))
	}

	if in.Favorite != nil {
		b.Favorite = *in.Favorite
	}

	b.UpdatedAt = s.now().UTC()

	if err := s.bookmarks.Update(ctx, b); err != nil {
		return nil, err
	}

	s.enricher.Index(ctx, b)

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "bookmark updated", slog.String("bookmark_id", b.ID))

	return b, nil
}

// Delete removes a bookmark and its search entry.
func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID string) error {
	if err := s.bookmarks.Delete(ctx, userID, bookmarkID); err != nil {
		return err
	}

	logger := logging.FromContextOr(ctx, s.logger)

	if s.enricher.SearchEnabled(ctx) {
		if err := s.search.Remove(ctx, bookmarkID); err != nil {
			logger.WarnContext(ctx, "search removal failed",
				slog.String("bookmark_id", bookmarkID),
				slog.Any("error", err),
			)
		}
	}

	logger.InfoContext(ctx, "bookmark deleted", slog.String("bookmark_id", bookmarkID))

	return nil
}

// Reanalyze runs analysis again for an existing bookmark. With async
// analysis enabled the bookmark is returned as pending.
func (s *BookmarkService) Reanalyze(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	b, err := s.bookmarks.Get(ctx, userID, bookmarkID)
	if err != nil {
		return nil, err
	}

	if s.asyncAnalysis(ctx) {
		b.Status = domain.AnalysisPending
		b.UpdatedAt = s.now().UTC()

		if err := s.bookmarks.Update(ctx, b); err != nil {
			return nil, err
		}

		if err := s.queue.Submit(EnrichmentJob{UserID: userID, BookmarkID: b.ID}); err != nil {
			return nil, domain.NewUnavailableError("enrichment", err.Error())
		}

		return b, nil
	}

	if err := s.enricher.Enrich(ctx, EnrichmentJob{UserID: userID, BookmarkID: b.ID}); err != nil {
		return nil, err
	}

	return s.bookmarks.Get(ctx, userID, bookmarkID)
}

// SearchMatch is a search hit resolved to its bookmark.
type SearchMatch struct {
	Bookmark   *domain.Bookmark    `json:"bookmark"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// Search runs a full-text query over the user's bookmarks. Hits whose
// bookmark no longer exists are dropped.
func (s *BookmarkService) Search(ctx context.Context, userID, query string, limit int) ([]SearchMatch, error) {
	if !s.enricher.SearchEnabled(ctx) {
		return nil, domain.NewUnavailableError("search", "search is disabled")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("q", "must not be empty")
	}

	hits, err := s.search.Search(ctx, userID, query, clampPageSize(limit))
	if err != nil {
		return nil, err
	}

	out := make([]SearchMatch, 0, len(hits))
	for _, h := range hits {
		b, err := s.bookmarks.Get(ctx, userID, h.ID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}

			return nil, err
		}

		out = append(out, SearchMatch{Bookmark: b, Score: h.Score, Highlights: h.Fragments})
	}

	return out, nil
}

// AnalysisPreview is the analysis of a URL that is not saved.
type AnalysisPreview struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	SiteName    string          `json:"site_name,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Summary     string          `json:"summary"`
	Category    domain.Category `json:"category"`
	Tags        []string        `json:"tags"`
}

// Analyze previews what saving rawURL would produce without persisting it.
func (s *BookmarkService) Analyze(ctx context.Context, userID, rawURL string) (*AnalysisPreview, error) {
	ctx = withRequestContext(ctx)

	cleaned, err := urlclean.Clean(rawURL)
	if err != nil {
		return nil, err
	}

	analysis, err := s.enricher.Analyze(ctx, AnalyzeInput{UserID: userID, URL: cleaned})
	if err != nil {
		return nil, err
	}

	preview := &AnalysisPreview{
		URL:      cleaned,
		Title:    cleaned,
		Summary:  analysis.Result.Summary,
		Category: analysis.Result.Category,
		Tags:     analysis.Tags,
	}

	if p := analysis.Page; p != nil {
		if p.Title != "" {
			preview.Title = p.Title
		}

		preview.Description = p.Description
		preview.SiteName = p.SiteName
		preview.ImageURL = p.ImageURL
	}

	return preview, nil
}

func (s *BookmarkService) newBookmark(in CreateBookmarkInput, cleanedURL string) (*domain.Bookmark, error) {
	bookmarkID, err := id.Generate(id.PrefixBookmark)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	return &domain.Bookmark{
		ID:          bookmarkID,
		UserID:      in.UserID,
		FolderID:    in.FolderID,
		URL:         cleanedURL,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Notes:       in.Notes,
		Favorite:    in.Favorite,
		Tags:        []string{},
		Category:    domain.CategoryArticle,
		Status:      domain.AnalysisPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *BookmarkService) ensureUnique(ctx context.Context, userID, cleanedURL string) error {
	existing, err := s.bookmarks.FindByURL(ctx, userID, cleanedURL)
	switch {
	case err == nil:
		return domain.NewConflictErrorWithDetails("bookmark", "url already saved", existing.ID)
	case domain.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func (s *BookmarkService) checkFolder(ctx context.Context, userID, folderID string) error {
	if folderID == "" {
		return nil
	}

	if _, err := s.folders.Get(ctx, userID, folderID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationErrorWithValue("folder_id", "folder does not exist", folderID)
		}

		return err
	}

	return nil
}

func (s *BookmarkService) asyncAnalysis(ctx context.Context) bool {
	return s.queue != nil && s.flags.IsEnabled(ctx, ports.FlagAsyncAnalysis, false)
}

// enqueue hands b to the workers. A full queue leaves it pending; it can be
// reanalyzed later.
func (s *BookmarkService) enqueue(ctx context.Context, b *domain.Bookmark) {
	err := s.queue.Submit(EnrichmentJob{UserID: b.UserID, BookmarkID: b.ID})
	if err == nil {
		return
	}

	level := slog.LevelError
	if errors.Is(err, ErrQueueFull) {
		level = slog.LevelWarn
	}

	logging.FromContextOr(ctx, s.logger).Log(ctx, level, "could not queue bookmark for analysis",
		slog.String("bookmark_id", b.ID),
		slog.Any("error", err),
	)
}

func validateBookmarkFields(userID, rawURL, title, description, notes string, userTags []string) error {
	if userID == "" {
		return domain.NewUnauthorizedError("missing user")
	}

	if strings.TrimSpace(rawURL) == "" {
		return domain.NewValidationError("url", "must not be empty")
	}

	if err := checkLength("title", title, MaxTitleRunes); err != nil {
		return err
	}

	if err := checkLength("description", description, MaxDescriptionRunes); err != nil {
		return err
	}

	if err := checkLength("notes", notes, MaxNotesRunes); err != nil {
		return err
	}

	if len(userTags) > MaxUserTags {
		return domain.NewValidationError("tags", fmt.Sprintf("at most %d tags", MaxUserTags))
	}

	return nil
}

// verifyBookmark checks the invariants a stored bookmark must hold.
func verifyBookmark(b *domain.Bookmark) (*domain.Bookmark, error) {
	if b == nil || b.ID == "" || b.UserID == "" || b.URL == "" {
		return nil, errors.New("bookmark is missing identity fields")
	}

	if b.Title == "" {
		b.Title = b.URL
	}

	if _, ok := domain.ParseCategory(string(b.Category)); !ok {
		b.Category = domain.CategoryArticle
	}

	if b.Tags == nil {
		b.Tags = []string{}
	}

	return b, nil
}

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return domain.NewValidationError(field, fmt.Sprintf("must be at most %d characters", limit))
	}

	return nil
}

func clampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}

// withRequestContext attaches a RequestContext for memoization unless the
// caller already did.
func withRequestContext(ctx context.Context) context.Context {
	if appctx.FromContext(ctx) != nil {
		return ctx
	}

	return appctx.WithContext(ctx, appctx.New(ctx))
}
