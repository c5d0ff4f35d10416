package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	appctx "github.com/jsamuelsen/bookmark-service/internal/app/context"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/domain/tags"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// Enricher fetches a page, analyzes it and reconciles the resulting tags with
// the owner's vocabulary. Bookmark creation, the analyze preview and the
// enrichment workers all go through it.
type Enricher struct {
	bookmarks       ports.BookmarkRepository
	vocabulary      ports.TagVocabulary
	users           ports.UserRepository
	fetcher         ports.ContentFetcher
	analyzer        ports.Analyzer
	search          ports.SearchIndex
	flags           ports.FeatureFlags
	defaultProvider domain.ProviderConfig
	logger          *slog.Logger
}

// EnricherConfig contains the enricher's dependencies.
type EnricherConfig struct {
	Bookmarks  ports.BookmarkRepository
	Vocabulary ports.TagVocabulary
	Users      ports.UserRepository
	Fetcher    ports.ContentFetcher
	Analyzer   ports.Analyzer
	Search     ports.SearchIndex
	Flags      ports.FeatureFlags

	// DefaultProvider is used for users without their own API key.
	DefaultProvider domain.ProviderConfig
	Logger          *slog.Logger
}

// NewEnricher creates an enricher.
func NewEnricher(cfg EnricherConfig) *Enricher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Enricher{
		bookmarks:       cfg.Bookmarks,
		vocabulary:      cfg.Vocabulary,
		users:           cfg.Users,
		fetcher:         cfg.Fetcher,
		analyzer:        cfg.Analyzer,
		search:          cfg.Search,
		flags:           cfg.Flags,
		defaultProvider: cfg.DefaultProvider,
		logger:          logger.With(slog.String("component", "app.Enricher")),
	}
}

// AnalyzeInput is what the caller already knows about a page.
type AnalyzeInput struct {
	UserID      string
	URL         string
	Title       string
	Description string
	Tags        []string
}

// Analysis is the outcome of Enricher.Analyze.
type Analysis struct {
	// Page is nil when the fetch failed.
	Page     *domain.PageContent
	FetchErr error
	Result   domain.AnalysisResult

	// Tags are the user's and the provider's tags after reconciliation
	// with the vocabulary.
	Tags []string
}

// Analyze fetches and analyzes in.URL. A failed fetch degrades to analyzing
// the caller's title and description; it never fails the analysis.
func (e *Enricher) Analyze(ctx context.Context, in AnalyzeInput) (*Analysis, error) {
	logger := e.loggerFrom(ctx).With(slog.String("url", in.URL))

	out := &Analysis{}

	page, err := e.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		logger.WarnContext(ctx, "content fetch failed, using submitted metadata",
			slog.Any("error", err),
		)

		out.FetchErr = err
	} else {
		out.Page = page
	}

	vocab, err := e.Vocabulary(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading tag vocabulary: %w", err)
	}

	out.Result = e.analyzer.Analyze(ctx, in.URL, analysisText(out.Page, in), e.ProviderConfigFor(ctx, in.UserID))

	merged := make([]string, 0, len(in.Tags)+len(out.Result.Tags))
	merged = append(merged, in.Tags...)
	merged = append(merged, out.Result.Tags...)
	out.Tags = tags.ProcessTags(merged, vocab, e.Threshold(ctx))

	return out, nil
}

// Enrich runs the analysis for a stored bookmark and saves the outcome. A
// bookmark deleted in the meantime is skipped.
func (e *Enricher) Enrich(ctx context.Context, job EnrichmentJob) error {
	rc := appctx.New(ctx)
	ctx = appctx.WithContext(ctx, rc)

	logger := e.loggerFrom(ctx).With(
		slog.String("bookmark_id", job.BookmarkID),
		slog.String("user_id", job.UserID),
	)

	b, err := e.bookmarks.Get(ctx, job.UserID, job.BookmarkID)
	if err != nil {
		if domain.IsNotFound(err) {
			logger.InfoContext(ctx, "bookmark vanished before enrichment")
			return nil
		}

		return fmt.Errorf("loading bookmark: %w", err)
	}

	analysis, err := e.Analyze(ctx, AnalyzeInput{
		UserID:      b.UserID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Tags:        b.Tags,
	})
	if err != nil {
		e.markFailed(ctx, logger, b)
		return err
	}

	analysis.Apply(b)

	if err := e.bookmarks.Update(ctx, b); err != nil {
		if domain.IsNotFound(err) {
			logger.InfoContext(ctx, "bookmark vanished during enrichment")
			return nil
		}

		e.markFailed(ctx, logger, b)

		return fmt.Errorf("saving enriched bookmark: %w", err)
	}

	e.Index(ctx, b)

	logger.InfoContext(ctx, "bookmark enriched",
		slog.String("category", string(b.Category)),
		slog.Int("tags", len(b.Tags)),
	)

	return nil
}

func (e *Enricher) markFailed(ctx context.Context, logger *slog.Logger, b *domain.Bookmark) {
	b.Status = domain.AnalysisFailed
	if err := e.bookmarks.Update(ctx, b); err != nil {
		logger.WarnContext(ctx, "could not mark bookmark as failed", slog.Any("error", err))
	}
}

// Apply copies the analysis onto b. Page metadata only fills fields the
// user left empty.
func (a *Analysis) Apply(b *domain.Bookmark) {
	if a.Page != nil {
		if b.Title == "" {
			b.Title = a.Page.Title
		}

		if b.Description == "" {
			b.Description = a.Page.Description
		}

		if b.SiteName == "" {
			b.SiteName = a.Page.SiteName
		}

		if b.ImageURL == "" {
			b.ImageURL = a.Page.ImageURL
		}

		b.Excerpt = Excerpt(a.Page.Content, excerptRunes)
	}

	if b.Title == "" {
		b.Title = b.URL
	}

	b.ApplyAnalysis(a.Result, a.Tags)
}

// excerptRunes bounds the page text kept on a bookmark for search.
const excerptRunes = 2000

// Index writes b to the search index when search is enabled. Failures are
// logged; the index can be rebuilt from storage.
func (e *Enricher) Index(ctx context.Context, b *domain.Bookmark) {
	if !e.SearchEnabled(ctx) {
		return
	}

	if err := e.search.Index(ctx, b); err != nil {
		e.loggerFrom(ctx).WarnContext(ctx, "search indexing failed",
			slog.String("bookmark_id", b.ID),
			slog.Any("error", err),
		)
	}
}

// SearchEnabled reports the search_enabled flag.
func (e *Enricher) SearchEnabled(ctx context.Context) bool {
	return e.search != nil && e.flags.IsEnabled(ctx, ports.FlagSearchEnabled, true)
}

// Vocabulary returns the user's distinct tags, memoized on the request
// context when one is present.
func (e *Enricher) Vocabulary(ctx context.Context, userID string) ([]string, error) {
	return appctx.Memo(ctx, "tags:"+userID, func(ctx context.Context) ([]string, error) {
		return e.vocabulary.Tags(ctx, userID)
	})
}

// ProviderConfigFor resolves which provider analyzes for userID: the user's
// own settings when they supplied a key, otherwise the server default.
func (e *Enricher) ProviderConfigFor(ctx context.Context, userID string) domain.ProviderConfig {
	user, err := e.users.Get(ctx, userID)
	if err != nil {
		e.loggerFrom(ctx).WarnContext(ctx, "could not load user AI settings, using server default",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return e.defaultProvider
	}

	if !user.AISettings.Configured() {
		return e.defaultProvider
	}

	cfg := user.AISettings.ProviderConfig()
	if strings.TrimSpace(string(cfg.Provider)) == "" {
		cfg.Provider = e.defaultProvider.Provider
	}

	return cfg
}

// Threshold is the tag similarity threshold, overridable by flag.
func (e *Enricher) Threshold(ctx context.Context) float64 {
	t := e.flags.GetFloat(ctx, ports.FlagTagSimilarityThreshold, config.DefaultTagSimilarityThreshold)
	if t <= 0 || t > 1 {
		return config.DefaultTagSimilarityThreshold
	}

	return t
}

func (e *Enricher) loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, e.logger)
}

// analysisText picks the text sent to the analyzer. Without page content it
// falls back to whatever metadata is available.
func analysisText(page *domain.PageContent, in AnalyzeInput) string {
	if page != nil && strings.TrimSpace(page.Content) != "" {
		return page.Content
	}

	parts := make([]string, 0, 4)
	for _, s := range []string{in.Title, in.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	if page != nil {
		for _, s := range []string{page.Title, page.Description} {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
	}

	return strings.Join(parts, "\n\n")
}
