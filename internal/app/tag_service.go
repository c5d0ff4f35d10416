package app

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/domain/tags"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// defaultRewriteWorkers bounds concurrent bookmark rewrites during merges.
const defaultRewriteWorkers = 4

// TagService reports on and reorganizes a user's tag vocabulary.
type TagService struct {
	bookmarks  ports.BookmarkRepository
	vocabulary ports.TagVocabulary
	enricher   *Enricher
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// TagServiceConfig contains the tag service's dependencies.
type TagServiceConfig struct {
	Bookmarks  ports.BookmarkRepository
	Vocabulary ports.TagVocabulary

	// Enricher supplies the similarity threshold and search indexing.
	Enricher *Enricher
	Workers  int
	Logger   *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(cfg TagServiceConfig) *TagService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultRewriteWorkers
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TagService{
		bookmarks:  cfg.Bookmarks,
		vocabulary: cfg.Vocabulary,
		enricher:   cfg.Enricher,
		workers:    workers,
		logger:     logger.With(slog.String("component", "app.TagService")),
		now:        time.Now,
	}
}

// ListTags returns tag usage, most used first.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]domain.TagStat, error) {
	return s.vocabulary.Stats(ctx, userID)
}

// ConsolidationResult reports a consolidation run.
type ConsolidationResult struct {
	DryRun    bool              `json:"dry_run"`
	Merges    []domain.TagMerge `json:"merges"`
	Rewritten int               `json:"bookmarks_rewritten"`
}

// ConsolidateTags merges near-duplicate tags in the user's vocabulary, the
// less used spelling folding into the more used one. With dryRun only the
// plan is returned.
func (s *TagService) ConsolidateTags(ctx context.Context, userID string, dryRun bool) (*ConsolidationResult, error) {
	stats, err := s.vocabulary.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(stats))
	vocab := make([]string, 0, len(stats))
	for _, st := range stats {
		counts[st.Name] = st.Count
		vocab = append(vocab, st.Name)
	}

	plan := tags.PlanMerges(vocab, s.enricher.Threshold(ctx))

	result := &ConsolidationResult{DryRun: dryRun, Merges: make([]domain.TagMerge, 0, len(plan))}
	mapping := make(map[string]string, len(plan))

	for _, m := range plan {
		mapping[m.From] = m.Into
		result.Merges = append(result.Merges, domain.TagMerge{
			From:       m.From,
			Into:       m.Into,
			Similarity: m.Score,
			Affected:   counts[m.From],
		})
	}

	if dryRun || len(mapping) == 0 {
		return result, nil
	}

	n, err := s.rewrite(ctx, userID, mapping)
	if err != nil {
		return nil, err
	}

	result.Rewritten = n

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "tags consolidated",
		slog.Int("merges", len(plan)),
		slog.Int("bookmarks", n),
	)

	return result, nil
}

// RenameTag replaces from with to on every bookmark carrying it and returns
// how many changed. Both names are normalized first.
func (s *TagService) RenameTag(ctx context.Context, userID, from, to string) (int, error) {
	src, dst := tags.Normalize(from), tags.Normalize(to)

	if src == "" {
		return 0, domain.NewValidationError("from", "must not be empty")
	}

	if dst == "" {
		return 0, domain.NewValidationError("to", "must not be empty")
	}

	if src == dst {
		return 0, domain.NewValidationError("to", "must differ from the current name")
	}

	n, err := s.rewrite(ctx, userID, map[string]string{src: dst})
	if err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, domain.NewNotFoundError("tag", src)
	}

	return n, nil
}

// rewrite applies mapping to every affected bookmark in bounded parallel.
func (s *TagService) rewrite(ctx context.Context, userID string, mapping map[string]string) (int, error) {
	var affected []*domain.Bookmark

	err := s.bookmarks.WalkUser(ctx, userID, func(b *domain.Bookmark) error {
		for _, t := range b.Tags {
			if _, ok := mapping[t]; ok {
				affected = append(affected, b)
				break
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	var rewritten atomic.Int64

	err = ForEachLimit(ctx, s.workers, affected, func(ctx context.Context, b *domain.Bookmark) error {
		b.Tags = replaceTags(b.Tags, mapping)
		b.UpdatedAt = s.now().UTC()

		if err := s.bookmarks.Update(ctx, b); err != nil {
			return err
		}

		s.enricher.Index(ctx, b)
		rewritten.Add(1)

		return nil
	})
	if err != nil {
		return int(rewritten.Load()), err
	}

	return int(rewritten.Load()), nil
}

// replaceTags maps each tag through mapping, keeping first-seen order and
// dropping duplicates the mapping creates.
func replaceTags(current []string, mapping map[string]string) []string {
	set := tags.NewSet()

	for _, t := range current {
		if into, ok := mapping[t]; ok {
			t = into
		}

		set.Add(t)
	}

	return set.Slice()
}
