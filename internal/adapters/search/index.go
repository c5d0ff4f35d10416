// Package search maintains a bleve full-text index over bookmarks.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

const (
	batchSize     = 500
	defaultLimit  = 20
	maxLimit      = 100
	minPrefixLen  = 2
	componentName = "bleve"
)

// Options configures Open.
type Options struct {
	// Path is the index directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// Index wraps a bleve index with bookmark operations.
//
// All methods are safe for concurrent use. Rebuild takes the write lock and
// blocks every other operation until it finishes.
type Index struct {
	index    bleve.Index
	path     string
	inMemory bool
	logger   *slog.Logger
	mu       sync.RWMutex
}

// Open opens the index at opts.Path, creating it when missing. An index that
// fails to open is removed and recreated empty; callers repopulate it with
// Rebuild.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "search.Index"))

	idx, err := openIndex(opts, logger)
	if err != nil {
		return nil, err
	}

	return &Index{
		index:    idx,
		path:     opts.Path,
		inMemory: opts.InMemory,
		logger:   logger,
	}, nil
}

func openIndex(opts Options, logger *slog.Logger) (bleve.Index, error) {
	if opts.InMemory {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}

		return idx, nil
	}

	if opts.Path == "" {
		return nil, errors.New("search: path is required")
	}

	if _, statErr := os.Stat(opts.Path); statErr == nil {
		idx, err := bleve.Open(opts.Path)
		if err == nil {
			logger.Info("opened existing search index", slog.String("path", opts.Path))
			return idx, nil
		}

		logger.Warn("failed to open search index, recreating",
			slog.String("path", opts.Path),
			slog.String("error", err.Error()),
		)

		if err := os.RemoveAll(opts.Path); err != nil {
			return nil, fmt.Errorf("remove broken index: %w", err)
		}
	}

	idx, err := bleve.New(opts.Path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	logger.Info("created search index", slog.String("path", opts.Path))

	return idx, nil
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.index.Close()
}

// Name implements ports.HealthChecker.
func (s *Index) Name() string {
	return componentName
}

// Check implements ports.HealthChecker.
func (s *Index) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.DocCount(); err != nil {
		return domain.NewUnavailableError(componentName, err.Error())
	}

	return nil
}

// Index adds or replaces the document for b.
func (s *Index) Index(ctx context.Context, b *domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.index.Index(b.ID, toDocument(b)); err != nil {
		return fmt.Errorf("index bookmark %s: %w", b.ID, err)
	}

	return nil
}

// Remove deletes the document with id. Unknown ids are ignored.
func (s *Index) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.index.Delete(id); err != nil {
		return fmt.Errorf("remove bookmark %s: %w", id, err)
	}

	return nil
}

// Search returns the user's bookmarks matching q, best first.
func (s *Index) Search(ctx context.Context, userID, q string, limit int) ([]domain.SearchHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.SearchHit{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(userID, q), clampLimit(limit), 0, false)
	req.Highlight = bleve.NewHighlight()
	for _, f := range highlightFields {
		req.Highlight.AddField(f)
	}

	s.mu.RLock()
	res, err := s.index.SearchInContext(ctx, req)
	s.mu.RUnlock()

	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := domain.SearchHit{ID: h.ID, Score: h.Score}
		if len(h.Fragments) > 0 {
			hit.Fragments = make(map[string][]string, len(h.Fragments))
			for field, frags := range h.Fragments {
				hit.Fragments[field] = frags
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DocCount returns the number of indexed documents.
func (s *Index) DocCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.DocCount()
}

// Rebuild replaces the index with a fresh one holding every bookmark walk
// yields and returns how many were indexed.
func (s *Index) Rebuild(ctx context.Context, walk func(fn func(*domain.Bookmark) error) error) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		s.logger.Warn("failed to close index before rebuild", slog.String("error", err.Error()))
	}

	if !s.inMemory {
		if err := os.RemoveAll(s.path); err != nil {
			return 0, fmt.Errorf("remove index: %w", err)
		}
	}

	idx, err := openIndex(Options{Path: s.path, InMemory: s.inMemory}, s.logger)
	if err != nil {
		return 0, err
	}
	s.index = idx

	var (
		batch = idx.NewBatch()
		total int
	)

	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}

		if err := idx.Batch(batch); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}

		batch.Reset()

		return nil
	}

	err = walk(func(b *domain.Bookmark) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := batch.Index(b.ID, toDocument(b)); err != nil {
			return fmt.Errorf("batch index %s: %w", b.ID, err)
		}
		total++

		if batch.Size() >= batchSize {
			return flush()
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := flush(); err != nil {
		return 0, err
	}

	s.logger.Info("search index rebuilt", slog.Int("documents", total))

	return total, nil
}

// buildQuery restricts matches to userID and ORs the text strategies:
// analyzed matches across fields, a fuzzy title match for typos and a title
// prefix for partial words.
func buildQuery(userID, q string) query.Query {
	owner := bleve.NewTermQuery(userID)
	owner.SetField(fieldUserID)

	boosts := map[string]float64{
		fieldTitle:       3.0,
		fieldSummary:     2.0,
		fieldDescription: 1.5,
		fieldExcerpt:     1.0,
		fieldNotes:       1.0,
		fieldURL:         0.5,
	}

	text := make([]query.Query, 0, len(boosts)+3)
	for field, boost := range boosts {
		m := bleve.NewMatchQuery(q)
		m.SetField(field)
		m.SetBoost(boost)
		text = append(text, m)
	}

	lower := strings.ToLower(q)

	tag := bleve.NewTermQuery(lower)
	tag.SetField(fieldTags)
	tag.SetBoost(2.5)
	text = append(text, tag)

	fuzzy := bleve.NewFuzzyQuery(lower)
	fuzzy.SetField(fieldTitle)
	fuzzy.SetFuzziness(1)
	fuzzy.SetBoost(0.8)
	text = append(text, fuzzy)

	if len(lower) >= minPrefixLen && !strings.ContainsAny(lower, " \t") {
		prefix := bleve.NewPrefixQuery(lower)
		prefix.SetField(fieldTitle)
		prefix.SetBoost(0.5)
		text = append(text, prefix)
	}

	return bleve.NewConjunctionQuery(owner, bleve.NewDisjunctionQuery(text...))
}

func toDocument(b *domain.Bookmark) map[string]any {
	return map[string]any{
		fieldUserID:      b.UserID,
		fieldTitle:       b.Title,
		fieldSummary:     b.Summary,
		fieldDescription: b.Description,
		fieldExcerpt:     b.Excerpt,
		fieldNotes:       b.Notes,
		fieldURL:         b.URL,
		fieldTags:        b.Tags,
		fieldCategory:    string(b.Category),
		fieldCreatedAt:   float64(b.CreatedAt.Unix()),
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
