package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// BookmarkRepository implements ports.BookmarkRepository and
// ports.TagVocabulary. Per-user tag counts are maintained in the same
// transaction as every bookmark write.
type BookmarkRepository struct {
	store *Store
}

var (
	_ ports.BookmarkRepository = (*BookmarkRepository)(nil)
	_ ports.TagVocabulary      = (*BookmarkRepository)(nil)
)

// Create stores a new bookmark. Saving a URL the owner already saved is a
// domain.ConflictError.
func (r *BookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		if err := r.store.bookmarks.create(txn, b.ID, b); err != nil {
			return err
		}

		if err := adjustBookmarkCount(txn, b.UserID, 1); err != nil {
			return err
		}

		return adjustTagCounts(txn, b.UserID, nil, b.Tags)
	})

	return conflict(err, "bookmark", "url already saved")
}

// Get returns the owner's bookmark.
func (r *BookmarkRepository) Get(ctx context.Context, userID, id string) (*domain.Bookmark, error) {
	var b *domain.Bookmark

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var err error
		b, err = r.owned(txn, userID, id)

		return err
	})

	return b, err
}

// FindByURL returns the owner's bookmark for a cleaned URL.
func (r *BookmarkRepository) FindByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error) {
	var b *domain.Bookmark

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var err error
		b, err = r.store.bookmarks.lookup(txn, indexURL, userID+"|"+url)

		return err
	})

	return b, err
}

// Update replaces the owner's bookmark.
func (r *BookmarkRepository) Update(ctx context.Context, b *domain.Bookmark) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		if _, err := r.owned(txn, b.UserID, b.ID); err != nil {
			return err
		}

		old, err := r.store.bookmarks.update(txn, b.ID, b)
		if err != nil {
			return err
		}

		return adjustTagCounts(txn, b.UserID, old.Tags, b.Tags)
	})

	return conflict(err, "bookmark", "url already saved")
}

// Delete removes the owner's bookmark.
func (r *BookmarkRepository) Delete(ctx context.Context, userID, id string) error {
	return r.store.update(ctx, func(txn *badger.Txn) error {
		if _, err := r.owned(txn, userID, id); err != nil {
			return err
		}

		old, err := r.store.bookmarks.remove(txn, id)
		if err != nil {
			return err
		}

		if err := adjustBookmarkCount(txn, userID, -1); err != nil {
			return err
		}

		return adjustTagCounts(txn, userID, old.Tags, nil)
	})
}

// List returns up to limit of the owner's bookmarks newest first, starting
// strictly after the cursor, skipping those the filter rejects.
func (r *BookmarkRepository) List(
	ctx context.Context,
	userID string,
	filter domain.BookmarkFilter,
	after *domain.PageCursor,
	limit int,
) ([]*domain.Bookmark, error) {
	e := r.store.bookmarks
	prefix := e.indexPrefix(indexRecency, userID+":")

	var start, skip []byte
	if after != nil {
		start = e.indexKey(indexRecency, recencyKey(userID, after.CreatedAt, after.ID))
		skip = start
	}

	out := make([]*domain.Bookmark, 0, max(limit, 0))

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return e.scanIndex(txn, prefix, start, func(key []byte, id string) (bool, error) {
			if skip != nil && string(key) == string(skip) {
				return true, nil
			}

			if err := ctx.Err(); err != nil {
				return false, err
			}

			b, err := e.get(txn, id)
			if err != nil {
				return false, err
			}

			if filter.Matches(b) {
				out = append(out, b)
			}

			return limit <= 0 || len(out) < limit, nil
		})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// WalkUser visits the owner's bookmarks newest first.
func (r *BookmarkRepository) WalkUser(ctx context.Context, userID string, fn func(*domain.Bookmark) error) error {
	e := r.store.bookmarks

	return r.store.view(ctx, func(txn *badger.Txn) error {
		return e.scanIndex(txn, e.indexPrefix(indexRecency, userID+":"), nil, func(_ []byte, id string) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}

			b, err := e.get(txn, id)
			if err != nil {
				return false, err
			}

			return true, fn(b)
		})
	})
}

// Walk visits every stored bookmark.
func (r *BookmarkRepository) Walk(ctx context.Context, fn func(*domain.Bookmark) error) error {
	e := r.store.bookmarks

	return r.store.view(ctx, func(txn *badger.Txn) error {
		return e.scanIndex(txn, e.indexPrefix(indexRecency, ""), nil, func(_ []byte, id string) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}

			b, err := e.get(txn, id)
			if err != nil {
				return false, err
			}

			return true, fn(b)
		})
	})
}

// Tags implements ports.TagVocabulary. Tags are ordered most used first.
func (r *BookmarkRepository) Tags(ctx context.Context, userID string) ([]string, error) {
	stats, err := r.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	tags := make([]string, len(stats))
	for i, s := range stats {
		tags[i] = s.Name
	}

	return tags, nil
}

// Stats implements ports.TagVocabulary.
func (r *BookmarkRepository) Stats(ctx context.Context, userID string) ([]domain.TagStat, error) {
	stats := []domain.TagStat{}

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		total, err := readCount(txn, bookmarkCountKey(userID))
		if err != nil {
			return err
		}

		prefix := tagCountPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var n uint64
			if err := item.Value(func(val []byte) error {
				n = decodeCount(val)
				return nil
			}); err != nil {
				return err
			}

			stat := domain.TagStat{
				Name:  strings.TrimPrefix(string(item.Key()), string(prefix)),
				Count: int(n),
			}
			if total > 0 {
				stat.Share = float64(n) / float64(total)
			}

			stats = append(stats, stat)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].Name < stats[j].Name
	})

	return stats, nil
}

// owned loads a bookmark and hides it from anyone but its owner.
func (r *BookmarkRepository) owned(txn *badger.Txn, userID, id string) (*domain.Bookmark, error) {
	b, err := r.store.bookmarks.get(txn, id)
	if err != nil {
		return nil, err
	}

	if b.UserID != userID {
		return nil, domain.NewNotFoundError("bookmark", id)
	}

	return b, nil
}

// adjustTagCounts applies the difference between two tag sets to the
// owner's counters. Counters that reach zero are deleted.
func adjustTagCounts(txn *badger.Txn, userID string, removed, added []string) error {
	delta := map[string]int{}

	for _, t := range distinct(removed) {
		delta[t]--
	}

	for _, t := range distinct(added) {
		delta[t]++
	}

	for tag, d := range delta {
		if d == 0 {
			continue
		}

		if err := adjustCounter(txn, tagCountKey(userID, tag), d); err != nil {
			return fmt.Errorf("adjusting tag count %q: %w", tag, err)
		}
	}

	return nil
}

func adjustBookmarkCount(txn *badger.Txn, userID string, d int) error {
	return adjustCounter(txn, bookmarkCountKey(userID), d)
}

func adjustCounter(txn *badger.Txn, key []byte, d int) error {
	n, err := readCount(txn, key)
	if err != nil {
		return err
	}

	next := int64(n) + int64(d)
	if next <= 0 {
		if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		return nil
	}

	return txn.Set(key, encodeCount(uint64(next)))
}

func readCount(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	var n uint64
	err = item.Value(func(val []byte) error {
		n = decodeCount(val)
		return nil
	})

	return n, err
}

func distinct(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, t := range tags {
		if t == "" {
			continue
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
