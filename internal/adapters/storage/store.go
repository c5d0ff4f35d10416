// Package storage persists users, bookmarks and folders in an embedded
// Badger key-value store. Entities are stored as JSON under prefixed keys
// with secondary index keys maintained in the same transaction.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// Options configures Open.
type Options struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// Store wraps a Badger database and exposes the repositories built on it.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	users     *entity[domain.User]
	bookmarks *entity[domain.Bookmark]
	folders   *entity[domain.Folder]
}

// Open opens (or creates) the database.
func Open(opts Options) (*Store, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("storage: path is required")
		}

		bopts = badger.DefaultOptions(opts.Path)
		bopts.SyncWrites = true
		bopts.CompactL0OnClose = true
	}

	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening badger db: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		db:     db,
		logger: logger.With(slog.String("component", "storage.Store")),
	}
	s.initEntities()

	s.logger.Info("badger database opened",
		slog.String("path", opts.Path),
		slog.Bool("in_memory", opts.InMemory),
	)

	return s, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing badger db: %w", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "badger"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	if s.db.IsClosed() {
		return domain.NewUnavailableError("badger", "database is closed")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(*badger.Txn) error { return nil })
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Bookmarks returns the bookmark repository. It also serves the tag vocabulary.
func (s *Store) Bookmarks() *BookmarkRepository {
	return &BookmarkRepository{store: s}
}

// Folders returns the folder repository.
func (s *Store) Folders() *FolderRepository {
	return &FolderRepository{store: s}
}

// maxConflictRetries bounds retries of optimistic transactions that lose a
// write conflict.
const maxConflictRetries = 3

func (s *Store) initEntities() {
	s.users = newEntity[domain.User]("user", prefixUser).
		withIndex("email", true, func(u *domain.User) []string {
			return []string{normalizeEmail(u.Email)}
		})

	s.bookmarks = newEntity[domain.Bookmark]("bookmark", prefixBookmark).
		withIndex(indexURL, true, func(b *domain.Bookmark) []string {
			return []string{b.UserID + "|" + b.URL}
		}).
		withIndex(indexRecency, false, func(b *domain.Bookmark) []string {
			return []string{recencyKey(b.UserID, b.CreatedAt, b.ID)}
		}).
		withIndex(indexFolder, false, func(b *domain.Bookmark) []string {
			if b.FolderID == "" {
				return nil
			}

			return []string{b.UserID + ":" + b.FolderID + ":" + b.ID}
		})

	s.folders = newEntity[domain.Folder]("folder", prefixFolder).
		withIndex(indexName, true, func(f *domain.Folder) []string {
			return []string{f.UserID + ":" + normalizeName(f.Name)}
		}).
		withIndex(indexOwner, false, func(f *domain.Folder) []string {
			return []string{f.UserID + ":" + f.ID}
		})
}

// update runs fn in a read-write transaction, retrying on write conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}

		s.logger.DebugContext(ctx, "transaction conflict, retrying", slog.Int("attempt", attempt+1))
	}

	return fmt.Errorf("transaction abandoned after %d conflicts: %w", maxConflictRetries, err)
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(fn)
}
