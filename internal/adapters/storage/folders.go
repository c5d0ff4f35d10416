package storage

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// FolderRepository implements ports.FolderRepository.
type FolderRepository struct {
	store *Store
}

var _ ports.FolderRepository = (*FolderRepository)(nil)

// Create stores a new folder. Names are unique per owner, ignoring case.
func (r *FolderRepository) Create(ctx context.Context, f *domain.Folder) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		return r.store.folders.create(txn, f.ID, f)
	})

	return conflict(err, "folder", "name already in use")
}

// Get returns the owner's folder.
func (r *FolderRepository) Get(ctx context.Context, userID, id string) (*domain.Folder, error) {
	var f *domain.Folder

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		var err error
		f, err = r.owned(txn, userID, id)

		return err
	})

	return f, err
}

// List returns the owner's folders ordered by name.
func (r *FolderRepository) List(ctx context.Context, userID string) ([]*domain.Folder, error) {
	e := r.store.folders
	folders := []*domain.Folder{}

	err := r.store.view(ctx, func(txn *badger.Txn) error {
		return e.scanIndex(txn, e.indexPrefix(indexOwner, userID+":"), nil, func(_ []byte, id string) (bool, error) {
			f, err := e.get(txn, id)
			if err != nil {
				return false, err
			}

			folders = append(folders, f)

			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(folders, func(i, j int) bool {
		return normalizeName(folders[i].Name) < normalizeName(folders[j].Name)
	})

	return folders, nil
}

// Update replaces the owner's folder.
func (r *FolderRepository) Update(ctx context.Context, f *domain.Folder) error {
	err := r.store.update(ctx, func(txn *badger.Txn) error {
		if _, err := r.owned(txn, f.UserID, f.ID); err != nil {
			return err
		}

		_, err := r.store.folders.update(txn, f.ID, f)

		return err
	})

	return conflict(err, "folder", "name already in use")
}

// Delete removes the owner's folder and detaches its bookmarks in the same
// transaction.
func (r *FolderRepository) Delete(ctx context.Context, userID, id string) error {
	bookmarks := r.store.bookmarks
	now := time.Now().UTC()

	return r.store.update(ctx, func(txn *badger.Txn) error {
		if _, err := r.owned(txn, userID, id); err != nil {
			return err
		}

		if _, err := r.store.folders.remove(txn, id); err != nil {
			return err
		}

		var members []string

		prefix := bookmarks.indexPrefix(indexFolder, userID+":"+id+":")
		if err := bookmarks.scanIndex(txn, prefix, nil, func(_ []byte, bookmarkID string) (bool, error) {
			members = append(members, bookmarkID)
			return true, nil
		}); err != nil {
			return err
		}

		for _, bookmarkID := range members {
			b, err := bookmarks.get(txn, bookmarkID)
			if err != nil {
				return err
			}

			b.FolderID = ""
			b.UpdatedAt = now

			if _, err := bookmarks.update(txn, bookmarkID, b); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *FolderRepository) owned(txn *badger.Txn, userID, id string) (*domain.Folder, error) {
	f, err := r.store.folders.get(txn, id)
	if err != nil {
		return nil, err
	}

	if f.UserID != userID {
		return nil, domain.NewNotFoundError("folder", id)
	}

	return f, nil
}
