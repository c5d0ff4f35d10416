package ports

import (
	"context"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// BookmarkRepository persists bookmarks. Lookups are scoped to the owner:
// another user's bookmark is reported as not found.
type BookmarkRepository interface {
	// Create stores a new bookmark. Returns domain.ErrConflict if the owner
	// already saved the same URL.
	Create(ctx context.Context, b *domain.Bookmark) error

	Get(ctx context.Context, userID, id string) (*domain.Bookmark, error)

	// FindByURL returns domain.ErrNotFound when the owner has no bookmark for url.
	FindByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error)

	Update(ctx context.Context, b *domain.Bookmark) error

	Delete(ctx context.Context, userID, id string) error

	// List returns up to limit bookmarks newest first, starting after the cursor.
	List(ctx context.Context, userID string, filter domain.BookmarkFilter, after *domain.PageCursor, limit int) ([]*domain.Bookmark, error)

	// WalkUser visits every bookmark owned by userID.
	WalkUser(ctx context.Context, userID string, fn func(*domain.Bookmark) error) error

	// Walk visits every bookmark in the store.
	Walk(ctx context.Context, fn func(*domain.Bookmark) error) error
}

// TagVocabulary exposes the distinct tags a user has applied.
type TagVocabulary interface {
	Tags(ctx context.Context, userID string) ([]string, error)

	// Stats returns per-tag bookmark counts, most used first.
	Stats(ctx context.Context, userID string) ([]domain.TagStat, error)
}

// FolderRepository persists folders. Names are unique per owner.
type FolderRepository interface {
	Create(ctx context.Context, f *domain.Folder) error
	Get(ctx context.Context, userID, id string) (*domain.Folder, error)
	List(ctx context.Context, userID string) ([]*domain.Folder, error)
	Update(ctx context.Context, f *domain.Folder) error
	Delete(ctx context.Context, userID, id string) error
}

// UserRepository persists accounts. Emails are unique.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Count(ctx context.Context) (int, error)
}

// SearchIndex is the full-text index over bookmarks.
type SearchIndex interface {
	Index(ctx context.Context, b *domain.Bookmark) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, userID, query string, limit int) ([]domain.SearchHit, error)

	// Rebuild drops the index contents and re-indexes everything walk yields.
	Rebuild(ctx context.Context, walk func(fn func(*domain.Bookmark) error) error) (int, error)
}
