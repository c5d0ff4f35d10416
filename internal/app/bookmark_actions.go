package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// createBookmarkAction stores a new bookmark; rollback deletes it.
type createBookmarkAction struct {
	repo     ports.BookmarkRepository
	bookmark *domain.Bookmark
}

func (a *createBookmarkAction) Execute(ctx context.Context) error {
	return a.repo.Create(ctx, a.bookmark)
}

func (a *createBookmarkAction) Rollback(ctx context.Context) error {
	return a.repo.Delete(ctx, a.bookmark.UserID, a.bookmark.ID)
}

func (a *createBookmarkAction) Description() string {
	return "store bookmark " + a.bookmark.ID
}

// indexBookmarkAction adds a bookmark to the search index; rollback removes it.
type indexBookmarkAction struct {
	index    ports.SearchIndex
	bookmark *domain.Bookmark
}

func (a *indexBookmarkAction) Execute(ctx context.Context) error {
	return a.index.Index(ctx, a.bookmark)
}

func (a *indexBookmarkAction) Rollback(ctx context.Context) error {
	return a.index.Remove(ctx, a.bookmark.ID)
}

func (a *indexBookmarkAction) Description() string {
	return "index bookmark " + a.bookmark.ID
}

// EncodeCursor renders the position after b as an opaque token.
func EncodeCursor(b *domain.Bookmark) string {
	raw := strconv.FormatInt(b.CreatedAt.UnixNano(), 10) + ":" + b.ID

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token from EncodeCursor. An empty token means the
// first page.
func DecodeCursor(token string) (*domain.PageCursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.NewValidationError("cursor", "malformed cursor")
	}

	nanos, id, ok := strings.Cut(string(raw), ":")
	if !ok || id == "" {
		return nil, domain.NewValidationError("cursor", "malformed cursor")
	}

	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("cursor", fmt.Sprintf("malformed cursor timestamp %q", nanos))
	}

	return &domain.PageCursor{CreatedAt: time.Unix(0, n).UTC(), ID: id}, nil
}
