package app

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/id"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// MaxFolderNameRunes bounds folder names.
const MaxFolderNameRunes = 100

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// FolderService manages a user's folders.
type FolderService struct {
	folders ports.FolderRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewFolderService creates a folder service.
func NewFolderService(folders ports.FolderRepository, logger *slog.Logger) *FolderService {
	if logger == nil {
		logger = slog.Default()
	}

	return &FolderService{
		folders: folders,
		logger:  logger.With(slog.String("component", "app.FolderService")),
		now:     time.Now,
	}
}

// FolderInput carries folder fields. Nil fields are unchanged on update.
type FolderInput struct {
	Name  *string
	Color *string
}

// Create adds a folder. Name is required.
func (s *FolderService) Create(ctx context.Context, userID string, in FolderInput) (*domain.Folder, error) {
	if in.Name == nil {
		return nil, domain.NewValidationError("name", "is required")
	}

	folderID, err := id.Generate(id.PrefixFolder)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	f := &domain.Folder{ID: folderID, UserID: userID, CreatedAt: now, UpdatedAt: now}

	if err := applyFolderInput(f, in); err != nil {
		return nil, err
	}

	if err := s.folders.Create(ctx, f); err != nil {
		return nil, err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "folder created", slog.String("folder_id", f.ID))

	return f, nil
}

// Get returns one folder.
func (s *FolderService) Get(ctx context.Context, userID, folderID string) (*domain.Folder, error) {
	return s.folders.Get(ctx, userID, folderID)
}

// List returns the user's folders ordered by name.
func (s *FolderService) List(ctx context.Context, userID string) ([]*domain.Folder, error) {
	return s.folders.List(ctx, userID)
}

// Update renames or recolors a folder.
func (s *FolderService) Update(ctx context.Context, userID, folderID string, in FolderInput) (*domain.Folder, error) {
	f, err := s.folders.Get(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if err := applyFolderInput(f, in); err != nil {
		return nil, err
	}

	f.UpdatedAt = s.now().UTC()

	if err := s.folders.Update(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Delete removes a folder. Its bookmarks are kept and leave the folder.
func (s *FolderService) Delete(ctx context.Context, userID, folderID string) error {
	if err := s.folders.Delete(ctx, userID, folderID); err != nil {
		return err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "folder deleted", slog.String("folder_id", folderID))

	return nil
}

func applyFolderInput(f *domain.Folder, in FolderInput) error {
	if in.Name != nil {
		name := strings.Join(strings.Fields(*in.Name), " ")
		if name == "" {
			return domain.NewValidationError("name", "must not be empty")
		}

		if err := checkLength("name", name, MaxFolderNameRunes); err != nil {
			return err
		}

		f.Name = name
	}

	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if color != "" && !hexColor.MatchString(color) {
			return domain.NewValidationErrorWithValue("color", "must be a hex color like #3b82f6", color)
		}

		f.Color = strings.ToLower(color)
	}

	return nil
}
