package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// FolderHandler handles folder endpoints.
type FolderHandler struct {
	service *app.FolderService
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(service *app.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

// FolderRequest is the body of folder create and update. On update, omitted
// fields are left unchanged and an empty color clears it.
type FolderRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// FolderResponse is the HTTP view of a folder.
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toFolderResponse(f *domain.Folder) *FolderResponse {
	return &FolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (r FolderRequest) input() app.FolderInput {
	return app.FolderInput{Name: r.Name, Color: r.Color}
}

// Create handles POST /api/v1/folders.
func (h *FolderHandler) Create(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req FolderRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	f, err := h.service.Create(c.Request.Context(), claims.Subject, req.input())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFolderResponse(f))
}

// List handles GET /api/v1/folders.
func (h *FolderHandler) List(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	folders, err := h.service.List(c.Request.Context(), claims.Subject)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out := make([]*FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}

	c.JSON(http.StatusOK, gin.H{"folders": out})
}

// Get handles GET /api/v1/folders/:id.
func (h *FolderHandler) Get(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	f, err := h.service.Get(c.Request.Context(), claims.Subject, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFolderResponse(f))
}

// Update handles PATCH /api/v1/folders/:id.
func (h *FolderHandler) Update(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req FolderRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	f, err := h.service.Update(c.Request.Context(), claims.Subject, c.Param("id"), req.input())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFolderResponse(f))
}

// Delete handles DELETE /api/v1/folders/:id. Bookmarks in the folder are
// kept and become unfiled.
func (h *FolderHandler) Delete(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.Subject, c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterFolderRoutes registers folder routes on the given router group.
func (h *FolderHandler) RegisterFolderRoutes(rg *gin.RouterGroup) {
	folders := rg.Group("/folders")
	folders.POST("", h.Create)
	folders.GET("", h.List)
	folders.GET("/:id", h.Get)
	folders.PATCH("/:id", h.Update)
	folders.DELETE("/:id", h.Delete)
}
