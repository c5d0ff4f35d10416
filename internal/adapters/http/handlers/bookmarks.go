package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// BookmarkHandler handles bookmark, search and analysis endpoints.
type BookmarkHandler struct {
	service *app.BookmarkService
}

// NewBookmarkHandler creates a new bookmark handler.
func NewBookmarkHandler(service *app.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// CreateBookmarkRequest is the body of POST /bookmarks.
type CreateBookmarkRequest struct {
	URL         string   `json:"url" validate:"required,max=2048"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
	FolderID    string   `json:"folderId"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
}

// UpdateBookmarkRequest is the body of PATCH /bookmarks/:id. Omitted fields
// are left unchanged.
type UpdateBookmarkRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Notes       *string   `json:"notes"`
	FolderID    *string   `json:"folderId"`
	Tags        *[]string `json:"tags"`
	Favorite    *bool     `json:"favorite"`
}

// ListBookmarksRequest holds the listing filters and page position.
type ListBookmarksRequest struct {
	dto.PaginationRequest

	Tag      string `form:"tag" json:"tag"`
	Category string `form:"category" json:"category" validate:"category"`
	FolderID string `form:"folder_id" json:"folderId"`
	Favorite *bool  `form:"favorite" json:"favorite"`
}

// SearchRequest is the query of GET /search.
type SearchRequest struct {
	Query string `form:"q" json:"q" validate:"notempty,max=500"`
	Limit int    `form:"limit" json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// BookmarkResponse is the HTTP view of a bookmark.
type BookmarkResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	FolderID    string    `json:"folderId,omitempty"`
	Favorite    bool      `json:"favorite"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SearchResultResponse is one search match.
type SearchResultResponse struct {
	Bookmark   *BookmarkResponse   `json:"bookmark"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// AnalysisResponse previews the analysis of an unsaved URL.
type AnalysisResponse struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	SiteName    string   `json:"siteName,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func toBookmarkResponse(b *domain.Bookmark) *BookmarkResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	return &BookmarkResponse{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Notes:       b.Notes,
		Summary:     b.Summary,
		Category:    string(b.Category),
		Tags:        tags,
		FolderID:    b.FolderID,
		Favorite:    b.Favorite,
		ImageURL:    b.ImageURL,
		SiteName:    b.SiteName,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Create handles POST /api/v1/bookmarks.
//
// @Summary Save a bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Success 201 {object} BookmarkResponse
// @Success 202 {object} BookmarkResponse "analysis queued"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/bookmarks [post]
func (h *BookmarkHandler) Create(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateBookmarkRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), app.CreateBookmarkInput{
		UserID:      claims.Subject,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		FolderID:    req.FolderID,
		Tags:        req.Tags,
		Favorite:    req.Favorite,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(createdStatus(b), toBookmarkResponse(b))
}

// createdStatus is 202 while analysis is still outstanding.
func createdStatus(b *domain.Bookmark) int {
	if b.Status == domain.AnalysisPending {
		return http.StatusAccepted
	}

	return http.StatusCreated
}

// List handles GET /api/v1/bookmarks.
//
// @Summary List bookmarks, newest first
// @Tags bookmarks
// @Produce json
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Param tag query string false "Only bookmarks with this tag"
// @Param category query string false "Only bookmarks in this category"
// @Success 200 {object} dto.PaginatedResponse[BookmarkResponse]
// @Router /api/v1/bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req ListBookmarksRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), app.ListBookmarksInput{
		UserID: claims.Subject,
		Filter: domain.BookmarkFilter{
			Tag:      req.Tag,
			Category: domain.Category(req.Category),
			FolderID: req.FolderID,
			Favorite: req.Favorite,
		},
		Cursor: req.Cursor,
		Limit:  req.GetLimit(),
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page.Bookmarks, page.NextCursor, toBookmarkResponse))
}

// Get handles GET /api/v1/bookmarks/:id.
func (h *BookmarkHandler) Get(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), claims.Subject, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookmarkResponse(b))
}

// Update handles PATCH /api/v1/bookmarks/:id.
func (h *BookmarkHandler) Update(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateBookmarkRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), app.UpdateBookmarkInput{
		UserID:      claims.Subject,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		FolderID:    req.FolderID,
		Tags:        req.Tags,
		Favorite:    req.Favorite,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookmarkResponse(b))
}

// Delete handles DELETE /api/v1/bookmarks/:id.
func (h *BookmarkHandler) Delete(c *gin.Context) {
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

// Reanalyze handles POST /api/v1/bookmarks/:id/reanalyze.
func (h *BookmarkHandler) Reanalyze(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	b, err := h.service.Reanalyze(c.Request.Context(), claims.Subject, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if b.Status == domain.AnalysisPending {
		status = http.StatusAccepted
	}

	c.JSON(status, toBookmarkResponse(b))
}

// Search handles GET /api/v1/search.
func (h *BookmarkHandler) Search(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	matches, err := h.service.Search(c.Request.Context(), claims.Subject, req.Query, req.Limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out := make([]*SearchResultResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, &SearchResultResponse{
			Bookmark:   toBookmarkResponse(m.Bookmark),
			Score:      m.Score,
			Highlights: m.Highlights,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": out})
}

// Analyze handles POST /api/v1/analyze. Nothing is saved.
func (h *BookmarkHandler) Analyze(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req AnalyzeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	p, err := h.service.Analyze(c.Request.Context(), claims.Subject, req.URL)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &AnalysisResponse{
		URL:         p.URL,
		Title:       p.Title,
		Description: p.Description,
		SiteName:    p.SiteName,
		ImageURL:    p.ImageURL,
		Summary:     p.Summary,
		Category:    string(p.Category),
		Tags:        p.Tags,
	})
}

// RegisterBookmarkRoutes registers bookmark, search and analysis routes.
func (h *BookmarkHandler) RegisterBookmarkRoutes(rg *gin.RouterGroup) {
	bookmarks := rg.Group("/bookmarks")
	bookmarks.POST("", h.Create)
	bookmarks.GET("", h.List)
	bookmarks.GET("/:id", h.Get)
	bookmarks.PATCH("/:id", h.Update)
	bookmarks.DELETE("/:id", h.Delete)
	bookmarks.POST("/:id/reanalyze", h.Reanalyze)

	rg.GET("/search", h.Search)
	rg.POST("/analyze", h.Analyze)
}
