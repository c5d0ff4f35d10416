package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// TagHandler handles tag vocabulary endpoints.
type TagHandler struct {
	service *app.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(service *app.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// ConsolidateRequest is the body of POST /tags/consolidate.
type ConsolidateRequest struct {
	DryRun bool `json:"dryRun"`
}

// RenameTagRequest is the body of POST /tags/rename.
type RenameTagRequest struct {
	From string `json:"from" validate:"notempty,max=100"`
	To   string `json:"to" validate:"notempty,max=100"`
}

// TagResponse is one vocabulary entry.
type TagResponse struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// TagMergeResponse is one planned or applied merge.
type TagMergeResponse struct {
	From       string  `json:"from"`
	Into       string  `json:"into"`
	Similarity float64 `json:"similarity"`
	Affected   int     `json:"affected"`
}

// ConsolidateResponse reports a consolidation run.
type ConsolidateResponse struct {
	DryRun    bool                `json:"dryRun"`
	Merges    []*TagMergeResponse `json:"merges"`
	Rewritten int                 `json:"bookmarksRewritten"`
}

// RenameTagResponse reports a rename.
type RenameTagResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Rewritten int    `json:"bookmarksRewritten"`
}

func toTagResponse(s domain.TagStat) *TagResponse {
	return &TagResponse{Name: s.Name, Count: s.Count, Share: s.Share}
}

// List handles GET /api/v1/tags, most used first.
func (h *TagHandler) List(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.service.ListTags(c.Request.Context(), claims.Subject)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out := make([]*TagResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, toTagResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"tags": out})
}

// Consolidate handles POST /api/v1/tags/consolidate.
func (h *TagHandler) Consolidate(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req ConsolidateRequest

	// An empty body means a real run.
	if c.Request.ContentLength != 0 {
		if err := dto.BindAndValidate(c, &req); err != nil {
			dto.HandleBindError(c, err)
			return
		}
	}

	res, err := h.service.ConsolidateTags(c.Request.Context(), claims.Subject, req.DryRun)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	merges := make([]*TagMergeResponse, 0, len(res.Merges))
	for _, m := range res.Merges {
		merges = append(merges, &TagMergeResponse{
			From:       m.From,
			Into:       m.Into,
			Similarity: m.Similarity,
			Affected:   m.Affected,
		})
	}

	c.JSON(http.StatusOK, &ConsolidateResponse{DryRun: res.DryRun, Merges: merges, Rewritten: res.Rewritten})
}

// Rename handles POST /api/v1/tags/rename.
func (h *TagHandler) Rename(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req RenameTagRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	n, err := h.service.RenameTag(c.Request.Context(), claims.Subject, req.From, req.To)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &RenameTagResponse{From: req.From, To: req.To, Rewritten: n})
}

// RegisterTagRoutes registers tag routes on the given router group.
func (h *TagHandler) RegisterTagRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	tags.GET("", h.List)
	tags.POST("/consolidate", h.Consolidate)
	tags.POST("/rename", h.Rename)
}
