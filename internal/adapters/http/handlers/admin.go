package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/app"
)

// AdminHandler handles maintenance endpoints. Routes must be guarded by an
// admin role check.
type AdminHandler struct {
	service *app.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service *app.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ReanalyzeAllRequest is the body of POST /admin/reanalyze.
type ReanalyzeAllRequest struct {
	OnlyFailed bool `json:"onlyFailed"`
}

// ReindexResponse reports a search rebuild.
type ReindexResponse struct {
	Indexed    int   `json:"indexed"`
	DurationMS int64 `json:"durationMs"`
}

// ReanalyzeAllResponse reports how many bookmarks were queued.
type ReanalyzeAllResponse struct {
	Queued  int `json:"queued"`
	Skipped int `json:"skipped"`
}

// Reindex handles POST /api/v1/admin/search/reindex.
func (h *AdminHandler) Reindex(c *gin.Context) {
	res, err := h.service.ReindexSearch(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &ReindexResponse{Indexed: res.Indexed, DurationMS: res.Duration.Milliseconds()})
}

// ReanalyzeAll handles POST /api/v1/admin/reanalyze.
func (h *AdminHandler) ReanalyzeAll(c *gin.Context) {
	var req ReanalyzeAllRequest

	if c.Request.ContentLength != 0 {
		if err := dto.BindAndValidate(c, &req); err != nil {
			dto.HandleBindError(c, err)
			return
		}
	}

	res, err := h.service.ReanalyzeAll(c.Request.Context(), req.OnlyFailed)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, &ReanalyzeAllResponse{Queued: res.Queued, Skipped: res.Skipped})
}

// RegisterAdminRoutes registers admin routes on the given router group.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/search/reindex", h.Reindex)
	admin.POST("/reanalyze", h.ReanalyzeAll)
}
