package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"starlog/internal/services"
	"starlog/internal/utils"
)

type ViewHandler struct {
	views *services.ViewService
}

func NewViewHandler(views *services.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// Record POST /api/views {slug}
func (h *ViewHandler) Record(c *gin.Context) {
	var req struct {
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Slug == "" {
		badRequest(c, "缺少文章slug")
		return
	}
	ua := c.GetHeader("User-Agent")
	if ua == "" {
		ua = "unknown"
	}
	visitor := utils.VisitorID(c.ClientIP(), ua, time.Now())
	count, err := h.views.RecordView(req.Slug, visitor)
	if err != nil {
		respondError(c, err, "增加阅读量失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Get GET /api/views?slug= | ?popular=true&limit= | ?total=true，不带参数返回全部
func (h *ViewHandler) Get(c *gin.Context) {
	switch {
	case c.Query("total") == "true":
		c.JSON(http.StatusOK, gin.H{"total": h.views.GetTotalViews()})
	case c.Query("popular") == "true":
		limit := utils.StringToInt(c.Query("limit"), services.DefaultPopularLimit)
		c.JSON(http.StatusOK, h.views.GetPopular(limit))
	case c.Query("slug") != "":
		slug := c.Query("slug")
		c.JSON(http.StatusOK, gin.H{"slug": slug, "count": h.views.GetViewCount(slug)})
	default:
		all := h.views.GetAllViews()
		out := make(map[string]gin.H, len(all))
		for slug, stats := range all {
			out[slug] = gin.H{"slug": stats.Slug, "count": stats.Count, "lastUpdated": stats.LastUpdated}
		}
		c.JSON(http.StatusOK, out)
	}
}
