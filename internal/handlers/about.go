package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/models"
	"starlog/internal/services"
)

type AboutHandler struct {
	about *services.AboutService
}

func NewAboutHandler(about *services.AboutService) *AboutHandler {
	return &AboutHandler{about: about}
}

// Get GET /api/about 与 GET /api/admin/about
func (h *AboutHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.about.Get())
}

// Save PUT /api/admin/about
func (h *AboutHandler) Save(c *gin.Context) {
	var about models.About
	if err := c.ShouldBindJSON(&about); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	saved, err := h.about.Save(about)
	if err != nil {
		respondError(c, err, "保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": saved})
}
