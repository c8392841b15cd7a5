package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/models"
	"starlog/internal/services"
)

type EssayHandler struct {
	essays *services.EssayService
}

func NewEssayHandler(essays *services.EssayService) *EssayHandler {
	return &EssayHandler{essays: essays}
}

// List GET /api/essays，兼容旧的 ?action=like&id= 点赞方式
func (h *EssayHandler) List(c *gin.Context) {
	if c.Query("action") == "like" && c.Query("id") != "" {
		h.like(c, c.Query("id"))
		return
	}
	c.JSON(http.StatusOK, h.essays.List())
}

// Tags GET /api/essays/tags
func (h *EssayHandler) Tags(c *gin.Context) {
	c.JSON(http.StatusOK, h.essays.Tags())
}

// Like POST /api/essays/:id/like
func (h *EssayHandler) Like(c *gin.Context) {
	h.like(c, c.Param("id"))
}

func (h *EssayHandler) like(c *gin.Context, id string) {
	likes, err := h.essays.Like(id)
	if err != nil {
		respondError(c, err, "点赞失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Create POST /api/essays
func (h *EssayHandler) Create(c *gin.Context) {
	var in services.EssayInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	essay, err := h.essays.Create(in)
	if err != nil {
		respondError(c, err, "创建随笔失败")
		return
	}
	c.JSON(http.StatusCreated, essay)
}

type essayUpdateRequest struct {
	ID string `json:"id"`
	models.EssayPatch
}

// Update PUT /api/essays/:id，也接受 body 中的 id
func (h *EssayHandler) Update(c *gin.Context) {
	var req essayUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		badRequest(c, "随笔ID为必填项")
		return
	}
	essay, err := h.essays.Update(id, req.EssayPatch)
	if err != nil {
		respondError(c, err, "更新随笔失败")
		return
	}
	c.JSON(http.StatusOK, essay)
}

// Delete DELETE /api/essays/:id 或 /api/essays?id=
func (h *EssayHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		badRequest(c, "随笔ID为必填项")
		return
	}
	if err := h.essays.Delete(id); err != nil {
		respondError(c, err, "删除随笔失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
