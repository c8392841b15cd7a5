package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/models"
	"starlog/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List GET /api/projects?featured=true
func (h *ProjectHandler) List(c *gin.Context) {
	if c.Query("featured") == "true" {
		c.JSON(http.StatusOK, h.projects.Featured())
		return
	}
	c.JSON(http.StatusOK, h.projects.List())
}

// Tags GET /api/projects/tags
func (h *ProjectHandler) Tags(c *gin.Context) {
	c.JSON(http.StatusOK, h.projects.Tags())
}

// Detail GET /api/projects/:id
func (h *ProjectHandler) Detail(c *gin.Context) {
	p, err := h.projects.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "获取项目失败")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Content GET /api/projects/:id/content，没有正文时 content 为 null
func (h *ProjectHandler) Content(c *gin.Context) {
	content, err := h.projects.Content(c.Param("id"))
	if err != nil {
		respondError(c, err, "获取项目内容失败")
		return
	}
	if content == nil {
		c.JSON(http.StatusOK, gin.H{"content": nil})
		return
	}
	c.JSON(http.StatusOK, content)
}

// UpdateContent PUT /api/projects/:id/content {content}
func (h *ProjectHandler) UpdateContent(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	if err := h.projects.UpdateContent(c.Param("id"), req.Content); err != nil {
		respondError(c, err, "更新项目内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in services.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	p, err := h.projects.Create(in)
	if err != nil {
		respondError(c, err, "创建项目失败")
		return
	}
	c.JSON(http.StatusCreated, p)
}

type projectUpdateRequest struct {
	ID string `json:"id"`
	models.ProjectPatch
}

// Update PUT /api/projects/:id，也接受 body 中的 id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		badRequest(c, "项目ID为必填项")
		return
	}
	p, err := h.projects.Update(id, req.ProjectPatch)
	if err != nil {
		respondError(c, err, "更新项目失败")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete DELETE /api/projects/:id 或 /api/projects?id=
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		badRequest(c, "项目ID为必填项")
		return
	}
	if err := h.projects.Delete(id); err != nil {
		respondError(c, err, "删除项目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
