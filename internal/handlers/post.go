package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/models"
	"starlog/internal/services"
)

type PostHandler struct {
	posts *services.PostService
	views *services.ViewService
}

func NewPostHandler(posts *services.PostService, views *services.ViewService) *PostHandler {
	return &PostHandler{posts: posts, views: views}
}

// List GET /api/posts?category=&tag=&featured=true|false
func (h *PostHandler) List(c *gin.Context) {
	var (
		posts []models.Post
		err   error
	)
	switch {
	case c.Query("category") != "":
		posts, err = h.posts.ByCategory(c.Query("category"))
	case c.Query("tag") != "":
		posts, err = h.posts.ByTag(c.Query("tag"))
	case c.Query("featured") == "true":
		posts, err = h.posts.Featured()
	case c.Query("featured") == "false":
		posts, err = h.posts.NonFeatured()
	default:
		posts, err = h.posts.List()
	}
	if err != nil {
		respondError(c, err, "获取文章失败")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Detail GET /api/posts/:slug
func (h *PostHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")
	detail, err := h.posts.Get(slug)
	if err != nil {
		respondError(c, err, "获取文章失败")
		return
	}
	detail.Views = h.views.GetViewCount(slug)
	c.JSON(http.StatusOK, detail)
}

// Search GET /api/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.posts.Search(c.Query("q"))
	if err != nil {
		respondError(c, err, "搜索失败")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Tags GET /api/tags
func (h *PostHandler) Tags(c *gin.Context) {
	tags, err := h.posts.Tags()
	if err != nil {
		respondError(c, err, "获取标签失败")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Categories GET /api/categories
func (h *PostHandler) Categories(c *gin.Context) {
	cats, err := h.posts.Categories()
	if err != nil {
		respondError(c, err, "获取分类失败")
		return
	}
	c.JSON(http.StatusOK, cats)
}

// AdminGet GET /api/admin/posts/:slug
func (h *PostHandler) AdminGet(c *gin.Context) {
	post, err := h.posts.Find(c.Param("slug"))
	if err != nil {
		respondError(c, err, "获取文章失败")
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create POST /api/admin/posts
func (h *PostHandler) Create(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	slug, err := h.posts.Create(in)
	if err != nil {
		respondError(c, err, "创建文章失败")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "slug": slug, "message": "文章创建成功"})
}

// Update PUT /api/admin/posts/:slug
func (h *PostHandler) Update(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	if err := h.posts.Update(c.Param("slug"), in); err != nil {
		respondError(c, err, "更新文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "文章更新成功"})
}

// Delete DELETE /api/admin/posts/:slug
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Param("slug")); err != nil {
		respondError(c, err, "删除文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "文章删除成功"})
}
