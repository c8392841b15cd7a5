package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/middleware"
	"starlog/internal/models"
	"starlog/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List GET /api/comments?postId=
func (h *CommentHandler) List(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		badRequest(c, "缺少postId")
		return
	}
	tree, err := h.comments.List(postID, voterID(c))
	if err != nil {
		respondError(c, err, "获取评论失败")
		return
	}
	c.JSON(http.StatusOK, tree)
}

// Count GET /api/comments/count?postId=
func (h *CommentHandler) Count(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		badRequest(c, "缺少postId")
		return
	}
	n, err := h.comments.Count(postID)
	if err != nil {
		respondError(c, err, "获取评论数失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"postId": postID, "count": n})
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in services.AddCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	comment, err := h.comments.Add(in)
	if err != nil {
		respondError(c, err, "保存评论失败")
		return
	}
	// 返回公开视图，不包含 email / likedBy
	c.JSON(http.StatusCreated, services.BuildCommentTree([]models.Comment{*comment}, "")[0])
}

type likeRequest struct {
	CommentID string `json:"commentId"`
	Action    string `json:"action"`
}

// Like POST /api/comments/like {commentId, action: like|unlike}
func (h *CommentHandler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" {
		badRequest(c, "缺少commentId")
		return
	}
	if req.Action == "" {
		req.Action = string(models.ActionLike)
	}
	res, err := h.comments.ToggleLike(req.CommentID, voterID(c), models.LikeAction(req.Action))
	if err != nil {
		respondError(c, err, "点赞失败")
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete DELETE /api/comments?commentId=
func (h *CommentHandler) Delete(c *gin.Context) {
	id := c.Query("commentId")
	if id == "" {
		id = c.Param("id")
	}
	if id == "" {
		badRequest(c, "缺少commentId")
		return
	}
	removed, err := h.comments.Delete(id, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err, "删除评论失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}
