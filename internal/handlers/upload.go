package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/services"
)

type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload POST /api/upload，multipart 字段 file + type
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "请选择要上传的文件")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "读取上传文件失败")
		return
	}
	defer f.Close()

	url, err := h.uploads.SaveUpload(c.Request.Context(), c.PostForm("type"), f)
	if err != nil {
		respondError(c, err, "上传失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
