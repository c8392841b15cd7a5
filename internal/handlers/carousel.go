package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/models"
	"starlog/internal/services"
)

type CarouselHandler struct {
	carousel *services.CarouselService
	uploads  *services.UploadService
}

func NewCarouselHandler(carousel *services.CarouselService, uploads *services.UploadService) *CarouselHandler {
	return &CarouselHandler{carousel: carousel, uploads: uploads}
}

// List GET /api/carousel
func (h *CarouselHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.carousel.List())
}

type carouselRequest struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// Create POST /api/carousel {src, alt, title}
func (h *CarouselHandler) Create(c *gin.Context) {
	var req carouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	item, err := h.carousel.Add(req.Src, req.Alt, req.Title)
	if err != nil {
		respondError(c, err, "添加轮播图失败")
		return
	}
	c.JSON(http.StatusCreated, item)
}

type carouselUpdateRequest struct {
	ID string `json:"id"`
	models.CarouselPatch
}

// Update PUT /api/carousel/:id 或 body 中带 id
func (h *CarouselHandler) Update(c *gin.Context) {
	var req carouselUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		badRequest(c, "轮播图ID为必填项")
		return
	}
	item, err := h.carousel.Update(id, req.CarouselPatch)
	if err != nil {
		respondError(c, err, "更新轮播图失败")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete DELETE /api/carousel/:id 或 ?id=
func (h *CarouselHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		badRequest(c, "轮播图ID为必填项")
		return
	}
	if err := h.carousel.Delete(id); err != nil {
		respondError(c, err, "删除轮播图失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Upload POST /api/carousel/upload，multipart 字段 file
func (h *CarouselHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "请选择要上传的图片")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "读取上传文件失败")
		return
	}
	defer f.Close()

	url, err := h.uploads.SaveCarouselImage(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "上传失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
