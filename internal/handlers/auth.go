package handlers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"starlog/internal/middleware"
	"starlog/internal/services"
)

type AuthHandler struct {
	auth *services.AdminAuth
}

func NewAuthHandler(auth *services.AdminAuth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /api/admin/login，返回 token 并写入 session
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	token, expiresAt, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		log.Printf("[auth] 管理员登录失败 user=%q ip=%s", req.Username, c.ClientIP())
		respondError(c, err, "登录失败")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionAdminKey, req.Username)
	if err := session.Save(); err != nil {
		log.Printf("[auth] 保存 session 失败: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiresAt": expiresAt})
}

// Logout POST /api/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionAdminKey)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[auth] 清除 session 失败: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me GET /api/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := c.Get(middleware.AdminKey)
	c.JSON(http.StatusOK, gin.H{"username": user})
}
