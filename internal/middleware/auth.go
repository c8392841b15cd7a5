package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// AdminKey gin context 中的管理员用户名
	AdminKey = "admin"
	// SessionAdminKey 浏览器 session 中的管理员标记
	SessionAdminKey = "admin_user"
)

// TokenValidator 校验 Bearer token，返回用户名
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// LoadAdmin 从 Authorization: Bearer 或 session 中识别管理员
func LoadAdmin(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			if user, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(AdminKey, user)
			}
		} else if user, ok := sessions.Default(c).Get(SessionAdminKey).(string); ok && user != "" {
			c.Set(AdminKey, user)
		}
		c.Next()
	}
}

// AdminRequired 未登录管理员时返回 401
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			return
		}
		c.Next()
	}
}

// IsAdmin 当前请求是否来自管理员
func IsAdmin(c *gin.Context) bool {
	user, ok := c.Get(AdminKey)
	return ok && user != ""
}
