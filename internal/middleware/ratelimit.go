package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starlog/internal/ratelimit"
)

// RateLimit 按客户端 IP 限流，超限返回 429
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := l.Allow(c.ClientIP())
		if !ok {
			seconds := int(math.Ceil(retry.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "操作过于频繁，请稍后再试",
				"retry_after": seconds,
			})
			return
		}
		c.Next()
	}
}
