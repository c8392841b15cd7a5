package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_DIR", "POSTS_DIR", "TOKEN_TTL", "COMMENT_RATE_LIMIT", "MAX_UPLOAD_BYTES", "MINIO_ENDPOINT", "JWT_SECRET", "SESSION_SECRET", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "posts", cfg.PostsDir)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20, cfg.CommentRateLimit)
	assert.Equal(t, time.Hour, cfg.RateLimitWindow)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, cfg.SessionSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.MinIO.Endpoint)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATA_DIR", "/srv/blog/data")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("COMMENT_RATE_LIMIT", "5")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,172.16.0.0/12 ")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/srv/blog/data", cfg.DataDir)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.CommentRateLimit)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, time.Hour, cfg.RateLimitWindow, "invalid values fall back to defaults")
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
}
