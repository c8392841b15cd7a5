package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	GinMode string
	SiteURL string

	// TrustedProxies 允许设置 X-Forwarded-For 的代理地址 / CIDR，为空时只信任直连地址
	TrustedProxies []string

	// 文件存储
	DataDir            string
	PostsDir           string
	ProjectsContentDir string
	PublicDir          string
	MaxUploadBytes     int64

	// 管理员
	SessionSecret     string
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
	AdminPassword     string

	// 限流
	CommentRateLimit int
	RateLimitWindow  time.Duration

	PostCacheTTL time.Duration

	SMTP  SMTPConfig
	MinIO MinIOConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// MinIOConfig Endpoint 为空时上传文件保存到本地 public 目录
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Load 先加载 .env（不存在时忽略），再从环境变量读取配置
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] 未找到 .env 文件，使用系统环境变量")
	}

	sessionSecret := getEnv("SESSION_SECRET", "starlog-dev-session-secret")
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		SiteURL: getEnv("SITE_URL", "http://localhost:8080"),

		TrustedProxies: getEnvList("TRUSTED_PROXIES"),

		DataDir:            getEnv("DATA_DIR", "data"),
		PostsDir:           getEnv("POSTS_DIR", "posts"),
		ProjectsContentDir: getEnv("PROJECTS_CONTENT_DIR", "projects-content"),
		PublicDir:          getEnv("PUBLIC_DIR", "public"),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),

		SessionSecret:     sessionSecret,
		JWTSecret:         getEnv("JWT_SECRET", sessionSecret),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),

		CommentRateLimit: getEnvInt("COMMENT_RATE_LIMIT", 20),
		RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", time.Hour),

		PostCacheTTL: getEnvDuration("POST_CACHE_TTL", time.Minute),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", ""),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "starlog"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
	}

	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		log.Println("[config] ⚠️ 未设置 ADMIN_PASSWORD_HASH / ADMIN_PASSWORD，管理后台无法登录")
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvList 逗号分隔，忽略空项
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
