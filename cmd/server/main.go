package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"starlog/internal/config"
	"starlog/internal/ratelimit"
	"starlog/internal/router"
	"starlog/internal/services"
	"starlog/internal/storage"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 上传存储：配置了 MinIO 用对象存储，否则写本地 public 目录
	var backend storage.Uploader = storage.NewLocalStorage(cfg.PublicDir)
	if cfg.MinIO.Endpoint != "" {
		m, err := storage.NewMinIOStorage(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			PublicURL: cfg.MinIO.PublicURL,
		})
		if err != nil {
			log.Fatalf("初始化 MinIO 失败: %v", err)
		}
		backend = m
	}

	mail := services.NewMailService(services.MailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		SiteURL:  cfg.SiteURL,
	})
	uploads := services.NewUploadService(backend, cfg.MaxUploadBytes)

	limiter := ratelimit.New(cfg.CommentRateLimit, cfg.RateLimitWindow)
	limiter.StartCleanup(ctx, 10*time.Minute)

	deps := router.Deps{
		Comments:       services.NewCommentService(cfg.DataDir, mail),
		Views:          services.NewViewService(cfg.DataDir),
		Posts:          services.NewPostService(cfg.PostsDir, cfg.PostCacheTTL),
		Essays:         services.NewEssayService(cfg.DataDir),
		Projects:       services.NewProjectService(cfg.DataDir, cfg.ProjectsContentDir),
		Carousel:       services.NewCarouselService(cfg.DataDir, uploads),
		About:          services.NewAboutService(cfg.DataDir),
		Uploads:        uploads,
		Auth:           services.NewAdminAuth(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL),
		CommentLimiter: limiter,
		TrustedProxies: cfg.TrustedProxies,
		PublicDir:      cfg.PublicDir,
	}

	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("starlog_session", store))

	if err := router.RegisterRoutes(r, deps); err != nil {
		log.Fatalf("注册路由失败: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starlog server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
}
