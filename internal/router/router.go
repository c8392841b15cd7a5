package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"starlog/internal/handlers"
	"starlog/internal/middleware"
	"starlog/internal/ratelimit"
	"starlog/internal/services"
)

// Deps 路由依赖的服务
type Deps struct {
	Comments *services.CommentService
	Views    *services.ViewService
	Posts    *services.PostService
	Essays   *services.EssayService
	Projects *services.ProjectService
	Carousel *services.CarouselService
	About    *services.AboutService
	Uploads  *services.UploadService
	Auth     *services.AdminAuth

	CommentLimiter *ratelimit.Limiter
	// TrustedProxies 为空时忽略 X-Forwarded-For，ClientIP 取直连地址
	TrustedProxies []string

	// PublicDir 非空时挂载为静态文件目录（images/、uploads/）
	PublicDir string
}

// RegisterRoutes 调用前需要已挂载 sessions 中间件
func RegisterRoutes(r *gin.Engine, d Deps) error {
	// 点赞身份和评论限流都基于 ClientIP，不能让客户端自己伪造
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Handlers
	commentHandler := handlers.NewCommentHandler(d.Comments)
	viewHandler := handlers.NewViewHandler(d.Views)
	postHandler := handlers.NewPostHandler(d.Posts, d.Views)
	essayHandler := handlers.NewEssayHandler(d.Essays)
	projectHandler := handlers.NewProjectHandler(d.Projects)
	carouselHandler := handlers.NewCarouselHandler(d.Carousel, d.Uploads)
	aboutHandler := handlers.NewAboutHandler(d.About)
	uploadHandler := handlers.NewUploadHandler(d.Uploads)
	authHandler := handlers.NewAuthHandler(d.Auth)

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if d.PublicDir != "" {
		r.Static("/images", d.PublicDir+"/images")
		r.Static("/uploads", d.PublicDir+"/uploads")
	}

	api := r.Group("/api")
	api.Use(middleware.LoadAdmin(d.Auth))

	// 公共接口 (Public API)
	{
		api.GET("/comments", commentHandler.List)                // 评论树
		api.GET("/comments/count", commentHandler.Count)         // 评论数
		api.POST("/comments/like", commentHandler.Like)          // 点赞/取消点赞
		api.POST("/views", viewHandler.Record)                   // 记录阅读
		api.GET("/views", viewHandler.Get)                       // 阅读量统计
		api.GET("/posts", postHandler.List)                      // 文章列表
		api.GET("/posts/:slug", postHandler.Detail)              // 文章详情
		api.GET("/search", postHandler.Search)                   // 搜索
		api.GET("/tags", postHandler.Tags)                       // 标签
		api.GET("/categories", postHandler.Categories)           // 分类
		api.GET("/essays", essayHandler.List)                    // 随笔
		api.GET("/essays/tags", essayHandler.Tags)               // 随笔标签
		api.POST("/essays/:id/like", essayHandler.Like)          // 随笔点赞
		api.GET("/projects", projectHandler.List)                // 项目
		api.GET("/projects/tags", projectHandler.Tags)           // 项目标签
		api.GET("/projects/:id", projectHandler.Detail)          // 项目详情
		api.GET("/projects/:id/content", projectHandler.Content) // 项目正文
		api.GET("/carousel", carouselHandler.List)               // 轮播图
		api.GET("/about", aboutHandler.Get)                      // 关于
		api.POST("/admin/login", authHandler.Login)              // 管理员登录
		api.POST("/admin/logout", authHandler.Logout)            // 退出登录

		// 发表评论单独限流
		api.POST("/comments", middleware.RateLimit(d.CommentLimiter), commentHandler.Create)
	}

	// 管理接口 (Admin API)
	admin := api.Group("")
	admin.Use(middleware.AdminRequired())
	{
		admin.DELETE("/comments", commentHandler.Delete)
		admin.DELETE("/comments/:id", commentHandler.Delete)

		admin.GET("/admin/me", authHandler.Me)
		admin.GET("/admin/posts", postHandler.List)
		admin.POST("/admin/posts", postHandler.Create)
		admin.GET("/admin/posts/:slug", postHandler.AdminGet)
		admin.PUT("/admin/posts/:slug", postHandler.Update)
		admin.DELETE("/admin/posts/:slug", postHandler.Delete)
		admin.GET("/admin/about", aboutHandler.Get)
		admin.PUT("/admin/about", aboutHandler.Save)

		admin.POST("/essays", essayHandler.Create)
		admin.PUT("/essays", essayHandler.Update)
		admin.PUT("/essays/:id", essayHandler.Update)
		admin.DELETE("/essays", essayHandler.Delete)
		admin.DELETE("/essays/:id", essayHandler.Delete)

		admin.POST("/projects", projectHandler.Create)
		admin.PUT("/projects", projectHandler.Update)
		admin.PUT("/projects/:id", projectHandler.Update)
		admin.DELETE("/projects", projectHandler.Delete)
		admin.DELETE("/projects/:id", projectHandler.Delete)
		admin.PUT("/projects/:id/content", projectHandler.UpdateContent)

		admin.POST("/carousel", carouselHandler.Create)
		admin.PUT("/carousel", carouselHandler.Update)
		admin.PUT("/carousel/:id", carouselHandler.Update)
		admin.DELETE("/carousel", carouselHandler.Delete)
		admin.DELETE("/carousel/:id", carouselHandler.Delete)
		admin.POST("/carousel/upload", carouselHandler.Upload)

		admin.POST("/upload", uploadHandler.Upload)
	}
	return nil
}
