package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/next-indexer/internal/handler"
	"github.com/ashwinyue/next-indexer/internal/middleware"
	"github.com/ashwinyue/next-indexer/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", middleware.RequireAuth(svc), h.Auth.Logout)
			authGroup.GET("/me", middleware.RequireAuth(svc), h.Auth.Me)
		}

		// Tools 工具记录
		tools := v1.Group("/tools")
		tools.Use(middleware.RequireAuth(svc))
		{
			tools.GET("", h.Tool.ListTools)
			tools.POST("", h.Tool.CreateTool)
			tools.GET("/:id", h.Tool.GetTool)
			tools.PUT("/:id", h.Tool.UpdateTool)
			tools.DELETE("/:id", h.Tool.DeleteTool)
			tools.PATCH("/:id/favorite", h.Tool.ToggleFavorite)
			tools.PATCH("/:id/usage", h.Tool.IncrementUsage)
		}

		// Extract 结构化抽取
		v1.POST("/extract", h.Extract.Extract)
	}

	return r
}
