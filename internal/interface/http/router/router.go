package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/wizardshop/docs" // 注册Swagger文档
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/interface/http/handler"
	"github.com/xiebiao/wizardshop/internal/interface/http/middleware"
	"github.com/xiebiao/wizardshop/pkg/response"
)

// New 创建Gin引擎并注册路由
//
// 中间件顺序:
//
//	Recovery → Tracing → Metrics → Logger → (RequireSession) → Handler
//
// Tracing在Logger之前,请求日志才能带上trace_id
func New(
	cfg *config.Config,
	logger *zap.Logger,
	bookHandler *handler.BookHandler,
	sessionHandler *handler.SessionHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.Logger(logger))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 目录(公开接口)
		v1.GET("/books", bookHandler.ListBooks)
		v1.GET("/books/:id", bookHandler.GetBook)
		v1.GET("/facets", bookHandler.ListFacets)

		// 会话
		v1.POST("/sessions", sessionHandler.Create)

		me := v1.Group("/sessions/me")
		me.Use(sessionMiddleware.RequireSession())
		{
			me.GET("", sessionHandler.Get)
			me.DELETE("", sessionHandler.End)
			me.PATCH("/query", sessionHandler.UpdateQuery)
			me.POST("/shuffle", sessionHandler.Shuffle)
			me.GET("/cart", sessionHandler.GetCart)
			me.POST("/cart/:id", sessionHandler.ToggleCart)
			me.PUT("/selection/:id", sessionHandler.OpenSelection)
			me.DELETE("/selection", sessionHandler.CloseSelection)
			me.POST("/theme", sessionHandler.ToggleTheme)
			me.POST("/actions", sessionHandler.ApplyActions)
		}
	}

	return r
}
