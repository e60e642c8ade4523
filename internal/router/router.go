package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/handler"
	"github.com/user/moovie-semantic/internal/middleware"
)

// New 创建 gin 引擎并挂载中间件
func New(h *handler.Handler, logger *zap.Logger, corsOrigin string) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(corsOrigin))
	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	movies := r.Group("/api/movies")
	{
		movies.GET("", h.ListMovies)
		movies.POST("/search", h.SearchMovies)
		movies.POST("/create", h.CreateMovies)
		movies.POST("/sendmovies", h.SendMovies)
		movies.POST("/seed-jobs", h.StartSeedJob)
		movies.GET("/seed-jobs/:id", h.GetSeedJob)
		movies.DELETE("/admin/clear", h.ClearMovies)
		movies.GET("/:id", h.GetMovie)
		movies.DELETE("/:id", h.DeleteMovie)
	}
}
