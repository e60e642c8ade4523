package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/model"
	"github.com/user/moovie-semantic/internal/service"
	"github.com/user/moovie-semantic/internal/utils"
)

// MaxSeedCount 单次导入热门电影的上限
const MaxSeedCount = 1000

// MovieStore 电影存储（读取与删除）
type MovieStore interface {
	FindByID(ctx context.Context, id int) (*model.Movie, error)
	ListAll(ctx context.Context) ([]model.Movie, error)
	Delete(ctx context.Context, id int) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Searcher 语义搜索
type Searcher interface {
	Search(ctx context.Context, prompt string) ([]model.ScoredMovie, error)
}

// Seeder 同步导入
type Seeder interface {
	SeedByTitles(ctx context.Context, titles []string) ([]model.Movie, error)
	SeedPopular(ctx context.Context, count int) []model.SeedResult
}

// SeedJobRunner 异步导入任务
type SeedJobRunner interface {
	Start(count int) (*model.SeedJob, error)
	Get(id string) (*model.SeedJob, bool)
}

// Handler HTTP 处理器
type Handler struct {
	Movies MovieStore
	Search Searcher
	Seeder Seeder
	Jobs   SeedJobRunner
	Logger *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(movies MovieStore, search Searcher, seeder Seeder, jobs SeedJobRunner, logger *zap.Logger) *Handler {
	return &Handler{
		Movies: movies,
		Search: search,
		Seeder: seeder,
		Jobs:   jobs,
		Logger: logger.With(zap.String("component", "http")),
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError 按错误类型返回状态码：输入错误 400，向量服务错误 502，其余 500
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidationError(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrEmbeddingProvider):
		h.Logger.Warn("embedding provider failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.BadGateway(c, err.Error())
	default:
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.InternalServerError(c, "")
	}
}
