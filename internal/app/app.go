package app

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/config"
	"github.com/user/moovie-semantic/internal/logger"
	"github.com/user/moovie-semantic/internal/metrics"
	"github.com/user/moovie-semantic/internal/repository"
	"github.com/user/moovie-semantic/internal/service"
)

// App 服务端与命令行共用的依赖
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Repos  *repository.Repositories
	TMDB   *service.TMDBService
	Seeder *service.SeedService
	Search *service.SearchService
}

// New 加载配置、连接数据库并组装服务
func New() (*App, error) {
	// 加载环境变量
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		log.Debug("未找到 .env 文件，使用系统环境变量")
	}

	metrics.Register()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	repos := repository.NewRepositories(db)

	embedder, err := service.NewEmbedder(cfg.Embedding)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	tmdb := service.NewTMDBService(cfg.TMDB, log)

	return &App{
		Config: cfg,
		Logger: log,
		Repos:  repos,
		TMDB:   tmdb,
		Seeder: service.NewSeedService(repos.Movie, tmdb, embedder, log),
		Search: service.NewSearchService(embedder, repos.Movie, log),
	}, nil
}

// Close 关闭数据库连接并刷新日志
func (a *App) Close() {
	if err := a.Repos.Close(); err != nil {
		a.Logger.Warn("关闭数据库失败", zap.Error(err))
	}
	_ = a.Logger.Sync()
}
