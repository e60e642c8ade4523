package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/app"
	"github.com/user/moovie-semantic/internal/handler"
	"github.com/user/moovie-semantic/internal/router"
	"github.com/user/moovie-semantic/internal/service"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}
	defer a.Close()
	logger := a.Logger
	cfg := a.Config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 异步导入任务与定时导入
	jobs := service.NewSeedJobs(ctx, a.Seeder, logger)
	service.NewSeedScheduler(a.Seeder, cfg.Seed.Interval, cfg.Seed.Count, logger).Start(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.NewHandler(a.Repos.Movie, a.Search, a.Seeder, jobs, logger)
	r := router.New(h, logger, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// 同步导入 1000 部电影耗时较长
		WriteTimeout:   10 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("服务器启动", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	<-ctx.Done()
	logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器强制关闭", zap.Error(err))
		return
	}

	logger.Info("服务器已退出")
}
