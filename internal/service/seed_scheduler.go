package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/model"
)

// SeedScheduler 定时导入热门电影
type SeedScheduler struct {
	seeder   PopularSeeder
	interval time.Duration
	count    int
	logger   *zap.Logger
}

// NewSeedScheduler 创建定时导入任务
func NewSeedScheduler(seeder PopularSeeder, interval time.Duration, count int, logger *zap.Logger) *SeedScheduler {
	return &SeedScheduler{
		seeder:   seeder,
		interval: interval,
		count:    count,
		logger:   logger.With(zap.String("component", "seed_scheduler")),
	}
}

// Start 启动定时任务，interval 或 count 为 0 时不启动；ctx 取消后退出
func (s *SeedScheduler) Start(ctx context.Context) bool {
	if s.interval <= 0 || s.count <= 0 {
		return false
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// 启动时先运行一次
		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	s.logger.Info("定时导入已启动", zap.Duration("interval", s.interval), zap.Int("count", s.count))
	return true
}

func (s *SeedScheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("定时导入发生恐慌", zap.Any("panic", r))
		}
	}()

	s.logger.Info("开始定时导入热门电影...")
	results := s.seeder.SeedPopular(ctx, s.count)
	s.logger.Info("定时导入结束", zap.Int("results", len(results)), zap.Int("seeded", model.CountSeeded(results)))
}
