package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/model"
)

const seedJobTTL = 24 * time.Hour

// PopularSeeder 热门电影导入
type PopularSeeder interface {
	SeedPopular(ctx context.Context, count int) []model.SeedResult
}

// SeedJobs 异步导入任务，状态保存在内存中，24 小时后过期
type SeedJobs struct {
	ctx    context.Context
	seeder PopularSeeder
	jobs   *cache.Cache
	logger *zap.Logger
}

// NewSeedJobs 创建任务管理器，ctx 取消时正在运行的任务随之停止
func NewSeedJobs(ctx context.Context, seeder PopularSeeder, logger *zap.Logger) *SeedJobs {
	return &SeedJobs{
		ctx:    ctx,
		seeder: seeder,
		jobs:   cache.New(seedJobTTL, time.Hour),
		logger: logger.With(zap.String("component", "seed_jobs")),
	}
}

// Start 启动异步导入任务
func (j *SeedJobs) Start(count int) (*model.SeedJob, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	job := model.SeedJob{
		ID:        uuid.NewString(),
		Requested: count,
		Status:    model.SeedJobRunning,
		StartedAt: time.Now(),
	}
	j.jobs.SetDefault(job.ID, job)

	go j.run(job)

	return &job, nil
}

func (j *SeedJobs) run(job model.SeedJob) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("导入任务发生恐慌", zap.String("job_id", job.ID), zap.Any("panic", r))
			j.finish(job, model.SeedJobFailed, nil, fmt.Sprintf("panic: %v", r))
		}
	}()

	j.logger.Info("导入任务开始", zap.String("job_id", job.ID), zap.Int("count", job.Requested))
	results := j.seeder.SeedPopular(j.ctx, job.Requested)

	if err := j.ctx.Err(); err != nil {
		j.finish(job, model.SeedJobFailed, results, err.Error())
		return
	}
	j.finish(job, model.SeedJobCompleted, results, "")
	j.logger.Info("导入任务完成", zap.String("job_id", job.ID), zap.Int("seeded", model.CountSeeded(results)))
}

func (j *SeedJobs) finish(job model.SeedJob, status string, results []model.SeedResult, errMsg string) {
	now := time.Now()
	job.Status = status
	job.FinishedAt = &now
	job.Results = results
	job.Error = errMsg
	j.jobs.SetDefault(job.ID, job)
}

// Get 查询任务状态
func (j *SeedJobs) Get(id string) (*model.SeedJob, bool) {
	v, ok := j.jobs.Get(id)
	if !ok {
		return nil, false
	}
	job := v.(model.SeedJob)
	return &job, true
}
