package model

import "time"

// SeedResult 批量导入中单个候选电影的处理结果
type SeedResult struct {
	TMDBID    int64     `json:"tmdb_id"`
	Title     string    `json:"title"`
	MovieID   *int      `json:"movie_id"`
	Success   bool      `json:"success"`
	Message   *string   `json:"message"`
	Embedding []float32 `json:"embedding"`
}

// SeedJob 状态
const (
	SeedJobRunning   = "running"
	SeedJobCompleted = "completed"
	SeedJobFailed    = "failed"
)

// SeedJob 异步导入任务
type SeedJob struct {
	ID         string       `json:"id"`
	Requested  int          `json:"requested"`
	Status     string       `json:"status"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
	Results    []SeedResult `json:"results,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// SeededCount 成功导入的数量
func (j *SeedJob) SeededCount() int {
	return CountSeeded(j.Results)
}

// CountSeeded 统计成功条数
func CountSeeded(results []SeedResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
