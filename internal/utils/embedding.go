package utils

import (
	"errors"
	"time"

	"github.com/user/moovie-semantic/internal/metrics"
)

// ErrEmbeddingProvider 向量服务调用失败（传输、鉴权、响应格式）
var ErrEmbeddingProvider = errors.New("embedding provider error")

func observeEmbedding(provider, model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.EmbeddingRequestsTotal.WithLabelValues(provider, model, status).Inc()
	if err == nil {
		metrics.EmbeddingRequestDuration.WithLabelValues(provider, model).Observe(time.Since(start).Seconds())
	}
}
