package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 向量模型调用指标
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moovie",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moovie",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)
)

// TMDB 调用指标
var (
	TMDBRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moovie",
			Name:      "tmdb_requests_total",
			Help:      "Total number of TMDB API requests",
		},
		[]string{"endpoint", "status"},
	)

	TMDBSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moovie",
			Name:      "tmdb_candidates_skipped_total",
			Help:      "Popular listing entries dropped during enrichment",
		},
		[]string{"reason"}, // "no_translation" / "detail_error"
	)
)

// 导入与搜索指标
var (
	SeedOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moovie",
			Name:      "seed_outcomes_total",
			Help:      "Per-candidate seeding outcomes",
		},
		[]string{"outcome"}, // "seeded" / "skipped" / "failed"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "moovie",
			Name:      "search_duration_seconds",
			Help:      "Prompt search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moovie",
			Name:      "catalog_size",
			Help:      "Number of movies scanned by the last search",
		},
	)
)

// HTTP 指标
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moovie",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moovie",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var registerOnce sync.Once

// Register 注册所有指标，main 中调用一次即可
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			TMDBRequestsTotal,
			TMDBSkippedTotal,
			SeedOutcomesTotal,
			SearchDuration,
			CatalogSize,
			HTTPRequestsTotal,
			HTTPRequestDuration,
		)
	})
}
