package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/metrics"
	"github.com/user/moovie-semantic/internal/model"
)

// MovieLister 读取全部电影
type MovieLister interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
}

// SearchService 语义搜索服务
type SearchService struct {
	embedder Embedder
	store    MovieLister
	logger   *zap.Logger
}

// NewSearchService 创建搜索服务
func NewSearchService(embedder Embedder, store MovieLister, logger *zap.Logger) *SearchService {
	return &SearchService{
		embedder: embedder,
		store:    store,
		logger:   logger.With(zap.String("component", "search")),
	}
}

// Search 把提示词向量化后与全部电影比较，最多返回 SearchLimit 条
func (s *SearchService) Search(ctx context.Context, prompt string) ([]model.ScoredMovie, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	start := time.Now()

	query, err := s.embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("生成提示词向量失败: %w", err)
	}

	catalog, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取电影列表失败: %w", err)
	}
	metrics.CatalogSize.Set(float64(len(catalog)))

	results := Rank(query, catalog, SearchLimit)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("语义搜索完成",
		zap.Int("catalog", len(catalog)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}
