package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/user/moovie-semantic/internal/metrics"
	"github.com/user/moovie-semantic/internal/model"
	"github.com/user/moovie-semantic/internal/repository"
)

const (
	MsgDuplicateTMDBID = "Skipped: movie with same external id already exists."
	MsgNoCandidates    = "No movies returned from TMDB. Check TMDB_API_KEY and network connectivity."
)

// MovieStore 电影存储
type MovieStore interface {
	Create(ctx context.Context, movie *model.Movie) error
	FindByTMDBID(ctx context.Context, tmdbID int64) (*model.Movie, error)
	ListAll(ctx context.Context) ([]model.Movie, error)
}

// SeedService 导入服务：拉取候选电影、生成向量、入库
type SeedService struct {
	store    MovieStore
	catalog  CatalogProvider
	embedder Embedder
	logger   *zap.Logger
	group    singleflight.Group
}

// NewSeedService 创建导入服务
func NewSeedService(store MovieStore, catalog CatalogProvider, embedder Embedder, logger *zap.Logger) *SeedService {
	return &SeedService{
		store:    store,
		catalog:  catalog,
		embedder: embedder,
		logger:   logger.With(zap.String("component", "seed")),
	}
}

// SeedByTitles 按片名导入，不做去重；任何向量或存储错误都会中止整个请求
func (s *SeedService) SeedByTitles(ctx context.Context, titles []string) ([]model.Movie, error) {
	cleaned := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoTitles
	}

	movies := make([]model.Movie, 0, len(cleaned))
	for _, title := range cleaned {
		poster, backdrop := s.catalog.LookupImages(ctx, title)
		movie := model.Movie{
			Title:        title,
			PosterPath:   derefString(poster),
			BackdropPath: derefString(backdrop),
		}

		vec, err := s.embedder.Embed(ctx, BuildMovieEmbeddingText(movie.Title, movie.Overview, movie.Genre))
		if err != nil {
			return nil, fmt.Errorf("生成向量失败 (%s): %w", title, err)
		}
		movie.SetVector(vec)

		if err := s.store.Create(ctx, &movie); err != nil {
			return nil, fmt.Errorf("保存电影失败 (%s): %w", title, err)
		}
		movies = append(movies, movie)
	}

	s.logger.Info("按片名导入完成", zap.Int("count", len(movies)))
	return movies, nil
}

// SeedPopular 导入 TMDB 热门电影，每个候选返回一条结果，单条失败不影响其他条目
func (s *SeedService) SeedPopular(ctx context.Context, count int) []model.SeedResult {
	results := make([]model.SeedResult, 0)
	if count <= 0 {
		return results
	}

	candidates := s.catalog.FetchPopular(ctx, count)
	if len(candidates) == 0 {
		s.logger.Warn("TMDB 未返回任何候选电影", zap.Int("requested", count))
		msg := MsgNoCandidates
		return append(results, model.SeedResult{Message: &msg, Embedding: []float32{}})
	}

	var seeded, skipped, failed int
	for _, c := range candidates {
		r := s.seedCandidate(ctx, c)
		switch {
		case r.Success:
			seeded++
			metrics.SeedOutcomesTotal.WithLabelValues("seeded").Inc()
		case r.MovieID != nil:
			skipped++
			metrics.SeedOutcomesTotal.WithLabelValues("skipped").Inc()
		default:
			failed++
			metrics.SeedOutcomesTotal.WithLabelValues("failed").Inc()
		}
		results = append(results, r)
	}

	s.logger.Info("热门电影导入完成",
		zap.Int("requested", count),
		zap.Int("candidates", len(candidates)),
		zap.Int("seeded", seeded),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	return results
}

// seedWrite 单条写入结果
type seedWrite struct {
	movie   *model.Movie
	created bool
}

func (s *SeedService) seedCandidate(ctx context.Context, c model.Candidate) (res model.SeedResult) {
	res = model.SeedResult{TMDBID: c.TMDBID, Title: c.Title, Embedding: []float32{}}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("导入候选电影发生恐慌", zap.Int64("tmdb_id", c.TMDBID), zap.Any("panic", r))
			msg := fmt.Sprintf("panic: %v", r)
			res = model.SeedResult{TMDBID: c.TMDBID, Title: c.Title, Message: &msg, Embedding: []float32{}}
		}
	}()

	var (
		w        seedWrite
		err      error
		executed = true
	)
	if c.TMDBID == 0 {
		// 外部 ID 为 0 表示未知，不参与去重
		w, err = s.writeCandidate(ctx, c)
	} else {
		// 同一 TMDB ID 同时只允许一个写入；只有执行者自己的写入算作成功
		executed = false
		var v interface{}
		v, err, _ = s.group.Do(strconv.FormatInt(c.TMDBID, 10), func() (interface{}, error) {
			executed = true
			return s.writeCandidate(ctx, c)
		})
		if err == nil {
			w = v.(seedWrite)
		}
	}
	if err != nil {
		s.logger.Warn("导入候选电影失败", zap.Int64("tmdb_id", c.TMDBID), zap.Error(err))
		msg := err.Error()
		res.Message = &msg
		return res
	}

	id := w.movie.ID
	res.MovieID = &id
	if vec := w.movie.Vector(); vec != nil {
		res.Embedding = vec
	}
	if w.created && executed {
		res.Success = true
		return res
	}

	msg := MsgDuplicateTMDBID
	res.Message = &msg
	return res
}

// writeCandidate 查重、生成向量并保存
func (s *SeedService) writeCandidate(ctx context.Context, c model.Candidate) (seedWrite, error) {
	if c.TMDBID != 0 {
		existing, err := s.store.FindByTMDBID(ctx, c.TMDBID)
		if err != nil {
			return seedWrite{}, err
		}
		if existing != nil {
			return seedWrite{movie: existing}, nil
		}
	}

	movie := &model.Movie{
		TMDBID:       c.TMDBID,
		Title:        c.Title,
		Overview:     c.Overview,
		Genre:        c.Genre,
		ReleaseYear:  c.ReleaseYear,
		Director:     derefString(c.Director),
		PosterPath:   derefString(c.PosterPath),
		BackdropPath: derefString(c.BackdropPath),
	}
	if c.Rating != nil {
		movie.Rating = *c.Rating
	}

	vec, err := s.embedder.Embed(ctx, BuildMovieEmbeddingText(movie.Title, movie.Overview, movie.Genre))
	if err != nil {
		return seedWrite{}, fmt.Errorf("生成向量失败: %w", err)
	}
	movie.SetVector(vec)

	if err := s.store.Create(ctx, movie); err != nil {
		// 其他进程抢先写入了同一 TMDB ID
		if c.TMDBID != 0 && errors.Is(err, repository.ErrDuplicateTMDBID) {
			if existing, findErr := s.store.FindByTMDBID(ctx, c.TMDBID); findErr == nil && existing != nil {
				return seedWrite{movie: existing}, nil
			}
		}
		return seedWrite{}, err
	}
	return seedWrite{movie: movie, created: true}, nil
}
