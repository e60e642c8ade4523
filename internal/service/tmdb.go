package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/moovie-semantic/internal/config"
	"github.com/user/moovie-semantic/internal/metrics"
	"github.com/user/moovie-semantic/internal/model"
	"github.com/user/moovie-semantic/internal/utils"
)

const (
	popularPageSize   = 20
	maxPopularPages   = 500 // TMDB 不返回 500 页以后的数据
	detailConcurrency = 4
	imageCacheSize    = 1000
	imageCacheTTL     = 6 * time.Hour
)

// CatalogProvider 候选电影来源
type CatalogProvider interface {
	LookupImages(ctx context.Context, title string) (poster, backdrop *string)
	FetchPopular(ctx context.Context, count int) []model.Candidate
}

type imagePair struct {
	Poster   *string
	Backdrop *string
}

// TMDBService TMDB 接口客户端
type TMDBService struct {
	client   *utils.HTTPClient
	detail   *utils.HTTPClient
	baseURL  string
	language string
	locale   string
	cred     Credential
	images   *utils.TTLCache[imagePair]
	logger   *zap.Logger
}

// NewTMDBService 创建 TMDB 客户端
func NewTMDBService(cfg config.TMDBConfig, logger *zap.Logger) *TMDBService {
	client := utils.NewHTTPClient(cfg.Timeout,
		utils.WithRateLimit(cfg.RateLimit, int(cfg.RateLimit)),
		utils.WithCircuitBreaker("tmdb", 5, 30*time.Second),
	)
	return &TMDBService{
		client:   client,
		detail:   client.WithoutBreaker(), // 详情失败只跳过单条，不计入熔断
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		locale:   localeOf(cfg.Language),
		cred:     ClassifyCredential(cfg.APIKey),
		images:   utils.NewTTLCache[imagePair](imageCacheSize, imageCacheTTL),
		logger:   logger.With(zap.String("component", "tmdb")),
	}
}

// localeOf 取语言代码前缀，如 pt-BR -> pt
func localeOf(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

// get 发送 GET 请求并解析 JSON
func (s *TMDBService) get(ctx context.Context, client *utils.HTTPClient, endpoint, path string, query url.Values, target interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("language", s.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept-Language", s.language)
	s.cred.Apply(req)

	err = client.GetJSON(req, target)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.TMDBRequestsTotal.WithLabelValues(endpoint, status).Inc()
	return err
}

type tmdbSearchResponse struct {
	Results []struct {
		PosterPath   *string `json:"poster_path"`
		BackdropPath *string `json:"backdrop_path"`
	} `json:"results"`
}

// LookupImages 按片名搜索，取第一个结果的海报和背景图
// 任何失败都只记录日志并返回 (nil, nil)
func (s *TMDBService) LookupImages(ctx context.Context, title string) (*string, *string) {
	key := strings.ToLower(utils.NormalizeTitle(title))
	if key == "" {
		return nil, nil
	}
	if cached, ok := s.images.Get(key); ok {
		return cached.Poster, cached.Backdrop
	}

	var result tmdbSearchResponse
	query := url.Values{"query": {strings.TrimSpace(title)}}
	if err := s.get(ctx, s.client, "search", "/search/movie", query, &result); err != nil {
		s.logger.Warn("TMDB 搜索失败", zap.String("title", title), zap.Error(err))
		return nil, nil
	}
	if len(result.Results) == 0 {
		return nil, nil
	}

	first := result.Results[0]
	pair := imagePair{
		Poster:   ResolveImagePtr(first.PosterPath, ImagePoster),
		Backdrop: ResolveImagePtr(first.BackdropPath, ImageBackdrop),
	}
	if pair.Poster != nil || pair.Backdrop != nil {
		s.images.Set(key, pair)
	}
	return pair.Poster, pair.Backdrop
}

type tmdbListEntry struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
}

type tmdbPopularResponse struct {
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Results    []tmdbListEntry `json:"results"`
}

type tmdbMovieDetail struct {
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	VoteAverage json.RawMessage `json:"vote_average"`
	Credits     struct {
		Crew []struct {
			Job  string `json:"job"`
			Name string `json:"name"`
		} `json:"crew"`
	} `json:"credits"`
	Translations struct {
		Translations []struct {
			ISO6391 string `json:"iso_639_1"`
			Data    struct {
				Title    string `json:"title"`
				Overview string `json:"overview"`
			} `json:"data"`
		} `json:"translations"`
	} `json:"translations"`
}

var errNoTranslation = errors.New("no translation for target locale")

// FetchPopular 分页拉取热门电影并补全详情
// 只保留存在目标语言翻译的电影，凑够 count 条即停止
func (s *TMDBService) FetchPopular(ctx context.Context, count int) []model.Candidate {
	out := make([]model.Candidate, 0)
	if count <= 0 {
		return out
	}

	for page := 1; page <= maxPopularPages && len(out) < count; page++ {
		if ctx.Err() != nil {
			break
		}

		var listing tmdbPopularResponse
		query := url.Values{"page": {fmt.Sprint(page)}}
		if err := s.get(ctx, s.client, "popular", "/movie/popular", query, &listing); err != nil {
			s.logger.Warn("TMDB 热门列表获取失败", zap.Int("page", page), zap.Error(err))
			break
		}
		if len(listing.Results) == 0 {
			break
		}

		entries := listing.Results
		for i := 0; i < len(entries) && len(out) < count; {
			need := count - len(out)
			end := i + need
			if end > len(entries) {
				end = len(entries)
			}
			batch := entries[i:end]
			for _, c := range s.enrichBatch(ctx, batch) {
				if c != nil && len(out) < count {
					out = append(out, *c)
				}
			}
			i = end
		}

		if listing.TotalPages > 0 && page >= listing.TotalPages {
			break
		}
	}

	s.logger.Info("TMDB 热门电影获取完成", zap.Int("requested", count), zap.Int("collected", len(out)))
	return out
}

// enrichBatch 并发获取详情，结果顺序与 entries 一致，跳过的条目为 nil
func (s *TMDBService) enrichBatch(ctx context.Context, entries []tmdbListEntry) []*model.Candidate {
	results := make([]*model.Candidate, len(entries))
	var g errgroup.Group
	g.SetLimit(detailConcurrency)
	for i := range entries {
		g.Go(func() error {
			c, err := s.enrich(ctx, entries[i])
			switch {
			case errors.Is(err, errNoTranslation):
				metrics.TMDBSkippedTotal.WithLabelValues("no_translation").Inc()
				s.logger.Info("跳过没有目标语言翻译的电影", zap.Int64("tmdb_id", entries[i].ID), zap.String("locale", s.locale))
			case err != nil:
				metrics.TMDBSkippedTotal.WithLabelValues("detail_error").Inc()
				s.logger.Warn("TMDB 详情获取失败", zap.Int64("tmdb_id", entries[i].ID), zap.Error(err))
			default:
				results[i] = c
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// enrich 用详情接口补全单部电影
func (s *TMDBService) enrich(ctx context.Context, entry tmdbListEntry) (*model.Candidate, error) {
	var detail tmdbMovieDetail
	query := url.Values{"append_to_response": {"credits,translations"}}
	if err := s.get(ctx, s.detail, "detail", fmt.Sprintf("/movie/%d", entry.ID), query, &detail); err != nil {
		return nil, err
	}

	c := &model.Candidate{
		TMDBID:       entry.ID,
		Title:        entry.Title,
		Overview:     entry.Overview,
		PosterPath:   ResolveImagePtr(entry.PosterPath, ImagePoster),
		BackdropPath: ResolveImagePtr(entry.BackdropPath, ImageBackdrop),
		ReleaseYear:  utils.ParseReleaseYear(entry.ReleaseDate),
	}

	translated := false
	for _, tr := range detail.Translations.Translations {
		if !strings.EqualFold(tr.ISO6391, s.locale) {
			continue
		}
		translated = true
		if t := strings.TrimSpace(tr.Data.Title); t != "" {
			c.Title = tr.Data.Title
		}
		if o := strings.TrimSpace(tr.Data.Overview); o != "" {
			c.Overview = tr.Data.Overview
		}
		break
	}
	if !translated {
		return nil, errNoTranslation
	}

	names := make([]string, 0, len(detail.Genres))
	for _, g := range detail.Genres {
		names = append(names, g.Name)
	}
	c.Genre = strings.Join(names, ", ")

	if v, ok := utils.ParseNumber(detail.VoteAverage); ok {
		c.Rating = &v
	}

	for _, member := range detail.Credits.Crew {
		if strings.EqualFold(member.Job, "Director") {
			name := member.Name
			c.Director = &name
			break
		}
	}
	return c, nil
}
