package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/model"
	"github.com/user/moovie-semantic/internal/service"
	"github.com/user/moovie-semantic/internal/utils"
)

// MovieResponse 电影接口输出，图片路径已解析为完整地址
type MovieResponse struct {
	ID           int       `json:"id"`
	TMDBID       int64     `json:"tmdb_id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview"`
	Genre        string    `json:"genre"`
	ReleaseYear  int       `json:"release_year"`
	Director     string    `json:"director"`
	Rating       float64   `json:"rating"`
	PosterPath   *string   `json:"poster_path"`
	BackdropPath *string   `json:"backdrop_path"`
	Similarity   *float64  `json:"similarity,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toMovieResponse(m model.Movie) MovieResponse {
	return MovieResponse{
		ID:           m.ID,
		TMDBID:       m.TMDBID,
		Title:        m.Title,
		Overview:     m.Overview,
		Genre:        m.Genre,
		ReleaseYear:  m.ReleaseYear,
		Director:     m.Director,
		Rating:       m.Rating,
		PosterPath:   service.ResolveImageURL(m.PosterPath, service.ImagePoster),
		BackdropPath: service.ResolveImageURL(m.BackdropPath, service.ImageBackdrop),
		CreatedAt:    m.CreatedAt,
	}
}

func toMovieResponses(movies []model.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(m))
	}
	return out
}

type searchRequest struct {
	Prompt string `json:"prompt"`
}

type createRequest struct {
	Titles []string `json:"titles"`
}

type seedRequest struct {
	Count int `json:"count"`
}

// SeedResponse 热门导入结果
type SeedResponse struct {
	Requested int                `json:"requested"`
	Seeded    int                `json:"seeded"`
	Items     []model.SeedResult `json:"items"`
}

// SearchMovies 根据提示词语义搜索电影
func (h *Handler) SearchMovies(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误")
		return
	}

	results, err := h.Search.Search(c.Request.Context(), req.Prompt)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]MovieResponse, 0, len(results))
	for _, r := range results {
		resp := toMovieResponse(r.Movie)
		sim := r.Similarity
		resp.Similarity = &sim
		out = append(out, resp)
	}
	utils.Success(c, out)
}

// CreateMovies 按片名导入电影
func (h *Handler) CreateMovies(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误")
		return
	}

	movies, err := h.Seeder.SeedByTitles(c.Request.Context(), req.Titles)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, toMovieResponses(movies))
}

// parseSeedCount 读取导入数量（未截断）
func parseSeedCount(c *gin.Context) (int, bool) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误")
		return 0, false
	}
	if req.Count <= 0 {
		utils.BadRequest(c, service.ErrInvalidCount.Error())
		return 0, false
	}
	return req.Count, true
}

// capSeedCount 超过上限时截断
func capSeedCount(count int) int {
	if count > MaxSeedCount {
		return MaxSeedCount
	}
	return count
}

// SendMovies 同步导入 TMDB 热门电影
func (h *Handler) SendMovies(c *gin.Context) {
	count, ok := parseSeedCount(c)
	if !ok {
		return
	}

	results := h.Seeder.SeedPopular(c.Request.Context(), capSeedCount(count))
	utils.Success(c, SeedResponse{
		Requested: count,
		Seeded:    model.CountSeeded(results),
		Items:     results,
	})
}

// StartSeedJob 异步导入 TMDB 热门电影
func (h *Handler) StartSeedJob(c *gin.Context) {
	count, ok := parseSeedCount(c)
	if !ok {
		return
	}

	job, err := h.Jobs.Start(capSeedCount(count))
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Accepted(c, job)
}

// GetSeedJob 查询导入任务
func (h *Handler) GetSeedJob(c *gin.Context) {
	job, ok := h.Jobs.Get(c.Param("id"))
	if !ok {
		utils.NotFound(c, "任务不存在")
		return
	}
	utils.Success(c, job)
}

// ListMovies 全部电影
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Movies.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, toMovieResponses(movies))
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "无效的电影 ID")
		return 0, false
	}
	return id, true
}

// GetMovie 单部电影
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := h.Movies.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, toMovieResponse(*movie))
}

// DeleteMovie 删除单部电影
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.Movies.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.SuccessWithMessage(c, "删除成功", gin.H{"id": id})
}

// ClearMovies 清空全部电影，无需确认
func (h *Handler) ClearMovies(c *gin.Context) {
	n, err := h.Movies.DeleteAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Logger.Warn("catalog cleared", zap.Int64("deleted", n), zap.String("ip", c.ClientIP()))
	utils.Success(c, gin.H{"cleared": true, "deleted": n})
}
