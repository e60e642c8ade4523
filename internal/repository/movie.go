package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/user/moovie-semantic/internal/model"
)

// ErrDuplicateTMDBID 同一 TMDB ID 的电影已存在
var ErrDuplicateTMDBID = errors.New("movie with same tmdb id already exists")

// uniqueViolation PostgreSQL unique_violation 错误码
const uniqueViolation = "23505"

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 保存电影，ID 由数据库分配
func (r *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("tmdb_id %d: %w", movie.TMDBID, ErrDuplicateTMDBID)
		}
		return fmt.Errorf("保存电影失败: %w", err)
	}
	return nil
}

// FindByID 根据 ID 查找电影，不存在时返回 nil, nil
func (r *MovieRepository) FindByID(ctx context.Context, id int) (*model.Movie, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByTMDBID 根据 TMDB ID 查找电影，不存在时返回 nil, nil
func (r *MovieRepository) FindByTMDBID(ctx context.Context, tmdbID int64) (*model.Movie, error) {
	return r.first(ctx, "tmdb_id = ?", tmdbID)
}

func (r *MovieRepository) first(ctx context.Context, query string, arg interface{}) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Where(query, arg).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询电影失败: %w", err)
	}
	return &movie, nil
}

// ListAll 返回全部电影（按 ID 排序）
func (r *MovieRepository) ListAll(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := r.db.WithContext(ctx).Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("查询电影列表失败: %w", err)
	}
	return movies, nil
}

// Delete 删除单部电影，返回是否存在
func (r *MovieRepository) Delete(ctx context.Context, id int) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Movie{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("删除电影失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAll 清空电影表，返回删除条数
func (r *MovieRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Movie{})
	if result.Error != nil {
		return 0, fmt.Errorf("清空电影失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Count 电影总数
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("统计电影失败: %w", err)
	}
	return n, nil
}
