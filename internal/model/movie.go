package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Movie 目录中的电影条目（TMDB 信息 + 语义向量）
type Movie struct {
	ID           int              `json:"id" db:"id" gorm:"primaryKey"`
	TMDBID       int64            `json:"tmdb_id" db:"tmdb_id" gorm:"uniqueIndex:idx_movies_tmdb_id,where:tmdb_id <> 0"`
	Title        string           `json:"title" db:"title" gorm:"not null"`
	Overview     string           `json:"overview" db:"overview"`
	Genre        string           `json:"genre" db:"genre"`
	ReleaseYear  int              `json:"release_year" db:"release_year"`
	Director     string           `json:"director" db:"director"`
	Rating       float64          `json:"rating" db:"rating"`
	PosterPath   string           `json:"poster_path" db:"poster_path"`
	BackdropPath string           `json:"backdrop_path" db:"backdrop_path"`
	Embedding    *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// Vector 返回向量切片，未生成向量时返回 nil
func (m *Movie) Vector() []float32 {
	if m == nil || m.Embedding == nil {
		return nil
	}
	return m.Embedding.Slice()
}

// SetVector 设置向量（空切片视为未向量化）
func (m *Movie) SetVector(v []float32) {
	if len(v) == 0 {
		m.Embedding = nil
		return
	}
	vec := pgvector.NewVector(v)
	m.Embedding = &vec
}

// ScoredMovie 带相似度分数的电影
type ScoredMovie struct {
	Movie      Movie   `json:"movie"`
	Similarity float64 `json:"similarity"`
}

// Candidate 从 TMDB 获取、尚未入库的候选电影
type Candidate struct {
	TMDBID       int64
	Title        string
	Overview     string
	PosterPath   *string
	BackdropPath *string
	ReleaseYear  int
	Genre        string
	Rating       *float64
	Director     *string
}
