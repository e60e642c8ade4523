package service

import (
	"math"
	"sort"

	"github.com/user/moovie-semantic/internal/model"
)

// SearchLimit 语义搜索固定返回的最大条数
const SearchLimit = 5

// CosineSimilarity 余弦相似度；长度不同或任一向量为零向量时返回 0
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank 全量扫描打分，按相似度降序返回前 limit 条（limit <= 0 返回全部）
// 分数相同的条目保持原有顺序
func Rank(query []float32, catalog []model.Movie, limit int) []model.ScoredMovie {
	scored := make([]model.ScoredMovie, len(catalog))
	for i := range catalog {
		scored[i] = model.ScoredMovie{
			Movie:      catalog[i],
			Similarity: CosineSimilarity(query, catalog[i].Vector()),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
