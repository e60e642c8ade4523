package service

import (
	"context"
	"fmt"
	"time"

	"github.com/user/moovie-semantic/internal/config"
	"github.com/user/moovie-semantic/internal/utils"
)

// ErrEmbeddingProvider 向量服务调用失败
var ErrEmbeddingProvider = utils.ErrEmbeddingProvider

// Embedder 文本向量化
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BuildMovieEmbeddingText 拼接电影的向量化文本
func BuildMovieEmbeddingText(title, overview, genre string) string {
	return fmt.Sprintf("%s. %s. Genre: %s.", title, overview, genre)
}

// NewEmbedder 根据配置选择向量服务
func NewEmbedder(cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case "", "openai":
		return utils.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case "ollama":
		return utils.NewOllamaEmbedder(cfg.OllamaHost, cfg.OllamaModel, 60*time.Second), nil
	case "gemini":
		return utils.NewGeminiEmbedder(cfg.GeminiAPIKey, cfg.GeminiModel, "", 30*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
