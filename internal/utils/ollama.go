package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ollamaEmbeddingRequest Ollama embedding API 请求结构
type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaEmbeddingResponse Ollama embedding API 响应结构
type ollamaEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// OllamaEmbedder 调用本地 Ollama API 生成向量
type OllamaEmbedder struct {
	host   string
	model  string
	client *HTTPClient
}

// NewOllamaEmbedder 创建 Ollama 向量客户端
func NewOllamaEmbedder(host, model string, timeout time.Duration) *OllamaEmbedder {
	if host == "" {
		host = "http://localhost:11434"
	}
	return &OllamaEmbedder{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: NewHTTPClient(timeout),
	}
}

// Embed 生成文本向量
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { observeEmbedding("ollama", e.model, start, err) }()

	var result ollamaEmbeddingResponse
	reqBody := ollamaEmbeddingRequest{Model: e.model, Prompt: text}
	if err := e.client.PostJSON(ctx, e.host+"/api/embeddings", reqBody, &result); err != nil {
		return nil, fmt.Errorf("post request to ollama failed: %v: %w", err, ErrEmbeddingProvider)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned empty embedding: %w", ErrEmbeddingProvider)
	}
	return result.Embedding, nil
}
