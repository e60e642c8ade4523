package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder 通过 OpenAI 兼容接口生成向量
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder 创建 OpenAI 向量客户端，baseURL 为空时使用官方地址
func NewOpenAIEmbedder(apiKey, baseURL, model string) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(model),
	}
}

// Embed 生成文本向量
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { observeEmbedding("openai", string(e.model), start, err) }()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, parseOpenAIError(err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response: %w", ErrEmbeddingProvider)
	}
	return resp.Data[0].Embedding, nil
}

// parseOpenAIError 提取接口返回的错误信息，统一包装为 ErrEmbeddingProvider
func parseOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, ErrEmbeddingProvider)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("embedding API error %d: %s: %w", reqErr.HTTPStatusCode, detail, ErrEmbeddingProvider)
		}
		return fmt.Errorf("embedding API error %d: %s: %w", reqErr.HTTPStatusCode, truncate(string(reqErr.Body), 256), ErrEmbeddingProvider)
	}

	return fmt.Errorf("embedding request failed: %v: %w", err, ErrEmbeddingProvider)
}

// extractDetail 兼容部分 OpenAI 兼容服务的 {"detail": "..."} 错误格式
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		return parsed.Detail
	}
	return ""
}
