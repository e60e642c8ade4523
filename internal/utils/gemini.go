package utils

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiEmbedRequest Gemini embedContent 请求结构
type geminiEmbedRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

// geminiEmbedResponse Gemini embedContent 响应结构
type geminiEmbedResponse struct {
	Embedding *struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiEmbedder 调用 Gemini embedContent 接口生成向量
type GeminiEmbedder struct {
	apiKey  string
	model   string
	baseURL string
	client  *HTTPClient
}

// NewGeminiEmbedder 创建 Gemini 向量客户端，baseURL 为空时使用官方地址
func NewGeminiEmbedder(apiKey, model, baseURL string, timeout time.Duration) *GeminiEmbedder {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiEmbedder{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  NewHTTPClient(timeout),
	}
}

// Embed 生成文本向量
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { observeEmbedding("gemini", e.model, start, err) }()

	if e.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set: %w", ErrEmbeddingProvider)
	}

	endpoint := fmt.Sprintf("%s/models/%s:embedContent?key=%s", e.baseURL, e.model, url.QueryEscape(e.apiKey))
	reqBody := geminiEmbedRequest{
		Model:   "models/" + e.model,
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	var result geminiEmbedResponse
	if err := e.client.PostJSON(ctx, endpoint, reqBody, &result); err != nil {
		return nil, fmt.Errorf("post request to gemini failed: %v: %w", err, ErrEmbeddingProvider)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("gemini api error: %s: %w", result.Error.Message, ErrEmbeddingProvider)
	}
	if result.Embedding == nil || len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned no embedding: %w", ErrEmbeddingProvider)
	}
	return result.Embedding.Values, nil
}
