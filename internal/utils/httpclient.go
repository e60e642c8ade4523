package utils

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// StatusError 非 2xx 响应
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("请求失败，状态码: %d", e.StatusCode)
	}
	return fmt.Sprintf("请求失败，状态码: %d, 响应: %s", e.StatusCode, e.Body)
}

// HTTPClient JSON 接口客户端（限流 + 熔断）
type HTTPClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// ClientOption 配置 HTTPClient
type ClientOption func(*HTTPClient)

// WithRateLimit 每秒最多 rps 个请求
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *HTTPClient) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCircuitBreaker 连续失败 failures 次后熔断 openFor 时长
// 只有传输错误和 5xx 计为失败，4xx 属于正常业务结果
func WithCircuitBreaker(name string, failures uint32, openFor time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    name,
			Timeout: openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var se *StatusError
				if errors.As(err, &se) {
					return se.StatusCode < http.StatusInternalServerError
				}
				return false
			},
		})
	}
}

// NewHTTPClient 创建新的HTTP客户端
func NewHTTPClient(timeout time.Duration, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithoutBreaker 返回共享连接和限流器但不经过熔断器的副本
// 用于单条失败不应影响整体的请求
func (c *HTTPClient) WithoutBreaker() *HTTPClient {
	return &HTTPClient{httpClient: c.httpClient, limiter: c.limiter}
}

// BreakerState 熔断器状态（未启用时返回空字符串）
func (c *HTTPClient) BreakerState() string {
	if c.breaker == nil {
		return ""
	}
	return c.breaker.State().String()
}

// Do 发送请求并返回解压后的响应体，非 2xx 返回 *StatusError
func (c *HTTPClient) Do(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("等待限流失败: %w", err)
		}
	}
	if c.breaker == nil {
		return c.do(req)
	}
	return c.breaker.Execute(func() ([]byte, error) {
		return c.do(req)
	})
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("创建gzip读取器失败: %w", err)
		}
		defer reader.Close()
	case "deflate":
		reader = flate.NewReader(resp.Body)
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

// GetJSON 发送请求并解析JSON响应
func (c *HTTPClient) GetJSON(req *http.Request, target interface{}) error {
	body, err := c.Do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("解析JSON失败: %w", err)
	}
	return nil
}

// PostJSON 以 JSON 请求体 POST 并解析响应
func (c *HTTPClient) PostJSON(ctx context.Context, url string, payload, target interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.GetJSON(req, target)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
