package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOpenAIEmbedderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header: %s", got)
		}
		var body struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Input) != 1 || body.Input[0] != "hello" || body.Model != "text-embedding-3-small" {
			t.Errorf("unexpected request body: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder("sk-test", srv.URL, "text-embedding-3-small")
	vec, err := emb.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 || vec[2] != 0.3 {
		t.Errorf("unexpected vector %v", vec)
	}
}

func TestOpenAIEmbedderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder("bad", srv.URL, "text-embedding-3-small")
	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, ErrEmbeddingProvider) {
		t.Fatalf("expected ErrEmbeddingProvider, got %v", err)
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("expected api message in error, got %v", err)
	}
}

func TestOpenAIEmbedderEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[],"model":"m"}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIEmbedder("sk", srv.URL, "m").Embed(context.Background(), "hello")
	if !errors.Is(err, ErrEmbeddingProvider) {
		t.Fatalf("expected ErrEmbeddingProvider, got %v", err)
	}
}

func TestOllamaEmbedderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body ollamaEmbeddingRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Model != "nomic-embed-text" || body.Prompt != "space opera" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"embedding":[1,0,0,1]}`))
	}))
	defer srv.Close()

	vec, err := NewOllamaEmbedder(srv.URL+"/", "nomic-embed-text", time.Second).Embed(context.Background(), "space opera")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 4 {
		t.Errorf("expected 4 dimensions, got %d", len(vec))
	}
}

func TestOllamaEmbedderErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		},
		"empty": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"embedding":[]}`))
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"embedding":`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := NewOllamaEmbedder(srv.URL, "m", time.Second).Embed(context.Background(), "x")
			if !errors.Is(err, ErrEmbeddingProvider) {
				t.Fatalf("expected ErrEmbeddingProvider, got %v", err)
			}
		})
	}
}

func TestGeminiEmbedderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/text-embedding-004:embedContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "g-key" {
			t.Errorf("missing api key in query")
		}
		var body geminiEmbedRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Model != "models/text-embedding-004" || len(body.Content.Parts) != 1 || body.Content.Parts[0].Text != "heist" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.5,0.5]}}`))
	}))
	defer srv.Close()

	vec, err := NewGeminiEmbedder("g-key", "text-embedding-004", srv.URL, time.Second).Embed(context.Background(), "heist")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 2 || vec[0] != 0.5 {
		t.Errorf("unexpected vector %v", vec)
	}
}

func TestGeminiEmbedderMissingKey(t *testing.T) {
	_, err := NewGeminiEmbedder("", "text-embedding-004", "http://127.0.0.1:1", time.Second).Embed(context.Background(), "x")
	if !errors.Is(err, ErrEmbeddingProvider) {
		t.Fatalf("expected ErrEmbeddingProvider, got %v", err)
	}
}

func TestGeminiEmbedderErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiEmbedder("k", "m", srv.URL, time.Second).Embed(context.Background(), "x")
	if !errors.Is(err, ErrEmbeddingProvider) || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("unexpected error %v", err)
	}
}
