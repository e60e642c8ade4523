package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 应用配置
type Config struct {
	Env         string `validate:"required"`
	LogLevel    string
	Port        string `validate:"required"`
	DatabaseURL string `validate:"required"`
	CORSOrigin  string

	TMDB      TMDBConfig
	Embedding EmbeddingConfig
	Seed      SeedConfig
}

// TMDBConfig TMDB 接口配置
type TMDBConfig struct {
	APIKey    string        `validate:"required"`
	BaseURL   string        `validate:"required,url"`
	Language  string        `validate:"required"`
	RateLimit float64       `validate:"gt=0"`
	Timeout   time.Duration `validate:"gt=0"`
}

// EmbeddingConfig 向量模型配置
type EmbeddingConfig struct {
	Provider string `validate:"oneof=openai ollama gemini"`

	OpenAIAPIKey  string `validate:"required_if=Provider openai"`
	OpenAIBaseURL string
	OpenAIModel   string

	OllamaHost  string `validate:"required_if=Provider ollama"`
	OllamaModel string

	GeminiAPIKey string `validate:"required_if=Provider gemini"`
	GeminiModel  string
}

// SeedConfig 定时导入配置
type SeedConfig struct {
	Interval time.Duration `validate:"gte=0"`
	Count    int           `validate:"gte=0,lte=1000"`
}

var validate = validator.New()

// Load 加载配置，缺少必需的密钥时返回错误
func Load() (*Config, error) {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "moovie")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := getEnv("DATABASE_URL", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL))

	rateLimit, err := getEnvFloat("TMDB_RATE_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	timeoutSec, err := getEnvInt("TMDB_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	intervalHours, err := getEnvInt("SEED_INTERVAL_HOURS", 0)
	if err != nil {
		return nil, err
	}
	seedCount, err := getEnvInt("SEED_SCHEDULE_COUNT", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		Port:        getEnv("PORT", "5005"),
		DatabaseURL: dbURL,
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
		TMDB: TMDBConfig{
			APIKey:    strings.TrimSpace(os.Getenv("TMDB_API_KEY")),
			BaseURL:   getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language:  getEnv("TMDB_LANGUAGE", "pt-BR"),
			RateLimit: rateLimit,
			Timeout:   time.Duration(timeoutSec) * time.Second,
		},
		Embedding: EmbeddingConfig{
			Provider:      strings.ToLower(getEnv("EMBEDDING_PROVIDER", "openai")),
			OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:   getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			OllamaHost:    getEnv("OLLAMA_HOST", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "nomic-embed-text"),
			GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			GeminiModel:   getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		},
		Seed: SeedConfig{
			Interval: time.Duration(intervalHours) * time.Hour,
			Count:    seedCount,
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return cfg, nil
}

// IsProduction 是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("环境变量 %s 不是有效整数: %q", key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("环境变量 %s 不是有效数字: %q", key, value)
	}
	return f, nil
}
