package common

import (
	"os"
	"strconv"
	"time"

	"github.com/Charan-r11/Hack-The-Future/constants"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	LLM      LLMConfig
	Trust    TrustConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr     string
	AllowOrigins []string
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	// Backend is one of: memory, sqlite, postgres, redis.
	Backend     string
	SQLitePath  string
	PostgresDSN string
	RedisAddr   string
	RedisDB     int
}

// LLMConfig holds completion-capability configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	// Analyzer is "model" or "keyword" (offline fallback path).
	Analyzer string
}

// TrustConfig holds trust-verification network configuration
type TrustConfig struct {
	APIURL  string
	Token   string
	Network string
	Timeout time.Duration
}

// PipelineConfig holds chunking and monetization knobs
type PipelineConfig struct {
	MaxChunkTokens int
	Concurrency    int
	StartingTokens int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:     getEnv("HTTP_ADDR", ":8000"),
			AllowOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Store: StoreConfig{
			Backend:     getEnv("STORE_BACKEND", "memory"),
			SQLitePath:  getEnv("SQLITE_PATH", "./consentiq.db"),
			PostgresDSN: getEnv("DB_URL", ""),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisDB:     getEnvAsInt("REDIS_DB", 0),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			Analyzer:    getEnv("ANALYZER", "model"),
		},
		Trust: TrustConfig{
			APIURL:  getEnv("MASUMI_API_URL", "https://payment.masumi.network"),
			Token:   getEnv("MASUMI_TOKEN", ""),
			Network: getEnv("MASUMI_NETWORK", "preprod"),
			Timeout: getEnvAsDuration("MASUMI_TIMEOUT", 30*time.Second),
		},
		Pipeline: PipelineConfig{
			MaxChunkTokens: getEnvAsInt("MAX_CHUNK_TOKENS", constants.DefaultMaxChunkTokens),
			Concurrency:    getEnvAsInt("CHUNK_CONCURRENCY", 4),
			StartingTokens: getEnvAsInt("STARTING_TOKENS", constants.DefaultStartingTokens),
		},
	}
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrValidation)
	}
	if c.LLM.Analyzer == "model" && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required for the model analyzer", ErrValidation)
	}
	switch c.Store.Backend {
	case "memory", "sqlite", "redis":
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres store", ErrValidation)
		}
	default:
		return NewAppError("CONFIG_ERROR", "STORE_BACKEND must be memory, sqlite, postgres or redis", ErrValidation)
	}
	if c.Pipeline.MaxChunkTokens <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_CHUNK_TOKENS must be positive", ErrValidation)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
