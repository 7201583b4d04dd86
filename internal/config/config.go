package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	RateLimit RateLimitConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Cohere     string
	ChunkTopic string // Topic carrying document-chunk events from the ingestion side
}

type AIConfig struct {
	EmbeddingProvider string // "cohere" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "cohere" or "ollama"
	LLMModel          string
	Temperature       float64 // 0 keeps generation deterministic
	CheckpointStore   string  // "memory" or "redis"
	TopN              int     // candidates fetched per retrieval
	ContextSize       int     // candidates actually rendered into the prompt
}

// RateLimitConfig holds per-route request caps (requests per minute, per client IP).
type RateLimitConfig struct {
	ChatPerMinute   int
	ClearPerMinute  int
	HealthPerMinute int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Cohere:     getEnv("COHERE_API_KEY", ""),
			ChunkTopic: getEnv("DOCUMENT_CHUNK_TOPIC_NAME", "DOCUMENT_CHUNKS_READY"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "cohere"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "embed-english-v3.0"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "cohere"),
			LLMModel:          getEnv("LLM_MODEL", "command-r"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0),
			CheckpointStore:   getEnv("CHECKPOINT_STORE", "memory"),
			TopN:              getEnvAsInt("RETRIEVAL_TOP_N", 5),
			ContextSize:       getEnvAsInt("RETRIEVAL_CONTEXT_SIZE", 1),
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute:   getEnvAsInt("RATE_LIMIT_CHAT_PER_MINUTE", 20),
			ClearPerMinute:  getEnvAsInt("RATE_LIMIT_CLEAR_PER_MINUTE", 10),
			HealthPerMinute: getEnvAsInt("RATE_LIMIT_HEALTH_PER_MINUTE", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
