package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Production refuses it.
const DefaultJWTSecret = "bible-study-dev-secret"

var (
	// ErrMissingAPIKey is returned by Validate when no Gemini credential is configured.
	ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_API_KEY environment variable not set")
	// ErrDefaultJWTSecret is returned by Validate in production while JWT_SECRET is unset or the default.
	ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")
)

type Config struct {
	App         AppConfig
	Keys        APIKeys
	Ai          AIConfig
	Session     SessionConfig
	Suggestions SuggestionConfig
	Tracing     TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama" or "mock"
	LLMModel      string
	OllamaBaseURL string
}

type SessionConfig struct {
	Storage      string // "memory" or "redis"
	StorageKey   string
	SignInDelay  time.Duration
	SignOutDelay time.Duration
}

type SuggestionConfig struct {
	File string // optional YAML catalog, builtin catalog when empty
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-2.5-pro"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Session: SessionConfig{
			Storage:      getEnv("SESSION_STORAGE", "memory"),
			StorageKey:   getEnv("SESSION_STORAGE_KEY", "authUser"),
			SignInDelay:  getEnvAsMillis("SIGN_IN_DELAY_MS", 1000*time.Millisecond),
			SignOutDelay: getEnvAsMillis("SIGN_OUT_DELAY_MS", 500*time.Millisecond),
		},
		Suggestions: SuggestionConfig{
			File: getEnv("SUGGESTIONS_FILE", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate reports configuration the process cannot start without.
// A missing Gemini credential is always fatal.
func (c *Config) Validate() error {
	if c.Keys.GoogleGemini == "" {
		return ErrMissingAPIKey
	}
	if c.IsProduction() && (c.App.JWTSecret == "" || c.App.JWTSecret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsMillis(key string, fallback time.Duration) time.Duration {
	ms := getEnvAsInt(key, -1)
	if ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
