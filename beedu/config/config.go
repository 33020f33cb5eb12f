package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback signing secret. Anything
// deployed for real must override it via JWT_SECRET.
const DefaultJWTSecret = "change-me-in-production"

type Config struct {
	Addr string

	// DatabaseURL takes precedence; the DB* pieces are the fallback form.
	DatabaseURL string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	JWTSecret string
	TokenTTL  time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string

	IndexPath     string
	RAGConfigPath string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	IndexObject    string

	RedisURL string
}

func LoadConfig() Config {
	// Best-effort: system env wins, .env fills the gaps in development.
	_ = godotenv.Load()

	return Config{
		Addr: getEnv("ADDR", ":8000"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBUser:      getEnv("DB_USER", ""),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBHost:      getEnv("DB_HOST", ""),
		DBPort:      getEnv("DB_PORT", ""),
		DBName:      getEnv("DB_NAME", ""),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		IndexPath:     getEnv("INDEX_PATH", "data/index.json"),
		RAGConfigPath: getEnv("RAG_CONFIG", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", ""),
		IndexObject:    getEnv("INDEX_OBJECT", ""),

		RedisURL: getEnv("REDIS_URL", ""),
	}
}

// DatabaseConfigured reports whether any connection info was provided at all.
func (c Config) DatabaseConfigured() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
