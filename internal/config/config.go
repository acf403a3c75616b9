package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string // Fallback origin for short URLs when the request carries none
	PublicDir  string // Directory holding the static frontend assets

	// Durable store
	RedisURL string

	// Recording storage
	S3Bucket string
	S3Region string

	// Transcription / summarization
	OpenAIAPIKey string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins; "*" for public access
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3001"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3001"),
		PublicDir:    getEnv("PUBLIC_DIR", "./public"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		S3Bucket:     getEnv("S3_BUCKET", "voice-recording-app"),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		TLSEnabled:   getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// TranscriptionEnabled reports whether an OpenAI API key is configured.
func (c *Config) TranscriptionEnabled() bool {
	return c.OpenAIAPIKey != ""
}
