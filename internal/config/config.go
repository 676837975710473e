package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Web     WebConfig
	Client  ClientConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Worker  WorkerConfig
}

// ServerConfig configures the reference analysis service.
type ServerConfig struct {
	Port string
	Env  string
}

// WebConfig configures the browser-facing host.
type WebConfig struct {
	Port        string
	SessionTTL  time.Duration
	BodyLimit   int
	SweepPeriod time.Duration
}

// ClientConfig configures how the client reaches the analysis service.
type ClientConfig struct {
	BackendURL     string
	RequestTimeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Web: WebConfig{
			Port:        getEnv("WEB_PORT", "3000"),
			SessionTTL:  getEnvAsDuration("SESSION_TTL", "24h"),
			BodyLimit:   getEnvAsInt("WEB_BODY_LIMIT", 16*1024*1024),
			SweepPeriod: getEnvAsDuration("SESSION_SWEEP_PERIOD", "10m"),
		},
		Client: ClientConfig{
			BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", "2m"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", os.TempDir()),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		},
	}
}

// IsDevelopment reports whether verbose diagnostics should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
