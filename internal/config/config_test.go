package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080", cfg.Client.BackendURL)
	assert.Equal(t, 2*time.Minute, cfg.Client.RequestTimeout)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://analyzer.example.com")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("MAX_FILE_SIZE", "1024")

	cfg := Load()

	assert.Equal(t, "https://analyzer.example.com", cfg.Client.BackendURL)
	assert.Equal(t, 45*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, 7, cfg.Worker.Concurrency)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")

	assert.Equal(t, 24*time.Hour, getEnvAsDuration("SESSION_TTL", "24h"))
}
