package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultLLMModel          = "openai/gpt-3.5-turbo"
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1"
	defaultLLMTimeoutSeconds = 30
)

type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
}

type DatabaseConfig struct {
	URL string
}

// LLMConfig configures the optional enrichment generator. An empty or
// placeholder API key means the engine runs in rule-only mode.
type LLMConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

// Configured reports whether a usable API key is present. Keys starting with
// "your-" are treated as unfilled template placeholders.
func (c LLMConfig) Configured() bool {
	return c.APIKey != "" && !strings.HasPrefix(c.APIKey, "your-")
}

// Load reads configuration from the environment, loading a .env file first if
// one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LLM: LLMConfig{
			APIKey:         os.Getenv("OPENROUTER_API_KEY"),
			Model:          getenv("OPENROUTER_MODEL", defaultLLMModel),
			BaseURL:        getenv("OPENROUTER_BASE_URL", defaultLLMBaseURL),
			TimeoutSeconds: getenvInt("LLM_TIMEOUT_SECONDS", defaultLLMTimeoutSeconds),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
