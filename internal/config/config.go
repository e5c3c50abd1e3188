package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// LLM
	Provider        string // "gemini" (generative-ai-go) or "genai" (unified SDK)
	GeminiAPIKey    string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	BaseURL         string

	// HTTP
	Port    string
	GinMode string

	// Logging
	LogLevel  string
	LogFormat string
}

const (
	ProviderGemini = "gemini"
	ProviderGenAI  = "genai"
)

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		BaseURL:      getEnv("GEMINI_BASE_URL", ""),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "release"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}

	temperature, err := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TEMPERATURE: %w", err)
	}
	cfg.Temperature = float32(temperature)

	topP, err := strconv.ParseFloat(getEnv("GEMINI_TOP_P", "0.95"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TOP_P: %w", err)
	}
	cfg.TopP = float32(topP)

	maxTokens, err := strconv.ParseInt(getEnv("GEMINI_MAX_OUTPUT_TOKENS", "2048"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_MAX_OUTPUT_TOKENS: %w", err)
	}
	cfg.MaxOutputTokens = int32(maxTokens)

	return cfg, nil
}

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be 'json' or 'console')", c.LogFormat)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// ValidateForAnalysis checks configuration needed to reach the AI provider.
func (c *Config) ValidateForAnalysis() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Provider {
	case ProviderGemini, ProviderGenAI:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s (must be 'gemini' or 'genai')", c.Provider)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for analysis")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be between 0 and 2, got %v", c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("GEMINI_TOP_P must be in (0, 1], got %v", c.TopP)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
