package analyzer

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/config"
)

// NewFromConfig builds the Requester selected by cfg.Provider. The returned
// close func must be called once the requester is no longer needed.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Requester, func() error, error) {
	opts := GeminiOptions{
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		MaxOutputTokens: cfg.MaxOutputTokens,
		BaseURL:         cfg.BaseURL,
	}

	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, opts)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil

	case config.ProviderGenAI:
		client, err := NewGenAIClient(ctx, cfg.GeminiAPIKey, opts)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: gemini, genai)", cfg.Provider)
	}
}
