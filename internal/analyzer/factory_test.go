package analyzer

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/config"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported provider", func(t *testing.T) {
		_, _, err := NewFromConfig(ctx, &config.Config{Provider: "openai", GeminiAPIKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported LLM_PROVIDER")
	})

	t.Run("gemini without key", func(t *testing.T) {
		_, _, err := NewFromConfig(ctx, &config.Config{Provider: config.ProviderGemini})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("genai without key", func(t *testing.T) {
		_, _, err := NewFromConfig(ctx, &config.Config{Provider: config.ProviderGenAI})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})
}

func TestGeminiOptions_Defaults(t *testing.T) {
	got := GeminiOptions{}.withDefaults()
	assert.Equal(t, "gemini-2.5-flash-lite", got.Model)
	assert.Equal(t, float32(0.7), got.Temperature)
	assert.Equal(t, float32(0.95), got.TopP)
	assert.Equal(t, int32(2048), got.MaxOutputTokens)

	custom := GeminiOptions{Model: "gemini-2.5-pro", MaxOutputTokens: 512}.withDefaults()
	assert.Equal(t, "gemini-2.5-pro", custom.Model)
	assert.Equal(t, int32(512), custom.MaxOutputTokens)
}

func TestReportSchemas(t *testing.T) {
	gemini := geminiReportSchema()
	unified := genaiReportSchema()

	assert.ElementsMatch(t, reportRequiredFields, gemini.Required)
	assert.ElementsMatch(t, reportRequiredFields, unified.Required)
	for _, key := range models.CriteriaKeys {
		assert.Contains(t, gemini.Properties, string(key))
		assert.Contains(t, unified.Properties, string(key))
	}
	assert.Equal(t, models.LikelihoodLabels, gemini.Properties["purchaseInfluence"].Properties["likelihood"].Enum)
	assert.Equal(t, models.LikelihoodLabels, unified.Properties["purchaseInfluence"].Properties["likelihood"].Enum)
}

func TestRequesterFunc(t *testing.T) {
	want := &models.AnalysisReport{OverallSummary: "ok"}
	var got models.AnalysisRequest
	var r Requester = RequesterFunc(func(_ context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
		got = req
		return want, nil
	})

	req := models.AnalysisRequest{Audience: models.DefaultAudience()}
	report, err := r.SubmitForAnalysis(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, want, report)
	assert.Equal(t, req, got)
}
