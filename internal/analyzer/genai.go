package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"google.golang.org/genai"
)

// GenAIClient requests reports through the unified google.golang.org/genai SDK.
type GenAIClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGenAIClient(ctx context.Context, apiKey string, opts GeminiOptions) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	opts = opts.withDefaults()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client: client,
		model:  opts.Model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(opts.Temperature),
			TopP:              genai.Ptr(opts.TopP),
			MaxOutputTokens:   opts.MaxOutputTokens,
			ResponseMIMEType:  "application/json",
			ResponseSchema:    genaiReportSchema(),
		},
	}, nil
}

func (g *GenAIClient) SubmitForAnalysis(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), g.config)
	if err != nil {
		return nil, transportError(fmt.Errorf("GenAI generate failed: %w", err))
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
		resp.PromptFeedback.BlockReason != "BLOCKED_REASON_UNSPECIFIED" {
		return nil, providerError("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, providerError("no content generated")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, providerError("no text in response (finish reason: %s)", resp.Candidates[0].FinishReason)
	}

	return ParseReport(text)
}

func genaiReportSchema() *genai.Schema {
	criteria := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeObject,
			Description: desc,
			Properties: map[string]*genai.Schema{
				"score":       {Type: genai.TypeInteger, Minimum: genai.Ptr[float64](models.MinScore), Maximum: genai.Ptr[float64](models.MaxScore)},
				"explanation": {Type: genai.TypeString},
			},
			Required: []string{"score", "explanation"},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			string(models.CriteriaInteractivity):   criteria("Interaktivitas konten"),
			string(models.CriteriaEntertainment):   criteria("Nilai hiburan konten"),
			string(models.CriteriaRelevance):       criteria("Relevansi dengan target audiens"),
			string(models.CriteriaInformativeness): criteria("Nilai informatif konten"),
			"purchaseInfluence": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"likelihood":  {Type: genai.TypeString, Enum: models.LikelihoodLabels},
					"explanation": {Type: genai.TypeString},
				},
				Required: []string{"likelihood", "explanation"},
			},
			"overallSummary": {Type: genai.TypeString},
			"suggestions": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: reportRequiredFields,
	}
}
