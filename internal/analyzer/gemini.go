package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiOptions tunes the generation call.
type GeminiOptions struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32

	// BaseURL overrides the provider endpoint. Empty means the public API.
	BaseURL string
}

func (o GeminiOptions) withDefaults() GeminiOptions {
	if o.Model == "" {
		o.Model = "gemini-2.5-flash-lite"
	}
	if o.Temperature == 0 {
		o.Temperature = 0.7
	}
	if o.TopP == 0 {
		o.TopP = 0.95
	}
	if o.MaxOutputTokens == 0 {
		o.MaxOutputTokens = 2048
	}
	return o
}

// GeminiClient requests reports through the generative-ai-go SDK.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiClient, error) {
	opts = opts.withDefaults()

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.BaseURL))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	model.SetTopP(opts.TopP)
	model.SetMaxOutputTokens(opts.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiReportSchema()

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) SubmitForAnalysis(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(req)))
	if err != nil {
		// blocked prompts and SAFETY/RECITATION candidates come back as errors
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, providerError("%v", blocked)
		}
		return nil, transportError(fmt.Errorf("failed to generate content: %w", err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, providerError("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return nil, providerError("no text in response (finish reason: %s)", resp.Candidates[0].FinishReason)
	}

	return ParseReport(text.String())
}

func geminiReportSchema() *genai.Schema {
	criteria := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeObject,
			Description: desc,
			Properties: map[string]*genai.Schema{
				"score":       {Type: genai.TypeInteger, Description: "Skor 0 sampai 10"},
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

var reportRequiredFields = []string{
	string(models.CriteriaInteractivity),
	string(models.CriteriaEntertainment),
	string(models.CriteriaRelevance),
	string(models.CriteriaInformativeness),
	"purchaseInfluence",
	"overallSummary",
	"suggestions",
}
