package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// GoogleProvider implements Provider for Google's Gemini models
type GoogleProvider struct {
	client *googleai.GoogleAI
	config llm.Config
}

// NewGoogleProvider creates a new Google provider
func NewGoogleProvider(cfg llm.Config) (*GoogleProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewAuthError("google", nil)
	}

	opts := []googleai.Option{
		googleai.WithAPIKey(apiKey),
	}

	if cfg.Model != "" {
		opts = append(opts, googleai.WithDefaultModel(cfg.Model))
	}

	client, err := googleai.New(context.Background(), opts...)
	if err != nil {
		return nil, llm.TranslateError("google", err)
	}

	return &GoogleProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Models returns information about available models
func (p *GoogleProvider) Models(ctx context.Context) ([]llm.ModelInfo, error) {
	models := []llm.ModelInfo{
		{
			Name:          "gemini-2.0-flash",
			ContextWindow: 1048576,
			MaxOutput:     8192,
			Features:      []string{"chat", "json"},
		},
		{
			Name:          "gemini-1.5-pro",
			ContextWindow: 1048576,
			MaxOutput:     8192,
			Features:      []string{"chat", "json"},
		},
		{
			Name:          "gemini-1.5-flash",
			ContextWindow: 1048576,
			MaxOutput:     8192,
			Features:      []string{"chat", "json"},
		},
	}
	return models, nil
}

// Complete sends a completion request
func (p *GoogleProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	messages := toSchemaMessages(req.Messages)
	callOpts := buildCallOptions(req)

	resp, err := p.client.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, llm.TranslateError("google", err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// Health checks the provider health with a minimal completion
func (p *GoogleProvider) Health(ctx context.Context) types.HealthStatus {
	req := llm.CompletionRequest{
		Model: p.config.Model,
		Messages: []llm.Message{
			llm.NewUserMessage("test"),
		},
		MaxTokens: 1,
	}

	_, err := p.Complete(ctx, req)
	if err != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, err.Error())
	}

	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
