package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// AnthropicProvider implements Provider for Anthropic's Claude models
type AnthropicProvider struct {
	client *anthropic.LLM
	config llm.Config
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(cfg llm.Config) (*AnthropicProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewAuthError("anthropic", nil)
	}

	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
	}

	if cfg.Model != "" {
		opts = append(opts, anthropic.WithModel(cfg.Model))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	return &AnthropicProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Models returns information about available models
func (p *AnthropicProvider) Models(ctx context.Context) ([]llm.ModelInfo, error) {
	models := []llm.ModelInfo{
		{
			Name:          "claude-sonnet-4-20250514",
			ContextWindow: 200000,
			MaxOutput:     8192,
			Features:      []string{"chat", "json"},
		},
		{
			Name:          "claude-3-5-haiku-20241022",
			ContextWindow: 200000,
			MaxOutput:     8192,
			Features:      []string{"chat", "json"},
		},
	}
	return models, nil
}

// Complete sends a completion request
func (p *AnthropicProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	messages := toSchemaMessages(req.Messages)
	callOpts := buildCallOptions(req)

	resp, err := p.client.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// Health checks the provider health with a minimal completion
func (p *AnthropicProvider) Health(ctx context.Context) types.HealthStatus {
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
