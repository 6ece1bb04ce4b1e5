package providers

import (
	"fmt"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

// NewProvider creates an LLM provider based on the configuration
func NewProvider(cfg llm.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case llm.ProviderGoogle:
		return NewGoogleProvider(cfg)

	case llm.ProviderAnthropic:
		return NewAnthropicProvider(cfg)

	case llm.ProviderOpenAI:
		return NewOpenAIProvider(cfg)

	case llm.ProviderMock:
		return NewMockProvider([]string{"Mock response"}), nil

	default:
		return nil, llm.NewInvalidInputError("factory", fmt.Sprintf("unknown provider type: %s", cfg.Provider))
	}
}
