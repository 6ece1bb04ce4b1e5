package llm

import (
	"context"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Provider defines the interface that all LLM providers must implement.
// It provides a unified abstraction for interacting with different hosted
// LLM services (Google Gemini, Anthropic Claude, OpenAI GPT).
type Provider interface {
	// Name returns the provider name (e.g., "google", "anthropic", "openai")
	Name() string

	// Models returns information about all available models for this provider
	Models(ctx context.Context) ([]ModelInfo, error)

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response; callers
	// bound it with a context deadline.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// ModelInfo contains metadata about an LLM model.
type ModelInfo struct {
	// Name is the model identifier (e.g., "gemini-2.0-flash", "gpt-4o")
	Name string `json:"name"`

	// ContextWindow is the maximum number of tokens the model can process
	ContextWindow int `json:"context_window"`

	// Features lists the capabilities this model supports
	Features []string `json:"features"`

	// MaxOutput is the maximum number of tokens the model can generate
	MaxOutput int `json:"max_output"`
}

// SupportsFeature checks if the model supports a given feature
func (m ModelInfo) SupportsFeature(feature string) bool {
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// SupportsJSONMode checks if the model supports structured JSON output
func (m ModelInfo) SupportsJSONMode() bool {
	return m.SupportsFeature("json_mode")
}
