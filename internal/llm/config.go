package llm

import (
	"fmt"
	"strings"
)

// ProviderType identifies a supported LLM backend.
type ProviderType string

const (
	ProviderGoogle    ProviderType = "google"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderMock      ProviderType = "mock"
)

// IsValid checks whether the provider type is one we know how to build.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderAnthropic, ProviderOpenAI, ProviderMock:
		return true
	}
	return false
}

// Config holds provider selection and generation defaults for the LLM layer.
type Config struct {
	Provider    ProviderType `mapstructure:"provider" yaml:"provider"`
	Model       string       `mapstructure:"model" yaml:"model"`
	APIKey      string       `mapstructure:"api_key" yaml:"api_key"`
	Temperature float64      `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int          `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// DefaultConfig returns generation defaults matching the Gemini flash tier.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGoogle,
		Model:       "gemini-2.0-flash",
		Temperature: 0.1,
		MaxTokens:   2048,
	}
}

// Validate checks the config for obvious misconfiguration.
func (c Config) Validate() error {
	if !c.Provider.IsValid() {
		return NewInvalidInputError(string(c.Provider),
			fmt.Sprintf("unknown provider %q", c.Provider))
	}
	if strings.TrimSpace(c.Model) == "" {
		return NewInvalidInputError(string(c.Provider), "model must not be empty")
	}
	// APIKey may be empty here; providers fall back to their env vars
	// and fail with an auth error at construction time.
	if c.Temperature < 0 || c.Temperature > 2 {
		return NewInvalidInputError(string(c.Provider),
			fmt.Sprintf("temperature %.2f out of range [0, 2]", c.Temperature))
	}
	if c.MaxTokens < 0 {
		return NewInvalidInputError(string(c.Provider), "max_tokens must be non-negative")
	}
	return nil
}
