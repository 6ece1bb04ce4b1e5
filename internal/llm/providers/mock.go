package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// MockCall represents a recorded call to the mock provider
type MockCall struct {
	Request llm.CompletionRequest
}

// MockProvider implements Provider for testing. Responses are served in
// order and wrap around when exhausted; per-index errors take precedence.
type MockProvider struct {
	mu            sync.RWMutex
	responses     []string
	errors        map[int]error
	responseIndex int
	calls         []MockCall
}

// NewMockProvider creates a new mock provider with scripted responses
func NewMockProvider(responses []string) *MockProvider {
	return &MockProvider{
		responses: responses,
		errors:    make(map[int]error),
		calls:     make([]MockCall, 0),
	}
}

// FailAt scripts an error for the nth Complete call (0-based). The call
// still consumes a response slot.
func (p *MockProvider) FailAt(n int, err error) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors[n] = err
	return p
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Models returns mock model information
func (p *MockProvider) Models(ctx context.Context) ([]llm.ModelInfo, error) {
	return []llm.ModelInfo{
		{
			Name:          "mock-model",
			ContextWindow: 4096,
			MaxOutput:     2048,
			Features:      []string{"chat", "json"},
		},
	}, nil
}

// Complete generates a completion from the scripted responses
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls = append(p.calls, MockCall{Request: req})

	callIdx := p.responseIndex
	p.responseIndex++

	if err, ok := p.errors[callIdx]; ok {
		p.mu.Unlock()
		return nil, err
	}

	if len(p.responses) == 0 {
		p.mu.Unlock()
		return nil, llm.NewCompletionError("mock provider has no responses configured", fmt.Errorf("response list empty"))
	}

	response := p.responses[callIdx%len(p.responses)]
	p.mu.Unlock()

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: req.Model,
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: response,
		},
		FinishReason: llm.FinishReasonStop,
		Usage: llm.TokenUsage{
			PromptTokens:     10,
			CompletionTokens: len(response) / 4,
			TotalTokens:      10 + len(response)/4,
		},
	}, nil
}

// Health checks the provider health
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

// GetCalls returns all recorded calls (thread-safe)
func (p *MockProvider) GetCalls() []MockCall {
	p.mu.RLock()
	defer p.mu.RUnlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// CallCount returns the number of Complete calls recorded
func (p *MockProvider) CallCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.calls)
}

// Reset resets the mock provider state
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = make([]MockCall, 0)
	p.errors = make(map[int]error)
	p.responseIndex = 0
}

// SetResponses replaces all responses
func (p *MockProvider) SetResponses(responses []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.responses = responses
	p.responseIndex = 0
}
