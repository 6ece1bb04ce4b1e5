package pipeline

import (
	"context"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

// answerer synthesizes the final natural-language answer from whatever
// the run produced. It always returns non-empty text.
type answerer struct {
	provider llm.Provider
	model    string
}

// Synthesize builds the answer. failure carries the terminal error
// description when no query succeeded (generation failure or exhausted
// corrections); it is empty on success.
func (a *answerer) Synthesize(ctx context.Context, req Request, query string, result *ExecutionResult, failure string) string {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(answerSystemPrompt),
			llm.NewUserMessage(buildAnswerPrompt(req, query, result, failure)),
		},
		Temperature: 0.3,
	})
	if err != nil {
		return fallbackAnswer
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return fallbackAnswer
	}

	return text
}
