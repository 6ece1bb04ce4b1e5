package pipeline

import (
	"context"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

// corrector repairs a failed Cypher query using the recorded error
// history. It never fails: when the model call itself errors or yields
// nothing usable, the deterministic FallbackQuery is returned so the
// loop always has something executable.
type corrector struct {
	provider llm.Provider
	model    string
	schema   string
}

func (c *corrector) Correct(ctx context.Context, req Request, failedQuery string, history *ErrorHistory) string {
	latestError := ""
	if latest, ok := history.Latest(); ok {
		latestError = latest.Error
	}

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(correctSystemPrompt),
			llm.NewUserMessage(buildCorrectPrompt(
				c.schema, req, failedQuery, latestError, history.Last(correctorWindow))),
		},
		Temperature: 0.1,
	})
	if err != nil {
		return FallbackQuery
	}

	corrected := llm.StripCodeFence(resp.Message.Content)
	if strings.TrimSpace(corrected) == "" {
		return FallbackQuery
	}

	return corrected
}
