package pipeline

import (
	"context"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// generator turns a natural-language request into a candidate Cypher
// query.
type generator struct {
	provider llm.Provider
	model    string
	schema   string
	examples []string
}

func (g *generator) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(generateSystemPrompt),
			llm.NewUserMessage(buildGeneratePrompt(g.schema, g.examples, req)),
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", types.WrapError(types.PIPELINE_GENERATION_FAILED,
			"query generation failed", err)
	}

	query := llm.StripCodeFence(resp.Message.Content)
	if strings.TrimSpace(query) == "" {
		return "", types.NewError(types.PIPELINE_GENERATION_FAILED,
			"model returned an empty query")
	}

	return query, nil
}
