package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

func TestWriteNodes_CountsPerType(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	writer := NewWriter(store, nil)
	counts := writer.WriteNodes(ctx, []ExtractedNode{
		{ID: "ref_seoul_precision", Type: "ReferenceCompany", Properties: map[string]any{
			"companyName": "서울정공", "sector": "automotive_parts",
		}},
		{ID: "news_rate_hike", Type: "NewsArticle", Properties: map[string]any{
			"title": "기준금리 인상", "publisher": "브릿지경제",
		}},
		{ID: "macro_base_rate", Type: "MacroIndicator", Properties: map[string]any{
			"indicatorName": "기준금리", "value": 3.5,
		}},
		{ID: "unknown_node", Type: "Mystery", Properties: nil},
	})

	assert.Equal(t, 1, counts["ReferenceCompany"])
	assert.Equal(t, 1, counts["NewsArticle"])
	assert.Equal(t, 1, counts["MacroIndicator"])
	assert.NotContains(t, counts, "Mystery")
	assert.Len(t, store.GetCallsByMethod("Write"), 3)
}

func TestWriteNodes_FailureSkipsRecord(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueError(fmt.Errorf("deadlock detected"))

	writer := NewWriter(store, nil)
	counts := writer.WriteNodes(ctx, []ExtractedNode{
		{ID: "policy_a", Type: "Policy", Properties: map[string]any{"policyName": "제조업 지원"}},
		{ID: "policy_b", Type: "Policy", Properties: map[string]any{"policyName": "수출 지원"}},
	})

	assert.Equal(t, 1, counts["Policy"])
}

func TestWriteRelationships_CountsPerType(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	writer := NewWriter(store, nil)
	counts := writer.WriteRelationships(ctx, []ExtractedRelationship{
		{SourceID: "ref_seoul_precision", TargetID: "macro_base_rate", Type: "IS_EXPOSED_TO",
			Properties: map[string]any{"exposureLevel": "HIGH", "riskType": "interest_rate"}},
		{SourceID: "news_rate_hike", TargetID: "ref_seoul_precision", Type: "HAS_IMPACT_ON",
			Properties: map[string]any{"impactScore": 0.8, "impactDirection": "NEGATIVE"}},
		{SourceID: "a", TargetID: "b", Type: "KNOWS", Properties: nil},
	})

	assert.Equal(t, 1, counts["IS_EXPOSED_TO"])
	assert.Equal(t, 1, counts["HAS_IMPACT_ON"])
	assert.NotContains(t, counts, "KNOWS")
	assert.Len(t, store.GetCallsByMethod("Write"), 2)
}
