package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_AppliesAllStatements(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	require.NoError(t, EnsureSchema(ctx, mock))

	writes := mock.GetCallsByMethod("Write")
	assert.Len(t, writes, len(schemaConstraints)+len(schemaIndexes))

	for _, call := range writes {
		stmt := call.Args[0].(string)
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestLabelStats(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	mock.EnqueueResult(QueryResult{
		Records: []map[string]any{
			{"label": "MacroIndicator", "count": int64(4)},
			{"label": "UserCompany", "count": int64(2)},
		},
		Columns: []string{"label", "count"},
	})

	stats, err := LabelStats(ctx, mock)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats["UserCompany"])
	assert.Equal(t, int64(4), stats["MacroIndicator"])
}

func TestSchemaDescription_CoversAllLabels(t *testing.T) {
	labels := []string{
		LabelUserCompany, LabelReferenceCompany, LabelKBProduct,
		LabelPolicy, LabelMacroIndicator, LabelNewsArticle,
	}
	for _, label := range labels {
		assert.True(t, strings.Contains(SchemaDescription, label),
			"schema description missing label %s", label)
	}

	rels := []string{
		RelIsExposedTo, RelIsEligibleFor, RelSimilarTo,
		RelHasImpactOn, RelCompetesWith,
	}
	for _, rel := range rels {
		assert.True(t, strings.Contains(SchemaDescription, rel),
			"schema description missing relationship %s", rel)
	}
}

func TestFewShotExamples_AreWellFormed(t *testing.T) {
	require.NotEmpty(t, FewShotExamples)
	for _, ex := range FewShotExamples {
		assert.Contains(t, ex, "USER:")
		assert.Contains(t, ex, "CYPHER:")
		assert.Contains(t, ex, "MATCH")
	}
}
