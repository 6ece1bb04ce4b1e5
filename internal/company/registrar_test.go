package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

func testThresholds() config.AnalysisConfig {
	return config.DefaultConfig().Analysis
}

func testProfile() Profile {
	return Profile{
		CompanyName:       "대한정밀",
		Industry:          "자동차부품 제조",
		Location:          "경기도 안산시",
		Revenue:           150,
		Employees:         45,
		Debt:              80,
		VariableDebtRatio: 80,
		ExportRatio:       40,
	}
}

func createdResult(n int64) graph.QueryResult {
	return graph.QueryResult{
		Records: []map[string]any{{"created": n}},
		Columns: []string{"created"},
	}
}

func TestRegister_CreatesNodeAndRelationships(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	// Duplicate check, node creation, then seven bootstrap writes.
	store.EnqueueResult(graph.QueryResult{})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{"nodeId": "대한정밀_1"}}})
	for i := 0; i < 7; i++ {
		store.EnqueueResult(createdResult(1))
	}

	clock := clockwork.NewFakeClock()
	registrar := NewRegistrar(store, NewExtractor(nil, ""), testThresholds(),
		WithRegistrarClock(clock))

	result, err := registrar.RegisterProfile(ctx, testProfile())
	require.NoError(t, err)

	assert.False(t, result.AlreadyRegistered)
	assert.Equal(t, "대한정밀", result.CompanyName)
	assert.Equal(t, fmt.Sprintf("대한정밀_%d", clock.Now().UnixMilli()), result.NodeID)
	assert.Equal(t, 7, result.RelationshipsCreated)

	assert.Len(t, store.GetCallsByMethod("Query"), 1)
	assert.Len(t, store.GetCallsByMethod("Write"), 8)
}

func TestRegister_DuplicateNameSkipsCreation(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{{"companyName": "대한정밀"}},
	})

	registrar := NewRegistrar(store, NewExtractor(nil, ""), testThresholds())

	result, err := registrar.RegisterProfile(ctx, testProfile())
	require.NoError(t, err)

	assert.True(t, result.AlreadyRegistered)
	assert.Empty(t, result.NodeID)
	assert.Empty(t, store.GetCallsByMethod("Write"))
}

func TestRegister_RelationshipFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueResult(graph.QueryResult{})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{"nodeId": "대한정밀_1"}}})
	store.EnqueueError(fmt.Errorf("missing index"))
	for i := 0; i < 6; i++ {
		store.EnqueueResult(createdResult(1))
	}

	registrar := NewRegistrar(store, NewExtractor(nil, ""), testThresholds())

	result, err := registrar.RegisterProfile(ctx, testProfile())
	require.NoError(t, err)

	assert.Equal(t, 6, result.RelationshipsCreated)
	assert.Len(t, store.GetCallsByMethod("Write"), 8)
}

func TestRegister_FromText(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	registrar := NewRegistrar(store, NewExtractor(nil, ""), testThresholds())

	result, err := registrar.Register(ctx, "회사명: 한국금속\n매출: 90\n부채: 40")
	require.NoError(t, err)

	assert.Equal(t, "한국금속", result.CompanyName)
	assert.False(t, result.AlreadyRegistered)
}

func TestExposureLevel_Grading(t *testing.T) {
	thresholds := testThresholds()

	assert.Equal(t, "HIGH", exposureLevel(0.8, thresholds.VariableRateHighRatio, thresholds.VariableRateMediumRatio))
	assert.Equal(t, "HIGH", exposureLevel(0.7, thresholds.VariableRateHighRatio, thresholds.VariableRateMediumRatio))
	assert.Equal(t, "MEDIUM", exposureLevel(0.5, thresholds.VariableRateHighRatio, thresholds.VariableRateMediumRatio))
	assert.Equal(t, "LOW", exposureLevel(0.2, thresholds.VariableRateHighRatio, thresholds.VariableRateMediumRatio))
}

func TestBootstrapRelationships_ExposureParams(t *testing.T) {
	bootstraps := bootstrapRelationships(testProfile(), testThresholds())
	require.Len(t, bootstraps, 7)

	interest := bootstraps[0]
	assert.Equal(t, "HIGH", interest.params["exposureLevel"])
	assert.Contains(t, interest.params["rationale"], "80%")

	exchange := bootstraps[1]
	assert.Equal(t, "MEDIUM", exchange.params["exposureLevel"])

	fixedRate := bootstraps[2]
	assert.Equal(t, 0.9, fixedRate.params["score"])
	assert.Equal(t, "HIGH", fixedRate.params["urgency"])

	hedge := bootstraps[3]
	assert.Equal(t, 0.8, hedge.params["score"])
	assert.Equal(t, "MEDIUM", hedge.params["urgency"])
}

func TestBootstrapRelationships_IndustryDefault(t *testing.T) {
	profile := testProfile()
	profile.Industry = ""

	bootstraps := bootstrapRelationships(profile, testThresholds())

	similar := bootstraps[5]
	assert.Equal(t, "제조", similar.params["industry"])
}
