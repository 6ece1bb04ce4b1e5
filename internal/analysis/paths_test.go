package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

func TestPathAnalyzerDiscoversAndScoresPaths(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"newsTitle":     "미 연준 금리 인상",
		"indicator":     "기준금리",
		"newsImpact":    0.8,
		"exposureLevel": "HIGH",
	}}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"newsTitle":        "자동차부품 수요 둔화",
		"indicator":        "제조업BSI",
		"benchmarkCompany": "현대차부품",
	}}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"newsTitle":       "경쟁사 수주 감소",
		"affectedCompany": "한국정밀공업",
		"directImpact":    0.5,
	}}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"policyName": "중소기업 금리 지원",
		"solution":   "KB 고정금리 전환대출",
	}}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"product":    "KB 고정금리 전환대출",
		"type":       "운전자금",
		"targetRisk": "기준금리",
	}}})

	assessment, err := NewPathAnalyzer(store, nil).Analyze(ctx, "대한정밀")
	require.NoError(t, err)

	require.Len(t, assessment.Paths, 4)
	assert.InDelta(t, 0.8, assessment.Paths[0].Score, 1e-9)
	assert.Equal(t, 0.6, assessment.Paths[1].Score)
	assert.InDelta(t, 0.4, assessment.Paths[2].Score, 1e-9)
	assert.Equal(t, -0.3, assessment.Paths[3].Score)
	assert.Equal(t, 3, assessment.Paths[1].Length)

	// (0.8*1/2 + 0.6*1/3 + 0.4*1/2 - 0.3*1/2) / (1/2+1/3+1/2+1/2) * 100
	assert.InDelta(t, 35.45, assessment.CompositeScore, 0.01)

	require.Len(t, assessment.PrimaryFactors, 2)
	assert.Equal(t, "뉴스 '미 연준 금리 인상' → 기준금리 → 기업 노출",
		assessment.PrimaryFactors[0])

	assert.Contains(t, assessment.Strategies, "변동금리 대출 비중 축소 및 고정금리 전환 검토")
	assert.Contains(t, assessment.Strategies, "업종 특화 위험 모니터링 및 벤치마킹 강화")

	require.Len(t, assessment.Solutions, 1)
	assert.Equal(t, "기준금리 위험 대응", assessment.Solutions[0].Reason)
	assert.Len(t, assessment.Indicators, 5)

	report := assessment.RenderReport()
	assert.Contains(t, report, "대한정밀 멀티홉 위험 분석 보고서")
	assert.Contains(t, report, "주요 위험 경로 (4개)")
	assert.Contains(t, report, "KB 고정금리 전환대출")
}

func TestPathAnalyzerSkipsFailedPatterns(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueError(fmt.Errorf("index not online"))

	assessment, err := NewPathAnalyzer(store, nil).Analyze(ctx, "대한정밀")
	require.NoError(t, err)

	assert.Empty(t, assessment.Paths)
	assert.Zero(t, assessment.CompositeScore)
	assert.Equal(t, []string{"현재 식별된 고위험 요소 없음"}, assessment.PrimaryFactors)
	assert.Equal(t, []string{"정기적인 재무 건전성 점검 및 위험 관리 체계 구축"},
		assessment.Strategies)
}

func TestScoreNewsMacroPath(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{"HIGH", 0.8},
		{"MEDIUM", 0.56},
		{"LOW", 0.32},
		{"", 0.32},
	}
	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			path := scoreNewsMacroPath(map[string]any{
				"newsImpact":    0.8,
				"exposureLevel": tt.level,
			})
			assert.InDelta(t, tt.want, path.Score, 1e-9)
		})
	}
}

func TestCompositeRiskScore(t *testing.T) {
	assert.Zero(t, compositeRiskScore(nil))

	// Mitigation-only paths clamp at zero.
	assert.Zero(t, compositeRiskScore([]RiskPath{{Length: 2, Score: -0.3}}))

	// A single fully-direct path caps at 100.
	assert.Equal(t, 100.0, compositeRiskScore([]RiskPath{{Length: 1, Score: 1.5}}))
}
