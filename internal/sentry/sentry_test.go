package sentry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm/providers"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

func testEvent() Event {
	return DefaultEvent(time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC))
}

func profileRecord(name string) map[string]any {
	return map[string]any{
		"companyName":      name,
		"industry":         "자동차부품 제조",
		"location":         "경기도 안산시",
		"revenue":          int64(150),
		"employees":        int64(45),
		"variableRateDebt": int64(56),
		"exportAmount":     int64(45),
	}
}

func enqueueCompanyContext(store *graph.MockClient, name string) {
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{profileRecord(name)}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{
		{"indicator": "원달러환율", "exposureLevel": "HIGH", "riskType": "EXCHANGE_RATE"},
		{"indicator": "기준금리", "exposureLevel": "HIGH", "riskType": "INTEREST_RATE"},
	}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{
		{"productName": "KB 고정금리 전환대출", "productType": "운전자금",
			"eligibilityScore": 0.9, "expectedBenefit": "월 이자부담 절감"},
	}})
	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{
		{"policyName": "중소기업 제조업 지원", "issuingOrg": "중소벤처기업부", "eligibilityScore": 0.8},
	}})
}

func TestProcessEvent_InterestRateScenario(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))
	enqueueCompanyContext(store, "대한정밀")

	provider := providers.NewMockProvider([]string{
		`{"enhanced_risks": [{"risk_id": "interest_burden_increase", "severity_score": 8.5, "business_impact": "영업이익 감소", "mitigation_urgency": "2주 내 고정금리 전환"}], "overall_assessment": {"total_risk_score": 8.2, "financial_stress_level": "high"}}`,
	})
	s := New(store, provider, "gemini-2.0-flash")

	alert, err := s.ProcessEvent(ctx, testEvent(), "대한정밀")
	require.NoError(t, err)

	require.Len(t, alert.Risks, 3)
	interest := alert.Risks[0]
	assert.Equal(t, "interest_burden_increase", interest.Type)
	// 56억원 at +0.5%p is 28,000,000원 a year.
	assert.Equal(t, int64(28000000), interest.AnnualCostIncrease)
	assert.Equal(t, int64(2333333), interest.MonthlyCostIncrease)
	assert.Equal(t, 8.5, interest.SeverityScore)
	assert.Equal(t, "2주 내 고정금리 전환", interest.MitigationUrgency)

	assert.Equal(t, "원달러환율_exposure", alert.Risks[1].Type)
	assert.Equal(t, "exchange_rate_exposure", alert.Risks[2].Type)

	assert.Equal(t, 8.2, alert.RiskScore)
	assert.Equal(t, "high", alert.StressLevel)
	assert.Equal(t, 1.0, alert.Confidence)

	// Product, policy, hedge and monitoring recommendations.
	require.Len(t, alert.Solutions, 4)
	assert.Contains(t, alert.Report, "대한정밀")
	assert.Contains(t, alert.Report, "한국은행 기준금리 0.5%p 인상")
}

func TestProcessEvent_RefinementFailureKeepsRuleBasedRisks(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))
	enqueueCompanyContext(store, "대한정밀")

	s := New(store, providers.NewMockProvider(nil), "gemini-2.0-flash")

	alert, err := s.ProcessEvent(ctx, testEvent(), "대한정밀")
	require.NoError(t, err)

	require.Len(t, alert.Risks, 3)
	assert.Zero(t, alert.Risks[0].SeverityScore)
	assert.Greater(t, alert.RiskScore, 0.0)
	assert.NotEmpty(t, alert.StressLevel)
}

func TestProcessEvent_UnknownCompany(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	s := New(store, providers.NewMockProvider(nil), "gemini-2.0-flash")

	_, err := s.ProcessEvent(ctx, testEvent(), "없는회사")
	require.Error(t, err)

	var ferr *types.FortressError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, types.COMPANY_NOT_FOUND, ferr.Code)
}

func TestFanOut_SkipsFailingCompanies(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{
		{"companyName": "대한정밀"},
		{"companyName": "한국금속"},
	}})
	enqueueCompanyContext(store, "대한정밀")
	store.EnqueueError(fmt.Errorf("connection reset"))

	s := New(store, providers.NewMockProvider(nil), "gemini-2.0-flash",
		WithMaxConcurrent(1))

	result, err := s.FanOut(ctx, testEvent())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Companies)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "대한정밀", result.Alerts[0].CompanyName)
}

func TestFanOut_NoCompanies(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	s := New(store, providers.NewMockProvider(nil), "gemini-2.0-flash")

	result, err := s.FanOut(ctx, testEvent())
	require.NoError(t, err)
	assert.Zero(t, result.Companies)
	assert.Empty(t, result.Alerts)
}

func TestBaselineScore(t *testing.T) {
	score, stress := baselineScore(nil)
	assert.Equal(t, 2.0, score)
	assert.Equal(t, "low", stress)

	risks := []Risk{
		{Severity: "high"},
		{Severity: "high"},
		{Severity: "medium"},
	}
	score, stress = baselineScore(risks)
	assert.Equal(t, 9.0, score)
	assert.Equal(t, "high", stress)
}

func TestFormatWon(t *testing.T) {
	assert.Equal(t, "0", formatWon(0))
	assert.Equal(t, "999", formatWon(999))
	assert.Equal(t, "2,333,333", formatWon(2333333))
	assert.Equal(t, "28,000,000", formatWon(28000000))
}
