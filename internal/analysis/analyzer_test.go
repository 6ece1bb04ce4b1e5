package analysis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm/providers"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/pipeline"
)

func analysisProfile() company.Profile {
	return company.Profile{
		CompanyName:       "대한정밀",
		Industry:          "자동차부품 제조",
		Revenue:           150,
		Debt:              80,
		VariableDebtRatio: 80,
		ExportRatio:       40,
	}
}

func TestAnalyze_AnswersEveryStandingQuestion(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	// Five sections, each one generation plus one answer synthesis,
	// then the structured assessment call.
	var responses []string
	for i := 0; i < 5; i++ {
		responses = append(responses,
			"MATCH (u:UserCompany {companyName: '대한정밀'}) RETURN u",
			"대한정밀 분석 결과입니다.")
	}
	responses = append(responses,
		`{"overall_risk_level": "HIGH", "risk_score": 0.8, "key_risks": [{"type": "금리리스크", "level": "HIGH", "impact": "이자부담 증가", "mitigation": "고정금리 전환"}], "opportunities": ["정책자금"], "assessment_summary": "금리 리스크가 높습니다."}`)
	provider := providers.NewMockProvider(responses)

	pipe := pipeline.New(provider, store)
	analyzer := NewAnalyzer(pipe, store, provider, "gemini-2.0-flash",
		config.DefaultConfig().Analysis, slog.Default())

	report, err := analyzer.Analyze(ctx, analysisProfile())
	require.NoError(t, err)

	assert.Len(t, report.Answers, len(Sections))
	for _, section := range Sections {
		answer, ok := report.Answers[section]
		require.True(t, ok, "missing section %s", section)
		assert.True(t, answer.Succeeded)
		assert.NotEmpty(t, answer.Text)
	}

	assert.Equal(t, "HIGH", report.Assessment.OverallRiskLevel)
	assert.Equal(t, 0.8, report.Assessment.RiskScore)
	assert.Equal(t, "금리 리스크가 높습니다.", report.Assessment.AssessmentSummary)
	assert.Equal(t, 11, provider.CallCount())
}

func TestGradeRisk_FactorScoring(t *testing.T) {
	thresholds := config.DefaultConfig().Analysis

	tests := []struct {
		name          string
		variableRatio int
		exportRatio   int
		highExposures int
		wantLevel     string
		wantScore     float64
	}{
		{"high on both ratios", 80, 60, 0, "HIGH", 0.75},
		{"medium on moderate ratios", 50, 30, 0, "MEDIUM", 0.5},
		{"low on small ratios", 30, 10, 0, "LOW", 0.25},
		{"exposures push grade up", 30, 10, 2, "MEDIUM", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := company.Profile{
				CompanyName:       "테스트기업",
				VariableDebtRatio: tt.variableRatio,
				ExportRatio:       tt.exportRatio,
			}
			level, score := gradeRisk(profile, tt.highExposures, thresholds)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestAssess_FallsBackWhenProviderFails(t *testing.T) {
	// A provider with no scripted responses fails every call.
	provider := providers.NewMockProvider(nil)
	analyzer := &Analyzer{
		provider: provider,
		model:    "gemini-2.0-flash",
		logger:   slog.Default(),
	}

	assessment := analyzer.assess(context.Background(), analysisProfile(), 1, "HIGH", 0.75)

	assert.Equal(t, "HIGH", assessment.OverallRiskLevel)
	assert.Equal(t, 0.75, assessment.RiskScore)
	assert.NotEmpty(t, assessment.KeyRisks)
	assert.Contains(t, assessment.AssessmentSummary, "대한정밀")
}

func TestAssess_BackfillsMissingFields(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		`{"overall_risk_level": "MEDIUM"}`,
	})
	analyzer := &Analyzer{
		provider: provider,
		model:    "gemini-2.0-flash",
		logger:   slog.Default(),
	}

	assessment := analyzer.assess(context.Background(), analysisProfile(), 0, "LOW", 0.25)

	assert.Equal(t, "MEDIUM", assessment.OverallRiskLevel)
	assert.Equal(t, 0.25, assessment.RiskScore)
	assert.NotEmpty(t, assessment.KeyRisks)
	assert.NotEmpty(t, assessment.Opportunities)
	assert.Contains(t, assessment.AssessmentSummary, "MEDIUM")
}

func TestDefaultRisks_RuleBased(t *testing.T) {
	profile := company.Profile{
		CompanyName:       "한국금속",
		VariableDebtRatio: 80,
		ExportRatio:       10,
	}

	risks := defaultRisks(profile)
	require.Len(t, risks, 2)

	assert.Equal(t, "금리리스크", risks[0].Type)
	assert.Equal(t, "HIGH", risks[0].Level)
	assert.Equal(t, "원자재리스크", risks[1].Type)
}
