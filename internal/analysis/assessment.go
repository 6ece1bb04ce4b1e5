package analysis

import (
	"context"
	"fmt"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

const assessSystemPrompt = `KB 중소기업 리스크 분석 전문가입니다.
분석 결과를 바탕으로 구조화된 JSON 형태의 리스크 평가를 제공하세요.

중요: 반드시 유효한 JSON 형식으로만 응답하세요. 추가 설명이나 마크다운 없이 순수 JSON만 반환하세요.

{
    "overall_risk_level": "HIGH/MEDIUM/LOW",
    "risk_score": 0.0-1.0,
    "key_risks": [
        {
            "type": "금리리스크/환율리스크/원자재리스크/시장리스크",
            "level": "HIGH/MEDIUM/LOW",
            "impact": "예상 영향",
            "mitigation": "대응 방안"
        }
    ],
    "opportunities": ["기회 요인들"],
    "assessment_summary": "종합 평가 요약"
}`

// assess asks the model for a structured assessment and backfills any
// missing fields from the deterministic grading. A failed call or
// unparseable reply degrades to the fully deterministic assessment.
func (a *Analyzer) assess(ctx context.Context, profile company.Profile, highExposures int, level string, score float64) RiskAssessment {
	userPrompt := fmt.Sprintf(`기업명: %s
변동금리 비중: %d%%
수출 비중: %d%%
거시지표 노출 HIGH: %d개

위 데이터를 종합하여 구조화된 리스크 평가를 JSON 형태로 제공하세요.`,
		profile.CompanyName, profile.VariableDebtRatio, profile.ExportRatio, highExposures)

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(assessSystemPrompt),
			llm.NewUserMessage(userPrompt),
		},
		Temperature: 0.2,
	})
	if err != nil {
		a.logger.Warn("risk assessment call failed, using deterministic grading",
			"company", profile.CompanyName, "error", err)
		return defaultAssessment(profile, level, score)
	}

	assessment, err := llm.ExtractJSONAs[RiskAssessment](resp.Message.Content)
	if err != nil {
		a.logger.Warn("risk assessment reply unparseable, using deterministic grading",
			"company", profile.CompanyName, "error", err)
		return defaultAssessment(profile, level, score)
	}

	if assessment.OverallRiskLevel == "" {
		assessment.OverallRiskLevel = level
	}
	if assessment.RiskScore <= 0 {
		assessment.RiskScore = score
	}
	if len(assessment.KeyRisks) == 0 {
		assessment.KeyRisks = defaultRisks(profile)
	}
	if len(assessment.Opportunities) == 0 {
		assessment.Opportunities = []string{"KB 금융상품 활용을 통한 금융비용 절감"}
	}
	if assessment.AssessmentSummary == "" {
		assessment.AssessmentSummary = fmt.Sprintf("%s은 %s 수준의 종합 리스크를 보이고 있습니다.",
			profile.CompanyName, assessment.OverallRiskLevel)
	}
	return assessment
}

// defaultRisks derives the rule-based risk list from the profile.
func defaultRisks(profile company.Profile) []KeyRisk {
	var risks []KeyRisk

	if profile.VariableDebtRatio > 50 {
		level := "MEDIUM"
		if profile.VariableDebtRatio >= 70 {
			level = "HIGH"
		}
		risks = append(risks, KeyRisk{
			Type:  "금리리스크",
			Level: level,
			Impact: fmt.Sprintf("변동금리 대출 비중 %d%%로 금리 1%%p 상승 시 연간 이자부담 %d만원 증가 예상",
				profile.VariableDebtRatio, profile.VariableDebtRatio/2),
			Mitigation: "KB 고정금리 전환대출 활용으로 금리 상승 리스크 헤지",
		})
	}

	if profile.ExportRatio > 20 {
		level := "MEDIUM"
		if profile.ExportRatio >= 50 {
			level = "HIGH"
		}
		risks = append(risks, KeyRisk{
			Type:  "환율리스크",
			Level: level,
			Impact: fmt.Sprintf("수출 비중 %d%%로 원/달러 환율 10원 변동 시 월 매출 %d만원 변동",
				profile.ExportRatio, profile.ExportRatio*3/10),
			Mitigation: "KB 환헤지 상품을 통한 환율 변동성 관리",
		})
	}

	// Manufacturing always carries raw-material exposure.
	risks = append(risks, KeyRisk{
		Type:       "원자재리스크",
		Level:      "MEDIUM",
		Impact:     "주요 원자재 가격 10% 상승 시 제조원가 3-5% 증가 예상",
		Mitigation: "장기 공급계약 체결 및 대체 공급처 확보",
	})

	return risks
}

func defaultAssessment(profile company.Profile, level string, score float64) RiskAssessment {
	return RiskAssessment{
		OverallRiskLevel: level,
		RiskScore:        score,
		KeyRisks:         defaultRisks(profile),
		Opportunities: []string{
			"KB 금융상품 활용을 통한 금융비용 절감",
			"정부 지원정책 활용으로 자금 조달 비용 감소",
			"환헤지 전략 수립으로 수익성 안정화",
		},
		AssessmentSummary: fmt.Sprintf("%s은 변동금리 비중 %d%%, 수출 비중 %d%%로 %s 수준의 종합 리스크를 보이고 있습니다. 특히 금리와 환율 변동에 대한 선제적 대응이 필요합니다.",
			profile.CompanyName, profile.VariableDebtRatio, profile.ExportRatio, level),
	}
}
