package sentry

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

const assessSystemPrompt = `당신은 KB국민은행의 리스크 관리 전문가입니다.
기업 현황과 감지된 이벤트를 바탕으로 금융 리스크를 전문적으로 재평가하세요.

다음 JSON 형식으로만 응답하세요. 코드블럭이나 추가 텍스트 금지:
{
  "enhanced_risks": [
    {"risk_id": "", "severity_score": 0.0, "business_impact": "", "mitigation_urgency": ""}
  ],
  "overall_assessment": {"total_risk_score": 0.0, "financial_stress_level": "high/medium/low"}
}`

type riskRefinement struct {
	EnhancedRisks []struct {
		RiskID            string  `json:"risk_id"`
		SeverityScore     float64 `json:"severity_score"`
		BusinessImpact    string  `json:"business_impact"`
		MitigationUrgency string  `json:"mitigation_urgency"`
	} `json:"enhanced_risks"`
	OverallAssessment struct {
		TotalRiskScore       float64 `json:"total_risk_score"`
		FinancialStressLevel string  `json:"financial_stress_level"`
	} `json:"overall_assessment"`
}

// assessRisks derives the deterministic risk list for a company under
// an event, then lets the model refine severities. The refinement is
// best-effort; the rule-based list stands on its own.
func (s *Sentry) assessRisks(ctx context.Context, event Event, cc companyContext) ([]Risk, float64, string) {
	risks := ruleBasedRisks(event, cc)
	score, stress := baselineScore(risks)

	if len(risks) == 0 {
		return risks, score, stress
	}

	refinement, err := s.refineRisks(ctx, event, cc, risks)
	if err != nil {
		s.logger.Warn("risk refinement failed, keeping rule-based assessment",
			"company", cc.CompanyName, "error", err)
		return risks, score, stress
	}

	for _, enhanced := range refinement.EnhancedRisks {
		for i := range risks {
			if risks[i].Type == enhanced.RiskID {
				risks[i].SeverityScore = enhanced.SeverityScore
				risks[i].BusinessImpact = enhanced.BusinessImpact
				risks[i].MitigationUrgency = enhanced.MitigationUrgency
			}
		}
	}
	if refinement.OverallAssessment.TotalRiskScore > 0 {
		score = refinement.OverallAssessment.TotalRiskScore
	}
	if refinement.OverallAssessment.FinancialStressLevel != "" {
		stress = refinement.OverallAssessment.FinancialStressLevel
	}
	return risks, score, stress
}

func ruleBasedRisks(event Event, cc companyContext) []Risk {
	var risks []Risk

	if event.Type == EventInterestRate && cc.VariableRateDebt > 0 {
		rateChange := math.Abs(event.ImpactMagnitude)
		// Debt amounts are stored in 억원.
		annual := float64(cc.VariableRateDebt) * 1e8 * rateChange / 100
		monthly := annual / 12

		severity := "medium"
		if cc.Revenue > 0 && annual/(float64(cc.Revenue)*1e8) >= 0.02 {
			severity = "high"
		}
		risks = append(risks, Risk{
			Type:                "interest_burden_increase",
			Severity:            severity,
			Description:         fmt.Sprintf("변동금리 대출로 인한 월 %.0f만원 추가 부담", monthly/10000),
			MonthlyCostIncrease: int64(monthly),
			AnnualCostIncrease:  int64(annual),
			Probability:         0.95,
			TimeHorizon:         "immediate",
		})
	}

	for _, exposure := range cc.Exposures {
		if stringProp(exposure, "exposureLevel") != "HIGH" {
			continue
		}
		indicator := stringProp(exposure, "indicator")
		if strings.Contains(indicator, "금리") {
			// Interest exposure is already covered above.
			continue
		}
		risks = append(risks, Risk{
			Type:          strings.ToLower(indicator) + "_exposure",
			Severity:      "high",
			Description:   fmt.Sprintf("%s 고위험 노출로 인한 잠재적 영향", indicator),
			IndicatorName: indicator,
			Probability:   0.7,
			TimeHorizon:   "1-3_months",
		})
	}

	if cc.ExportAmount > 0 {
		risks = append(risks, Risk{
			Type:        "exchange_rate_exposure",
			Severity:    "medium",
			Description: "수출 매출 보유로 원화 변동 시 수출 경쟁력 영향",
			Probability: 0.6,
			TimeHorizon: "3-6_months",
		})
	}

	return risks
}

// baselineScore grades the rule-based risks on a 10-point scale.
func baselineScore(risks []Risk) (float64, string) {
	if len(risks) == 0 {
		return 2.0, "low"
	}
	high := 0
	for _, r := range risks {
		if r.Severity == "high" {
			high++
		}
	}
	score := math.Min(3.0+float64(len(risks))+float64(high)*1.5, 10.0)
	switch {
	case score >= 7:
		return score, "high"
	case score >= 4.5:
		return score, "medium"
	default:
		return score, "low"
	}
}

func (s *Sentry) refineRisks(ctx context.Context, event Event, cc companyContext, risks []Risk) (riskRefinement, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "기업명: %s\n업종: %s\n연매출: %d억원\n변동금리 대출: %d억원\n\n",
		cc.CompanyName, cc.Industry, cc.Revenue, cc.VariableRateDebt)
	fmt.Fprintf(&sb, "감지된 이벤트: %s (%s, 영향도 %.1f)\n\n식별된 리스크:\n",
		event.Title, event.Type, event.ImpactMagnitude)
	for _, r := range risks {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Type, r.Severity, r.Description)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(assessSystemPrompt),
			llm.NewUserMessage(sb.String()),
		},
		Temperature: 0.1,
	})
	if err != nil {
		return riskRefinement{}, err
	}
	return llm.ExtractJSONAs[riskRefinement](resp.Message.Content)
}
