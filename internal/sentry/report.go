package sentry

import (
	"fmt"
	"math"
	"strings"
)

// renderReport writes the Korean alert report for one company.
func renderReport(event Event, cc companyContext, risks []Risk, solutions []Solution) string {
	var sb strings.Builder

	sb.WriteString("## 긴급 금융 리스크 알림\n")
	fmt.Fprintf(&sb, "**이벤트**: %s\n", event.Title)
	fmt.Fprintf(&sb, "**대상 기업**: %s (%s)\n", cc.CompanyName, cc.Industry)
	fmt.Fprintf(&sb, "**영향도**: %.1f\n", event.ImpactMagnitude)

	sb.WriteString("\n## 식별된 리스크\n")
	for i, risk := range risks {
		cost := ""
		if risk.MonthlyCostIncrease > 0 {
			cost = fmt.Sprintf(" (월 %s원 추가 부담)", formatWon(risk.MonthlyCostIncrease))
		}
		fmt.Fprintf(&sb, "%d. **%s** - %s%s\n", i+1, risk.Type, strings.ToUpper(risk.Severity), cost)
		fmt.Fprintf(&sb, "   - %s\n", risk.Description)
	}

	sb.WriteString("\n## 추천 해결책\n")
	for i, solution := range solutions {
		saving := ""
		if solution.EstimatedSaving > 0 {
			saving = fmt.Sprintf(" (월 %s원 절감 예상)", formatWon(solution.EstimatedSaving))
		}
		fmt.Fprintf(&sb, "%d. **%s**%s\n", i+1, solution.Name, saving)
		fmt.Fprintf(&sb, "   - %s\n", solution.ExpectedBenefit)
		if solution.EligibilityScore > 0 {
			fmt.Fprintf(&sb, "   - 적합도: %.1f/1.0\n", solution.EligibilityScore)
		}
		if solution.Timeline != "" {
			fmt.Fprintf(&sb, "   - 실행시간: %s\n", solution.Timeline)
		}
	}

	sb.WriteString("\n## 즉시 행동 권고\n")
	sb.WriteString("1. **우선순위 1**: 정책자금 대출 신청으로 이자 부담 경감\n")
	sb.WriteString("2. **우선순위 2**: KB 수출기업 우대대출 검토\n")
	sb.WriteString("3. **모니터링**: 추가 금리 인상 시나리오 대비\n")

	return sb.String()
}

// confidence grades how much evidence backs an alert.
func confidence(risks []Risk, solutions []Solution) float64 {
	score := float64(len(risks))*0.2 + float64(len(solutions))*0.3
	if len(risks) > 0 {
		score += 0.3
	}
	return math.Min(score, 1.0)
}

// formatWon renders an amount with thousands separators.
func formatWon(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
