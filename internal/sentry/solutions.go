package sentry

import (
	"fmt"
	"sort"
)

// buildSolutions recommends countermeasures from the company's
// eligible products and policies, plus hedge and monitoring options
// derived from the risk list.
func buildSolutions(cc companyContext, risks []Risk) []Solution {
	var solutions []Solution

	// Savings assume a fixed-rate switch offsets roughly 30% of the
	// added interest burden.
	var interestSaving int64
	for _, risk := range risks {
		if risk.Type == "interest_burden_increase" && risk.MonthlyCostIncrease > 0 {
			interestSaving = risk.MonthlyCostIncrease * 3 / 10
			break
		}
	}

	for _, product := range cc.Products {
		solutions = append(solutions, Solution{
			Type:             "kb_financial_product",
			Name:             stringProp(product, "productName"),
			ProductType:      stringProp(product, "productType"),
			ExpectedBenefit:  stringProp(product, "expectedBenefit"),
			Timeline:         "1-2주",
			EstimatedSaving:  interestSaving,
			EligibilityScore: floatProp(product, "eligibilityScore"),
			RiskCoverage:     []string{"interest_burden_increase"},
		})
	}

	for _, policy := range cc.Policies {
		solutions = append(solutions, Solution{
			Type:             "government_policy",
			Name:             stringProp(policy, "policyName"),
			ExpectedBenefit:  "정부 보조금 및 이차보전 지원",
			Timeline:         "2-4주",
			EstimatedSaving:  1000000,
			EligibilityScore: floatProp(policy, "eligibilityScore"),
			RiskCoverage:     []string{"interest_burden_increase", "general_financial_burden"},
		})
	}

	for _, risk := range risks {
		switch {
		case risk.Type == "exchange_rate_exposure":
			solutions = append(solutions, Solution{
				Type:            "financial_hedge",
				Name:            "KB 환율 헤지 상품",
				ExpectedBenefit: "환율 변동 리스크 완화",
				Timeline:        "즉시",
				RiskCoverage:    []string{"exchange_rate_exposure"},
			})
		case risk.IndicatorName != "":
			solutions = append(solutions, Solution{
				Type:            "risk_monitoring",
				Name:            fmt.Sprintf("KB %s 모니터링 서비스", risk.IndicatorName),
				ExpectedBenefit: "리스크 조기 경보 및 대응 지원",
				Timeline:        "1주",
				RiskCoverage:    []string{risk.Type},
			})
		}
	}

	// Highest combined saving and fit first.
	sort.SliceStable(solutions, func(i, j int) bool {
		return solutionWeight(solutions[i]) > solutionWeight(solutions[j])
	})
	return solutions
}

func solutionWeight(s Solution) float64 {
	return float64(s.EstimatedSaving) + s.EligibilityScore*1000000
}
