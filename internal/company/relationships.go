package company

import (
	"fmt"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
)

// relationshipBootstrap is one parameterized write that links a newly
// registered company into the existing graph.
type relationshipBootstrap struct {
	name   string
	query  string
	params map[string]any
}

const interestExposureQuery = `MATCH (u:UserCompany {companyName: $companyName}), (m:MacroIndicator {indicatorName: '기준금리'})
CREATE (u)-[:IS_EXPOSED_TO {
    exposureLevel: $exposureLevel,
    rationale: $rationale,
    riskType: 'INTEREST_RATE',
    createdAt: datetime()
}]->(m)
RETURN count(*) AS created`

const exchangeExposureQuery = `MATCH (u:UserCompany {companyName: $companyName}), (m:MacroIndicator {indicatorName: '원달러환율'})
CREATE (u)-[:IS_EXPOSED_TO {
    exposureLevel: $exposureLevel,
    rationale: $rationale,
    riskType: 'EXCHANGE_RATE',
    createdAt: datetime()
}]->(m)
RETURN count(*) AS created`

const fixedRateProductQuery = `MATCH (u:UserCompany {companyName: $companyName}), (k:KB_Product)
WHERE k.productName CONTAINS '고정금리' OR k.productName CONTAINS '전환대출'
CREATE (u)-[:IS_ELIGIBLE_FOR {
    eligibilityScore: $score,
    urgency: $urgency,
    expectedBenefit: '월 이자부담 절감',
    actionRequired: 'KB 지점 방문 상담',
    createdAt: datetime()
}]->(k)
RETURN count(*) AS created`

const hedgeProductQuery = `MATCH (u:UserCompany {companyName: $companyName}), (k:KB_Product)
WHERE k.productName CONTAINS '환헤지' OR k.productName CONTAINS '수출기업'
CREATE (u)-[:IS_ELIGIBLE_FOR {
    eligibilityScore: $score,
    urgency: $urgency,
    expectedBenefit: '환율변동 리스크 헤지',
    actionRequired: '수출입 실적 준비 후 상담',
    createdAt: datetime()
}]->(k)
RETURN count(*) AS created`

const smePolicyQuery = `MATCH (u:UserCompany {companyName: $companyName}), (p:Policy)
WHERE p.supportField CONTAINS '중소기업' AND p.policyName CONTAINS '제조업'
CREATE (u)-[:IS_ELIGIBLE_FOR {
    eligibilityScore: $score,
    urgency: 'MEDIUM',
    expectedBenefit: '정부 지원자금 확보',
    actionRequired: '사업계획서 및 재무제표 준비',
    createdAt: datetime()
}]->(p)
RETURN count(*) AS created`

const similarCompanyQuery = `MATCH (u:UserCompany {companyName: $companyName}), (r:ReferenceCompany)
WHERE r.sector CONTAINS $industry
WITH u, r,
     CASE
         WHEN abs(r.revenue - $revenue) < 50 THEN 0.9
         WHEN abs(r.revenue - $revenue) < 100 THEN 0.7
         ELSE 0.5
     END AS similarity
WHERE similarity > $threshold
CREATE (u)-[:SIMILAR_TO {
    similarityScore: similarity,
    comparisonBasis: '업종 및 매출규모 유사',
    createdAt: datetime()
}]->(r)
RETURN count(*) AS created`

const newsImpactQuery = `MATCH (u:UserCompany {companyName: $companyName}), (n:NewsArticle)
WHERE n.category IN ['manufacturing', 'financial']
  AND (n.title CONTAINS '제조업' OR n.title CONTAINS '자동차'
       OR n.title CONTAINS '부품' OR n.title CONTAINS '금리'
       OR n.title CONTAINS '환율' OR n.title CONTAINS $industry)
CREATE (n)-[:HAS_IMPACT_ON {
    impactScore: 0.6,
    impactDirection: 'NEUTRAL',
    rationale: '업종 관련 뉴스 영향',
    createdAt: datetime()
}]->(u)
RETURN count(*) AS created`

// exposureLevel grades a ratio against the configured HIGH and MEDIUM
// cut-offs.
func exposureLevel(ratio, high, medium float64) string {
	switch {
	case ratio >= high:
		return "HIGH"
	case ratio >= medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func bootstrapRelationships(profile Profile, thresholds config.AnalysisConfig) []relationshipBootstrap {
	variableRatio := float64(profile.VariableDebtRatio) / 100
	exportRatio := float64(profile.ExportRatio) / 100
	industry := profile.Industry
	if industry == "" {
		industry = "제조"
	}

	fixedRateScore := 0.6
	if variableRatio >= 0.5 {
		fixedRateScore = 0.9
	}
	fixedRateUrgency := "MEDIUM"
	if variableRatio >= thresholds.VariableRateHighRatio {
		fixedRateUrgency = "HIGH"
	}
	hedgeScore := 0.5
	if exportRatio >= 0.3 {
		hedgeScore = 0.8
	}
	hedgeUrgency := "MEDIUM"
	if exportRatio >= thresholds.ExportHighRatio {
		hedgeUrgency = "HIGH"
	}
	policyScore := 0.6
	if profile.Revenue <= 120 {
		policyScore = 0.8
	}

	return []relationshipBootstrap{
		{
			name:  "interest-rate exposure",
			query: interestExposureQuery,
			params: map[string]any{
				"companyName":   profile.CompanyName,
				"exposureLevel": exposureLevel(variableRatio, thresholds.VariableRateHighRatio, thresholds.VariableRateMediumRatio),
				"rationale":     fmt.Sprintf("변동금리 대출 비중 %d%%", profile.VariableDebtRatio),
			},
		},
		{
			name:  "exchange-rate exposure",
			query: exchangeExposureQuery,
			params: map[string]any{
				"companyName":   profile.CompanyName,
				"exposureLevel": exposureLevel(exportRatio, thresholds.ExportHighRatio, thresholds.ExportMediumRatio),
				"rationale":     fmt.Sprintf("수출 비중 %d%%", profile.ExportRatio),
			},
		},
		{
			name:  "fixed-rate products",
			query: fixedRateProductQuery,
			params: map[string]any{
				"companyName": profile.CompanyName,
				"score":       fixedRateScore,
				"urgency":     fixedRateUrgency,
			},
		},
		{
			name:  "hedge products",
			query: hedgeProductQuery,
			params: map[string]any{
				"companyName": profile.CompanyName,
				"score":       hedgeScore,
				"urgency":     hedgeUrgency,
			},
		},
		{
			name:  "sme policies",
			query: smePolicyQuery,
			params: map[string]any{
				"companyName": profile.CompanyName,
				"score":       policyScore,
			},
		},
		{
			name:  "similar companies",
			query: similarCompanyQuery,
			params: map[string]any{
				"companyName": profile.CompanyName,
				"industry":    industry,
				"revenue":     profile.Revenue,
				"threshold":   thresholds.SimilarityThreshold,
			},
		},
		{
			name:  "news impact",
			query: newsImpactQuery,
			params: map[string]any{
				"companyName": profile.CompanyName,
				"industry":    industry,
			},
		},
	}
}
