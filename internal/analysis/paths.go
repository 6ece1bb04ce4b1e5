package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

// Path kinds, from the most direct propagation to risk-mitigating
// chains.
const (
	pathNewsMacroCompany   = "news_macro_company"
	pathNewsMacroBenchmark = "news_macro_benchmark_company"
	pathNewsSimilarity     = "news_company_similarity"
	pathPolicySolution     = "company_policy_solution"
)

const newsMacroCompanyQuery = `
MATCH (news:NewsArticle)-[r1:HAS_IMPACT_ON]->(macro:MacroIndicator)
      <-[r2:IS_EXPOSED_TO]-(company:UserCompany {companyName: $companyName})
RETURN news.title AS newsTitle,
       macro.indicatorName AS indicator,
       r1.impactScore AS newsImpact,
       r2.exposureLevel AS exposureLevel`

const newsMacroBenchmarkQuery = `
MATCH (news:NewsArticle)-[:HAS_IMPACT_ON]->(macro:MacroIndicator)
      <-[:IS_EXPOSED_TO]-(benchmark:ReferenceCompany)
      -[:SIMILAR_TO]-(company:UserCompany {companyName: $companyName})
RETURN news.title AS newsTitle,
       macro.indicatorName AS indicator,
       benchmark.companyName AS benchmarkCompany`

const newsSimilarityQuery = `
MATCH (news:NewsArticle)-[r1:HAS_IMPACT_ON]->(ref:ReferenceCompany)
      -[:SIMILAR_TO]-(company:UserCompany {companyName: $companyName})
RETURN news.title AS newsTitle,
       ref.companyName AS affectedCompany,
       r1.impactScore AS directImpact`

const policySolutionQuery = `
MATCH (company:UserCompany {companyName: $companyName})
      -[:IS_ELIGIBLE_FOR]->(policy:Policy)
      -[:SYNERGY_WITH]->(product:KB_Product)
RETURN policy.policyName AS policyName,
       product.productName AS solution`

const pathSolutionQuery = `
MATCH (company:UserCompany {companyName: $companyName})-[:IS_EXPOSED_TO]->(macro:MacroIndicator),
      (product:KB_Product)
WHERE (macro.indicatorName CONTAINS '금리' AND product.productName CONTAINS '금리')
   OR (macro.indicatorName CONTAINS '환율' AND product.productName CONTAINS '환헤지')
   OR product.targetCustomer CONTAINS '중소기업'
RETURN DISTINCT product.productName AS product,
                product.productType AS type,
                macro.indicatorName AS targetRisk
LIMIT 5`

// RiskPath is one risk-propagation chain through the graph, scored by
// how directly it reaches the company.
type RiskPath struct {
	Kind        string  `json:"kind"`
	Length      int     `json:"length"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	ImpactChain string  `json:"impact_chain"`
}

// PathSolution is a KB product matched to a risk the paths surfaced.
type PathSolution struct {
	ProductName string `json:"product_name"`
	ProductType string `json:"product_type"`
	TargetRisk  string `json:"target_risk"`
	Reason      string `json:"reason"`
}

// PathAssessment aggregates every discovered risk path for a company.
type PathAssessment struct {
	CompanyName    string         `json:"company_name"`
	Paths          []RiskPath     `json:"paths"`
	CompositeScore float64        `json:"composite_score"`
	PrimaryFactors []string       `json:"primary_factors"`
	Solutions      []PathSolution `json:"solutions"`
	Strategies     []string       `json:"strategies"`
	Indicators     []string       `json:"indicators"`
}

// PathAnalyzer discovers multi-hop risk-propagation paths: news
// articles moving macro indicators a company is exposed to, impacts
// arriving through similar reference companies, and policy-to-product
// chains that offset risk.
type PathAnalyzer struct {
	store  graph.Client
	logger *slog.Logger
}

func NewPathAnalyzer(store graph.Client, logger *slog.Logger) *PathAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PathAnalyzer{store: store, logger: logger}
}

// Analyze walks all path patterns for the company. A pattern whose
// query fails is skipped; the assessment is built from whatever paths
// were found.
func (a *PathAnalyzer) Analyze(ctx context.Context, companyName string) (PathAssessment, error) {
	params := map[string]any{"companyName": companyName}
	var paths []RiskPath

	if result, err := a.store.Query(ctx, newsMacroCompanyQuery, params); err == nil {
		for _, record := range result.Records {
			paths = append(paths, scoreNewsMacroPath(record))
		}
	} else {
		a.logger.Warn("path discovery failed", "kind", pathNewsMacroCompany, "error", err)
	}

	if result, err := a.store.Query(ctx, newsMacroBenchmarkQuery, params); err == nil {
		for _, record := range result.Records {
			paths = append(paths, RiskPath{
				Kind:   pathNewsMacroBenchmark,
				Length: 3,
				Score:  0.6,
				Explanation: fmt.Sprintf("뉴스 → %s → 벤치마크기업(%s) → 우리기업",
					recordText(record, "indicator"), recordText(record, "benchmarkCompany")),
				ImpactChain: "산업 전반 영향 → 유사기업 → 간접 파급효과",
			})
		}
	} else {
		a.logger.Warn("path discovery failed", "kind", pathNewsMacroBenchmark, "error", err)
	}

	if result, err := a.store.Query(ctx, newsSimilarityQuery, params); err == nil {
		for _, record := range result.Records {
			impact := recordFloat(record, "directImpact")
			paths = append(paths, RiskPath{
				Kind:   pathNewsSimilarity,
				Length: 2,
				// Similarity is an indirect channel.
				Score: impact * 0.8,
				Explanation: fmt.Sprintf("뉴스 → %s → 유사성을 통한 간접 영향",
					recordText(record, "affectedCompany")),
				ImpactChain: fmt.Sprintf("직접영향(%.1f) → 유사기업 → 간접영향", impact),
			})
		}
	} else {
		a.logger.Warn("path discovery failed", "kind", pathNewsSimilarity, "error", err)
	}

	if result, err := a.store.Query(ctx, policySolutionQuery, params); err == nil {
		for _, record := range result.Records {
			paths = append(paths, RiskPath{
				Kind:   pathPolicySolution,
				Length: 2,
				// Policy-to-product chains offset risk.
				Score: -0.3,
				Explanation: fmt.Sprintf("정책 '%s' → 솔루션 '%s'",
					recordText(record, "policyName"), recordText(record, "solution")),
				ImpactChain: "정책 지원 → 금융 솔루션 → 위험 완화",
			})
		}
	} else {
		a.logger.Warn("path discovery failed", "kind", pathPolicySolution, "error", err)
	}

	return PathAssessment{
		CompanyName:    companyName,
		Paths:          paths,
		CompositeScore: compositeRiskScore(paths),
		PrimaryFactors: primaryRiskFactors(paths),
		Solutions:      a.pathSolutions(ctx, companyName),
		Strategies:     mitigationStrategies(paths),
		Indicators:     monitoringIndicators(),
	}, nil
}

func scoreNewsMacroPath(record map[string]any) RiskPath {
	impact := recordFloat(record, "newsImpact")
	level := recordText(record, "exposureLevel")

	multiplier := 0.4
	switch level {
	case "HIGH":
		multiplier = 1.0
	case "MEDIUM":
		multiplier = 0.7
	}
	return RiskPath{
		Kind:   pathNewsMacroCompany,
		Length: 2,
		Score:  impact * multiplier,
		Explanation: fmt.Sprintf("뉴스 '%s' → %s → 기업 노출",
			recordText(record, "newsTitle"), recordText(record, "indicator")),
		ImpactChain: fmt.Sprintf("언론보도(%.1f) → 거시지표변동 → 기업영향(%s)", impact, level),
	}
}

// compositeRiskScore is the length-weighted mean of the path scores on
// a 0-100 scale. Shorter paths hit more directly and weigh more.
func compositeRiskScore(paths []RiskPath) float64 {
	if len(paths) == 0 {
		return 0
	}
	var weighted, weights float64
	for _, p := range paths {
		if p.Length <= 0 {
			continue
		}
		w := 1.0 / float64(p.Length)
		weighted += p.Score * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	score := weighted / weights * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func primaryRiskFactors(paths []RiskPath) []string {
	var factors []string
	for _, p := range paths {
		if p.Score > 0.5 {
			factors = append(factors, p.Explanation)
		}
		if len(factors) == 3 {
			break
		}
	}
	if len(factors) == 0 {
		factors = []string{"현재 식별된 고위험 요소 없음"}
	}
	return factors
}

func (a *PathAnalyzer) pathSolutions(ctx context.Context, companyName string) []PathSolution {
	result, err := a.store.Query(ctx, pathSolutionQuery, map[string]any{"companyName": companyName})
	if err != nil {
		a.logger.Warn("path solution lookup failed", "company", companyName, "error", err)
		return nil
	}
	solutions := make([]PathSolution, 0, len(result.Records))
	for _, record := range result.Records {
		targetRisk := recordText(record, "targetRisk")
		solutions = append(solutions, PathSolution{
			ProductName: recordText(record, "product"),
			ProductType: recordText(record, "type"),
			TargetRisk:  targetRisk,
			Reason:      targetRisk + " 위험 대응",
		})
	}
	return solutions
}

func mitigationStrategies(paths []RiskPath) []string {
	var chains []string
	for _, p := range paths {
		if p.Score > 0.3 {
			chains = append(chains, p.ImpactChain+" "+p.Explanation)
		}
	}
	contains := func(keyword string) bool {
		for _, chain := range chains {
			if strings.Contains(chain, keyword) {
				return true
			}
		}
		return false
	}

	var strategies []string
	if contains("금리") {
		strategies = append(strategies, "변동금리 대출 비중 축소 및 고정금리 전환 검토")
	}
	if contains("환율") {
		strategies = append(strategies, "환헤지 상품 활용으로 환율 변동 리스크 완화")
	}
	if contains("원자재") {
		strategies = append(strategies, "원자재 가격 안정화를 위한 장기 계약 체결")
	}
	if contains("유사기업") {
		strategies = append(strategies, "업종 특화 위험 모니터링 및 벤치마킹 강화")
	}
	if len(strategies) == 0 {
		strategies = append(strategies, "정기적인 재무 건전성 점검 및 위험 관리 체계 구축")
	}
	return strategies
}

func monitoringIndicators() []string {
	return []string{
		"한국은행 기준금리 변동 추이",
		"원/달러 환율 변동성",
		"업종별 제조업 BSI (기업경기실사지수)",
		"변동금리 대출 이자부담률",
		"수출 계약 환율 적용 현황",
	}
}

// RenderReport writes the Korean multi-hop analysis report.
func (p PathAssessment) RenderReport() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s 멀티홉 위험 분석 보고서\n\n", p.CompanyName)
	fmt.Fprintf(&sb, "## 종합 위험도: %.1f/100\n\n", p.CompositeScore)

	fmt.Fprintf(&sb, "## 주요 위험 경로 (%d개)\n", len(p.Paths))
	limit := len(p.Paths)
	if limit > 5 {
		limit = 5
	}
	for i, path := range p.Paths[:limit] {
		fmt.Fprintf(&sb, "\n### %d. %s\n", i+1, path.Explanation)
		fmt.Fprintf(&sb, "- **위험도**: %.2f\n", path.Score)
		fmt.Fprintf(&sb, "- **경로 길이**: %d단계\n", path.Length)
		fmt.Fprintf(&sb, "- **영향 체인**: %s\n", path.ImpactChain)
	}

	sb.WriteString("\n## 핵심 위험 요소\n")
	for i, factor := range p.PrimaryFactors {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, factor)
	}

	fmt.Fprintf(&sb, "\n## 추천 KB 솔루션 (%d개)\n", len(p.Solutions))
	for i, solution := range p.Solutions {
		fmt.Fprintf(&sb, "\n### %d. %s\n", i+1, solution.ProductName)
		fmt.Fprintf(&sb, "- **유형**: %s\n", solution.ProductType)
		fmt.Fprintf(&sb, "- **대응 위험**: %s\n", solution.TargetRisk)
		fmt.Fprintf(&sb, "- **추천 이유**: %s\n", solution.Reason)
	}

	sb.WriteString("\n## 위험 완화 전략\n")
	for i, strategy := range p.Strategies {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strategy)
	}

	sb.WriteString("\n## 모니터링 지표\n")
	for i, indicator := range p.Indicators {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, indicator)
	}

	return sb.String()
}

func recordText(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

func recordFloat(record map[string]any, key string) float64 {
	switch v := record[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
