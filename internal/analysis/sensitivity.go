package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// ReferenceMetrics are the per-company financial metrics of a listed
// reference company, used to derive sector-level sensitivity patterns.
type ReferenceMetrics struct {
	CompanyName           string  `json:"company_name"`
	Sector                string  `json:"sector"`
	DebtRatio             float64 `json:"debt_ratio"`
	ExportRatioPct        float64 `json:"export_ratio_pct"`
	VariableRateExposure  float64 `json:"variable_rate_exposure"`
	ForexSensitivityScore float64 `json:"forex_sensitivity_score"`
	RawMaterialDependency float64 `json:"raw_material_dependency"`
}

type referenceDataset struct {
	TotalCompanies int                `json:"total_companies"`
	Companies      []ReferenceMetrics `json:"companies"`
}

// SensitivityCoefficient grades a sector's reaction to one macro
// factor. Coefficient is in [-1, 1]; negative values mean the factor
// moving up hurts the sector.
type SensitivityCoefficient struct {
	Factor      string  `json:"factor"`
	Coefficient float64 `json:"coefficient"`
	Confidence  float64 `json:"confidence"`
	Rationale   string  `json:"rationale"`
}

// SectorPattern aggregates the reference companies of one sector.
type SectorPattern struct {
	SectorName              string
	TotalCompanies          int
	AvgDebtRatio            float64
	AvgExportRatio          float64
	AvgVariableRateExposure float64
	Coefficients            []SensitivityCoefficient
	KeyRisks                []string
}

// PersonalizedCoefficient is a sector coefficient adjusted to one
// user company's characteristics.
type PersonalizedCoefficient struct {
	Base              float64  `json:"base_coefficient"`
	Personalized      float64  `json:"personalized_coefficient"`
	Confidence        float64  `json:"confidence"`
	AdjustmentReasons []string `json:"adjustment_reasons"`
	Rationale         string   `json:"rationale"`
}

// ImpactEstimate is a concrete won-denominated scenario impact.
type ImpactEstimate struct {
	Monthly     int64  `json:"monthly"`
	Annual      int64  `json:"annual"`
	Description string `json:"description"`
}

// UserSensitivity is the personalized sensitivity result for one
// registered company.
type UserSensitivity struct {
	MatchedSector   string
	Pattern         SectorPattern
	Coefficients    map[string]PersonalizedCoefficient
	OverallRisk     float64
	Impacts         map[string]ImpactEstimate
	Recommendations []string
}

const (
	factorInterestRate = "interest_rate"
	factorExchangeRate = "exchange_rate"
	factorRawMaterial  = "raw_material_price"
)

// SensitivityAnalyzer derives sector sensitivity patterns from
// reference company metrics and personalizes them per user company.
type SensitivityAnalyzer struct {
	patterns map[string]SectorPattern
}

// LoadReferenceMetrics reads a reference company dataset from a JSON
// file.
func LoadReferenceMetrics(path string) ([]ReferenceMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
			"reference dataset unreadable", err)
	}
	var dataset referenceDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
			"reference dataset malformed", err)
	}
	return dataset.Companies, nil
}

// NewSensitivityAnalyzer builds sector patterns from the given
// reference metrics.
func NewSensitivityAnalyzer(metrics []ReferenceMetrics) *SensitivityAnalyzer {
	groups := make(map[string][]ReferenceMetrics)
	for _, m := range metrics {
		sector := m.Sector
		if sector == "" {
			sector = "unknown"
		}
		groups[sector] = append(groups[sector], m)
	}

	patterns := make(map[string]SectorPattern, len(groups))
	for sector, companies := range groups {
		patterns[sector] = analyzeSector(sector, companies)
	}
	return &SensitivityAnalyzer{patterns: patterns}
}

// Patterns returns the derived sector patterns.
func (s *SensitivityAnalyzer) Patterns() map[string]SectorPattern {
	return s.patterns
}

// ForCompany personalizes the matched sector's sensitivity to the
// given company profile.
func (s *SensitivityAnalyzer) ForCompany(profile company.Profile) (UserSensitivity, error) {
	sector := matchSector(profile.Industry)
	pattern, ok := s.patterns[sector]
	if !ok {
		return UserSensitivity{}, types.NewError(types.COMPANY_NOT_FOUND,
			"no sector pattern matches industry "+profile.Industry)
	}

	exportRatio := float64(profile.ExportRatio) / 100
	revenueWon := float64(profile.Revenue) * 1e8
	variableDebtWon := float64(profile.VariableRateDebt()) * 1e8

	coefficients := make(map[string]PersonalizedCoefficient, len(pattern.Coefficients))
	for _, coeff := range pattern.Coefficients {
		coefficients[coeff.Factor] = personalize(coeff, pattern, exportRatio, revenueWon, variableDebtWon)
	}

	result := UserSensitivity{
		MatchedSector:   sector,
		Pattern:         pattern,
		Coefficients:    coefficients,
		OverallRisk:     overallRisk(coefficients),
		Impacts:         estimateImpacts(coefficients, exportRatio, revenueWon, variableDebtWon),
		Recommendations: recommendations(overallRisk(coefficients), coefficients),
	}
	return result, nil
}

// matchSector maps free-text industry descriptions onto the sectors
// the reference dataset covers.
func matchSector(industry string) string {
	lower := strings.ToLower(industry)
	switch {
	case strings.Contains(lower, "자동차"), strings.Contains(lower, "부품"), strings.Contains(lower, "automotive"):
		return "automotive_parts"
	case strings.Contains(lower, "철강"), strings.Contains(lower, "강"), strings.Contains(lower, "steel"):
		return "steel"
	case strings.Contains(lower, "화학"), strings.Contains(lower, "chemical"):
		return "chemicals"
	default:
		return ""
	}
}

func analyzeSector(sector string, companies []ReferenceMetrics) SectorPattern {
	var debtRatios, exportRatios, variableRates []float64
	for _, c := range companies {
		debtRatios = append(debtRatios, c.DebtRatio)
		exportRatios = append(exportRatios, c.ExportRatioPct)
		variableRates = append(variableRates, c.VariableRateExposure)
	}

	pattern := SectorPattern{
		SectorName:              sector,
		TotalCompanies:          len(companies),
		AvgDebtRatio:            mean(debtRatios),
		AvgExportRatio:          mean(exportRatios),
		AvgVariableRateExposure: mean(variableRates),
	}
	pattern.Coefficients = []SensitivityCoefficient{
		interestSensitivity(companies),
		forexSensitivity(companies),
		materialSensitivity(companies),
	}
	pattern.KeyRisks = keyRisks(sector, pattern)
	return pattern
}

// interestSensitivity weights variable-rate exposure by debt ratio.
func interestSensitivity(companies []ReferenceMetrics) SensitivityCoefficient {
	var weighted, variableRates, debtRatios []float64
	for _, c := range companies {
		weighted = append(weighted, c.VariableRateExposure*c.DebtRatio)
		variableRates = append(variableRates, c.VariableRateExposure)
		debtRatios = append(debtRatios, c.DebtRatio)
	}
	return SensitivityCoefficient{
		Factor:      factorInterestRate,
		Coefficient: math.Min(mean(weighted)*2, 1.0),
		Confidence:  clampConfidence(weighted),
		Rationale: fmt.Sprintf("변동금리 평균 노출도 %.1f%%, 부채비율 평균 %.1f%%",
			mean(variableRates)*100, mean(debtRatios)*100),
	}
}

// forexSensitivity blends export share with the forex score. Positive
// values mean a rising won/dollar rate helps the sector.
func forexSensitivity(companies []ReferenceMetrics) SensitivityCoefficient {
	var weighted, exportRatios, forexScores []float64
	for _, c := range companies {
		exportRatio := c.ExportRatioPct / 100
		weighted = append(weighted, exportRatio*0.7+c.ForexSensitivityScore*0.3)
		exportRatios = append(exportRatios, exportRatio)
		forexScores = append(forexScores, c.ForexSensitivityScore)
	}
	return SensitivityCoefficient{
		Factor:      factorExchangeRate,
		Coefficient: mean(weighted),
		Confidence:  clampConfidence(weighted),
		Rationale: fmt.Sprintf("수출비중 평균 %.1f%%, 환율 민감도 평균 %.2f",
			mean(exportRatios)*100, mean(forexScores)),
	}
}

// materialSensitivity is negative: raw-material dependency raises
// costs as prices rise.
func materialSensitivity(companies []ReferenceMetrics) SensitivityCoefficient {
	var deps []float64
	for _, c := range companies {
		deps = append(deps, c.RawMaterialDependency)
	}
	return SensitivityCoefficient{
		Factor:      factorRawMaterial,
		Coefficient: -mean(deps),
		Confidence:  clampConfidence(deps),
		Rationale:   fmt.Sprintf("원자재 의존도 평균 %.1f%%", mean(deps)*100),
	}
}

func keyRisks(sector string, pattern SectorPattern) []string {
	var risks []string
	if pattern.AvgVariableRateExposure > 0.65 {
		risks = append(risks, fmt.Sprintf("금리 상승 리스크 (변동금리 노출 %.1f%%)", pattern.AvgVariableRateExposure*100))
	}
	if pattern.AvgExportRatio > 30 {
		risks = append(risks, fmt.Sprintf("환율 변동 리스크 (수출비중 %.0f%%)", pattern.AvgExportRatio))
	}
	if pattern.AvgDebtRatio > 0.5 {
		risks = append(risks, fmt.Sprintf("부채 부담 리스크 (부채비율 %.1f%%)", pattern.AvgDebtRatio*100))
	}
	switch sector {
	case "automotive_parts":
		risks = append(risks, "완성차 업체 의존도 리스크")
	case "steel":
		risks = append(risks, "원자재(철광석) 가격 변동 리스크")
	case "chemicals":
		risks = append(risks, "나프타 등 유가 연동 리스크")
	}
	return risks
}

func personalize(base SensitivityCoefficient, pattern SectorPattern, exportRatio, revenueWon, variableDebtWon float64) PersonalizedCoefficient {
	personal := PersonalizedCoefficient{
		Base:         base.Coefficient,
		Personalized: base.Coefficient,
		Confidence:   base.Confidence,
		Rationale:    base.Rationale,
	}

	switch base.Factor {
	case factorInterestRate:
		if variableDebtWon > 0 && revenueWon > 0 {
			debtToRevenue := variableDebtWon / revenueWon
			if debtToRevenue > pattern.AvgVariableRateExposure*0.1 {
				personal.Personalized = math.Min(personal.Personalized+0.2, 1.0)
				personal.AdjustmentReasons = append(personal.AdjustmentReasons,
					"변동금리 대출 보유로 업종 평균 대비 +20.0% 상향")
			}
		}
	case factorExchangeRate:
		sectorAvgExport := pattern.AvgExportRatio / 100
		if exportRatio > sectorAvgExport*1.2 {
			personal.Personalized = math.Min(personal.Personalized+0.15, 1.0)
			personal.AdjustmentReasons = append(personal.AdjustmentReasons,
				fmt.Sprintf("수출비중 %.1f%%로 업종 평균 대비 높음", exportRatio*100))
		}
	}
	return personal
}

func overallRisk(coefficients map[string]PersonalizedCoefficient) float64 {
	var scores []float64
	for _, c := range coefficients {
		scores = append(scores, math.Abs(c.Personalized)*c.Confidence)
	}
	return math.Min(mean(scores), 1.0)
}

func estimateImpacts(coefficients map[string]PersonalizedCoefficient, exportRatio, revenueWon, variableDebtWon float64) map[string]ImpactEstimate {
	impacts := make(map[string]ImpactEstimate)

	if _, ok := coefficients[factorInterestRate]; ok && variableDebtWon > 0 {
		annual := variableDebtWon * 0.005
		monthly := annual / 12
		impacts["interest_rate_0.5pp_increase"] = ImpactEstimate{
			Monthly:     int64(monthly),
			Annual:      int64(annual),
			Description: fmt.Sprintf("금리 0.5%%p 상승 시 월 %.0f만원 추가 부담", monthly/10000),
		}
	}

	if _, ok := coefficients[factorExchangeRate]; ok && exportRatio > 0 {
		annual := revenueWon * exportRatio * 0.03
		monthly := annual / 12
		impacts["usd_krw_10won_increase"] = ImpactEstimate{
			Monthly:     int64(monthly),
			Annual:      int64(annual),
			Description: fmt.Sprintf("원/달러 10원 상승 시 월 %.0f만원 수익 증가", monthly/10000),
		}
	}

	return impacts
}

func recommendations(risk float64, coefficients map[string]PersonalizedCoefficient) []string {
	var recs []string
	if risk > 0.7 {
		recs = append(recs, "종합 리스크가 높음 - 금융 리스크 관리 전략 수립 필요")
	}
	if c, ok := coefficients[factorInterestRate]; ok && c.Personalized > 0.6 {
		recs = append(recs,
			"변동금리 대출의 고정금리 전환 검토 권장",
			"KB 중소기업 고정금리 전환대출 상품 확인")
	}
	if c, ok := coefficients[factorExchangeRate]; ok && c.Personalized > 0.4 {
		recs = append(recs,
			"환율 상승 수혜 예상 - 수출 확대 전략 검토",
			"KB 수출금융 상품으로 운전자금 지원 활용")
	}
	return recs
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// clampConfidence converts value dispersion into a confidence in
// [0.5, 1.0]; tight clusters score higher.
func clampConfidence(values []float64) float64 {
	confidence := 1.0 - stddev(values)/(math.Abs(mean(values))+0.001)
	return math.Max(0.5, math.Min(confidence, 1.0))
}
