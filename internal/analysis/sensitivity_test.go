package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

func referenceFixture() []ReferenceMetrics {
	return []ReferenceMetrics{
		{
			CompanyName:           "서울정공",
			Sector:                "automotive_parts",
			DebtRatio:             0.6,
			ExportRatioPct:        40,
			VariableRateExposure:  0.7,
			ForexSensitivityScore: 0.5,
			RawMaterialDependency: 0.4,
		},
		{
			CompanyName:           "부산오토텍",
			Sector:                "automotive_parts",
			DebtRatio:             0.5,
			ExportRatioPct:        35,
			VariableRateExposure:  0.75,
			ForexSensitivityScore: 0.4,
			RawMaterialDependency: 0.5,
		},
		{
			CompanyName:           "한국제강",
			Sector:                "steel",
			DebtRatio:             0.4,
			ExportRatioPct:        20,
			VariableRateExposure:  0.5,
			ForexSensitivityScore: 0.3,
			RawMaterialDependency: 0.8,
		},
	}
}

func TestSensitivityAnalyzer_SectorPatterns(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(referenceFixture())
	patterns := analyzer.Patterns()

	require.Contains(t, patterns, "automotive_parts")
	require.Contains(t, patterns, "steel")

	auto := patterns["automotive_parts"]
	assert.Equal(t, 2, auto.TotalCompanies)
	assert.InDelta(t, 0.55, auto.AvgDebtRatio, 1e-9)
	assert.InDelta(t, 37.5, auto.AvgExportRatio, 1e-9)

	require.Len(t, auto.Coefficients, 3)
	byFactor := make(map[string]SensitivityCoefficient)
	for _, c := range auto.Coefficients {
		byFactor[c.Factor] = c
	}

	assert.Positive(t, byFactor[factorInterestRate].Coefficient)
	assert.LessOrEqual(t, byFactor[factorInterestRate].Coefficient, 1.0)
	assert.Negative(t, byFactor[factorRawMaterial].Coefficient)
	for _, c := range byFactor {
		assert.GreaterOrEqual(t, c.Confidence, 0.5)
		assert.LessOrEqual(t, c.Confidence, 1.0)
	}
}

func TestSensitivityAnalyzer_SectorKeyRisks(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(referenceFixture())

	auto := analyzer.Patterns()["automotive_parts"]
	assert.Contains(t, auto.KeyRisks, "완성차 업체 의존도 리스크")

	steel := analyzer.Patterns()["steel"]
	assert.Contains(t, steel.KeyRisks, "원자재(철광석) 가격 변동 리스크")
}

func TestMatchSector(t *testing.T) {
	assert.Equal(t, "automotive_parts", matchSector("자동차부품 제조"))
	assert.Equal(t, "steel", matchSector("철강 가공"))
	assert.Equal(t, "chemicals", matchSector("정밀화학"))
	assert.Equal(t, "", matchSector("식품 제조"))
}

func TestForCompany_PersonalizesCoefficients(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(referenceFixture())

	profile := company.Profile{
		CompanyName:       "대한정밀",
		Industry:          "자동차부품 제조",
		Revenue:           100,
		Debt:              80,
		VariableDebtRatio: 70,
		ExportRatio:       60,
	}

	result, err := analyzer.ForCompany(profile)
	require.NoError(t, err)

	assert.Equal(t, "automotive_parts", result.MatchedSector)

	interest := result.Coefficients[factorInterestRate]
	assert.Greater(t, interest.Personalized, interest.Base)
	assert.NotEmpty(t, interest.AdjustmentReasons)

	// Export share well above sector average lifts forex sensitivity.
	forex := result.Coefficients[factorExchangeRate]
	assert.Greater(t, forex.Personalized, forex.Base)

	assert.Greater(t, result.OverallRisk, 0.0)
	assert.LessOrEqual(t, result.OverallRisk, 1.0)
	assert.Contains(t, result.Impacts, "interest_rate_0.5pp_increase")
	assert.Contains(t, result.Impacts, "usd_krw_10won_increase")
}

func TestForCompany_UnknownIndustry(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(referenceFixture())

	_, err := analyzer.ForCompany(company.Profile{
		CompanyName: "서울식품",
		Industry:    "식품 제조",
	})
	require.Error(t, err)

	var ferr *types.FortressError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, types.COMPANY_NOT_FOUND, ferr.Code)
}

func TestLoadReferenceMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company_data.json")
	payload := `{
  "total_companies": 1,
  "companies": [
    {"company_name": "서울정공", "sector": "automotive_parts", "debt_ratio": 0.6,
     "export_ratio_pct": 40, "variable_rate_exposure": 0.7,
     "forex_sensitivity_score": 0.5, "raw_material_dependency": 0.4}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	metrics, err := LoadReferenceMetrics(path)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "서울정공", metrics[0].CompanyName)

	_, err = LoadReferenceMetrics(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
