package company

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm/providers"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const labelledRegistration = `회사명: 대한정밀
업종: 자동차부품 제조
위치: 경기도 안산시
매출: 150
직원: 45
부채: 80
변동금리: 80%
수출비중: 40%`

func TestExtract_LabelledText(t *testing.T) {
	extractor := NewExtractor(nil, "")

	profile, err := extractor.Extract(context.Background(), labelledRegistration)
	require.NoError(t, err)

	assert.Equal(t, "대한정밀", profile.CompanyName)
	assert.Equal(t, "자동차부품 제조", profile.Industry)
	assert.Equal(t, "경기도 안산시", profile.Location)
	assert.Equal(t, 150, profile.Revenue)
	assert.Equal(t, 45, profile.Employees)
	assert.Equal(t, 80, profile.Debt)
	assert.Equal(t, 80, profile.VariableDebtRatio)
	assert.Equal(t, 40, profile.ExportRatio)
}

func TestExtract_RatioDefaults(t *testing.T) {
	extractor := NewExtractor(nil, "")

	profile, err := extractor.Extract(context.Background(), "회사명: 한국금속, 매출: 100")
	require.NoError(t, err)

	assert.Equal(t, 70, profile.VariableDebtRatio)
	assert.Equal(t, 20, profile.ExportRatio)
}

func TestExtract_ModelFallbackForFreeFormText(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		`{"company_name": "한국금속", "industry": "금속가공", "location": "부산", "revenue": 90, "employees": 30, "debt": 40, "variable_debt_ratio": 60, "export_ratio": 35}`,
	})
	extractor := NewExtractor(provider, "gemini-2.0-flash")

	profile, err := extractor.Extract(context.Background(),
		"부산에서 금속가공을 하는 한국금속입니다. 연매출은 90억 정도이고 직원은 30명입니다.")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.CallCount())
	assert.Equal(t, "한국금속", profile.CompanyName)
	assert.Equal(t, "금속가공", profile.Industry)
	assert.Equal(t, 60, profile.VariableDebtRatio)
	assert.Equal(t, 35, profile.ExportRatio)
}

func TestExtract_ModelFallbackAppliesRatioDefaults(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		`{"company_name": "부산화학", "industry": "화학", "revenue": 200}`,
	})
	extractor := NewExtractor(provider, "gemini-2.0-flash")

	profile, err := extractor.Extract(context.Background(), "부산화학이라는 회사를 등록해주세요")
	require.NoError(t, err)

	assert.Equal(t, 70, profile.VariableDebtRatio)
	assert.Equal(t, 20, profile.ExportRatio)
}

func TestExtract_NoCompanyNameFails(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		`{"company_name": "", "industry": "제조"}`,
	})
	extractor := NewExtractor(provider, "gemini-2.0-flash")

	_, err := extractor.Extract(context.Background(), "그냥 아무 회사나 등록해줘")
	require.Error(t, err)

	var ferr *types.FortressError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, types.COMPANY_EXTRACTION_FAILED, ferr.Code)
}

func TestExtract_NoProviderAndNoLabelFails(t *testing.T) {
	extractor := NewExtractor(nil, "")

	_, err := extractor.Extract(context.Background(), "아무 정보 없는 문장")
	require.Error(t, err)

	var ferr *types.FortressError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, types.COMPANY_EXTRACTION_FAILED, ferr.Code)
}

func TestProfile_DerivedAmounts(t *testing.T) {
	profile := Profile{Revenue: 150, Debt: 80, VariableDebtRatio: 70, ExportRatio: 30}

	assert.Equal(t, 56, profile.VariableRateDebt())
	assert.Equal(t, 45, profile.ExportAmount())
}
