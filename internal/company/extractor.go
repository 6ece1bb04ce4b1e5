package company

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const (
	defaultVariableDebtRatio = 70
	defaultExportRatio       = 20
)

// Registration texts follow a loose "label: value" convention in
// Korean. Pattern-based extraction covers the common labels; the LLM
// fallback handles free-form phrasing.
var (
	companyNamePattern = regexp.MustCompile(`(?:회사명|기업명|제조기업명)[:\s]*([^\n,]+)`)
	industryPattern    = regexp.MustCompile(`(?:업종|제조분야|제조업분야)[:\s]*([^\n,]+)`)
	locationPattern    = regexp.MustCompile(`(?:위치|소재지|생산기지)[:\s]*([^\n,]+)`)
	revenuePattern     = regexp.MustCompile(`(?:매출|연매출)[:\s]*(\d+)`)
	employeesPattern   = regexp.MustCompile(`(?:직원|직원수)[:\s]*(\d+)`)
	debtPattern        = regexp.MustCompile(`(?:부채|총부채)[:\s]*(\d+)`)
	variablePattern    = regexp.MustCompile(`변동금리[:\s]*(\d+)%`)
	exportPattern      = regexp.MustCompile(`수출[비중]*[:\s]*(\d+)%`)
)

const extractSystemPrompt = `You extract structured company information from Korean registration text.
Respond with a single JSON object and nothing else, using this shape:
{"company_name": "", "industry": "", "location": "", "revenue": 0, "employees": 0, "debt": 0, "variable_debt_ratio": 70, "export_ratio": 20}
Amounts are in 억원. Ratios are percentages. Use 0 or the stated defaults for fields the text does not mention.`

// Extractor turns free-text company descriptions into a Profile.
// Labelled fields are read directly; when the text carries no
// recognizable company name the model is asked to extract the profile
// instead.
type Extractor struct {
	provider llm.Provider
	model    string
}

// NewExtractor returns an Extractor backed by the given provider. The
// provider may be nil, in which case only pattern extraction is used.
func NewExtractor(provider llm.Provider, model string) *Extractor {
	return &Extractor{provider: provider, model: model}
}

// Extract parses the registration text into a Profile.
func (e *Extractor) Extract(ctx context.Context, text string) (Profile, error) {
	profile := extractByPattern(text)
	if profile.CompanyName != "" {
		return profile, nil
	}

	if e.provider == nil {
		return Profile{}, types.NewError(types.COMPANY_EXTRACTION_FAILED,
			"could not find a company name in the registration text")
	}

	extracted, err := e.extractByModel(ctx, text)
	if err != nil {
		return Profile{}, err
	}
	if strings.TrimSpace(extracted.CompanyName) == "" {
		return Profile{}, types.NewError(types.COMPANY_EXTRACTION_FAILED,
			"could not find a company name in the registration text")
	}
	applyRatioDefaults(&extracted)
	return extracted, nil
}

func (e *Extractor) extractByModel(ctx context.Context, text string) (Profile, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(extractSystemPrompt),
			llm.NewUserMessage(text),
		},
		Temperature: 0.0,
	})
	if err != nil {
		return Profile{}, types.WrapError(types.COMPANY_EXTRACTION_FAILED,
			"company extraction failed", err)
	}

	profile, err := llm.ExtractJSONAs[Profile](resp.Message.Content)
	if err != nil {
		return Profile{}, types.WrapError(types.COMPANY_EXTRACTION_FAILED,
			"company extraction returned malformed JSON", err)
	}
	return profile, nil
}

func extractByPattern(text string) Profile {
	profile := Profile{
		CompanyName: firstGroup(companyNamePattern, text),
		Industry:    firstGroup(industryPattern, text),
		Location:    firstGroup(locationPattern, text),
		Revenue:     firstInt(revenuePattern, text),
		Employees:   firstInt(employeesPattern, text),
		Debt:        firstInt(debtPattern, text),
	}
	profile.VariableDebtRatio = defaultVariableDebtRatio
	profile.ExportRatio = defaultExportRatio
	if v := firstInt(variablePattern, text); v > 0 {
		profile.VariableDebtRatio = v
	}
	if v := firstInt(exportPattern, text); v > 0 {
		profile.ExportRatio = v
	}
	return profile
}

func applyRatioDefaults(p *Profile) {
	if p.VariableDebtRatio <= 0 {
		p.VariableDebtRatio = defaultVariableDebtRatio
	}
	if p.ExportRatio <= 0 {
		p.ExportRatio = defaultExportRatio
	}
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func firstInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
