package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/pipeline"
)

const exposureLevelsQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_EXPOSED_TO]->(:MacroIndicator)
RETURN r.exposureLevel AS level`

// Analyzer runs the standing risk analysis for a registered company:
// each section is a natural-language question answered through the
// query pipeline, followed by a structured assessment.
type Analyzer struct {
	pipe       *pipeline.Pipeline
	store      graph.Client
	provider   llm.Provider
	model      string
	thresholds config.AnalysisConfig
	logger     *slog.Logger
}

// NewAnalyzer returns an Analyzer. The provider is used for the
// structured assessment; section answers go through the pipeline.
func NewAnalyzer(pipe *pipeline.Pipeline, store graph.Client, provider llm.Provider, model string, thresholds config.AnalysisConfig, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		pipe:       pipe,
		store:      store,
		provider:   provider,
		model:      model,
		thresholds: thresholds,
		logger:     logger,
	}
}

// sectionQuestions builds the five standing questions for a company.
func sectionQuestions(companyName string) map[Section]string {
	return map[Section]string{
		SectionMacroExposure:    fmt.Sprintf("%s이 노출된 거시경제지표와 노출 수준을 분석해주세요. 환율, 금리 등에 대한 노출도와 그 이유를 포함해주세요.", companyName),
		SectionProducts:         fmt.Sprintf("%s에게 적합한 KB 금융상품을 추천해주세요. 각 상품의 적합도 점수와 기대효과를 포함해주세요.", companyName),
		SectionPolicies:         fmt.Sprintf("%s이 활용할 수 있는 정부 정책이나 지원사업을 찾아주세요. 정책명, 지원분야, 발행기관을 포함해주세요.", companyName),
		SectionNewsImpacts:      fmt.Sprintf("%s에 영향을 미치는 최근 뉴스를 분석해주세요. 뉴스 제목, 날짜, 영향도와 그 이유를 포함해주세요.", companyName),
		SectionSimilarCompanies: fmt.Sprintf("%s과 유사한 기업들을 찾아주세요. 비교 기준과 유사도를 포함해주세요.", companyName),
	}
}

// Analyze answers each standing question through the pipeline and
// produces the structured risk assessment. Section failures degrade to
// the pipeline's own fallback answers; Analyze itself fails only when
// the company's graph context cannot be read at all.
func (a *Analyzer) Analyze(ctx context.Context, profile company.Profile) (Report, error) {
	report := Report{
		CompanyName: profile.CompanyName,
		Answers:     make(map[Section]pipeline.Answer, len(Sections)),
	}

	questions := sectionQuestions(profile.CompanyName)
	for _, section := range Sections {
		answer := a.pipe.Run(ctx, pipeline.Request{
			Text:    questions[section],
			Company: profile.CompanyName,
		})
		a.logger.Info("analysis section answered",
			"company", profile.CompanyName,
			"section", string(section),
			"succeeded", answer.Succeeded,
			"attempts", answer.AttemptsUsed)
		report.Answers[section] = answer
	}

	highExposures, err := a.countHighExposures(ctx, profile.CompanyName)
	if err != nil {
		a.logger.Warn("exposure lookup failed, grading on profile only",
			"company", profile.CompanyName, "error", err)
	}

	level, score := gradeRisk(profile, highExposures, a.thresholds)
	report.Assessment = a.assess(ctx, profile, highExposures, level, score)
	return report, nil
}

func (a *Analyzer) countHighExposures(ctx context.Context, companyName string) (int, error) {
	result, err := a.store.Query(ctx, exposureLevelsQuery, map[string]any{
		"companyName": companyName,
	})
	if err != nil {
		return 0, err
	}
	high := 0
	for _, record := range result.Records {
		if level, ok := record["level"].(string); ok && level == "HIGH" {
			high++
		}
	}
	return high, nil
}

// gradeRisk scores the deterministic risk factors. The model-written
// assessment may refine the grading but never replaces it wholesale;
// missing fields fall back to these values.
func gradeRisk(profile company.Profile, highExposures int, thresholds config.AnalysisConfig) (string, float64) {
	variableRatio := float64(profile.VariableDebtRatio) / 100
	exportRatio := float64(profile.ExportRatio) / 100

	factors := highExposures
	switch {
	case variableRatio >= thresholds.VariableRateHighRatio:
		factors += 2
	case variableRatio >= 0.5:
		factors++
	}
	switch {
	case exportRatio >= thresholds.ExportHighRatio:
		factors += 2
	case exportRatio >= 0.3:
		factors++
	}

	switch {
	case factors >= 4:
		return "HIGH", 0.75
	case factors >= 2:
		return "MEDIUM", 0.5
	default:
		return "LOW", 0.25
	}
}
