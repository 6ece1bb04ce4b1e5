package analysis

import "github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/pipeline"

// Section identifies one standing analysis question.
type Section string

const (
	SectionMacroExposure    Section = "macro_exposure"
	SectionProducts         Section = "kb_products"
	SectionPolicies         Section = "policies"
	SectionNewsImpacts      Section = "news_impacts"
	SectionSimilarCompanies Section = "similar_companies"
)

// Sections lists the standing questions in presentation order.
var Sections = []Section{
	SectionMacroExposure,
	SectionProducts,
	SectionPolicies,
	SectionNewsImpacts,
	SectionSimilarCompanies,
}

// KeyRisk is one identified risk with its grading and mitigation.
type KeyRisk struct {
	Type       string `json:"type"`
	Level      string `json:"level"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// RiskAssessment is the structured output of the risk evaluation.
type RiskAssessment struct {
	OverallRiskLevel  string    `json:"overall_risk_level"`
	RiskScore         float64   `json:"risk_score"`
	KeyRisks          []KeyRisk `json:"key_risks"`
	Opportunities     []string  `json:"opportunities"`
	AssessmentSummary string    `json:"assessment_summary"`
}

// Report is the full risk analysis for one company: the answers to the
// standing questions plus the structured assessment.
type Report struct {
	CompanyName string
	Answers     map[Section]pipeline.Answer
	Assessment  RiskAssessment
}
