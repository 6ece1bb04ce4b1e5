package company

import (
	"context"
	"log/slog"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const basicInfoQuery = `MATCH (u:UserCompany {companyName: $companyName})
RETURN u.companyName AS companyName,
       u.industryDescription AS industry,
       u.location AS location,
       u.revenue AS revenue,
       u.employeeCount AS employees,
       u.nodeId AS nodeId,
       u.createdAt AS createdAt`

const macroExposureQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_EXPOSED_TO]->(m:MacroIndicator)
RETURN m.indicatorName AS indicator,
       m.value AS value,
       r.exposureLevel AS level
ORDER BY
  CASE r.exposureLevel
    WHEN 'HIGH' THEN 3
    WHEN 'MEDIUM' THEN 2
    ELSE 1
  END DESC`

const eligibleProductsQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_ELIGIBLE_FOR]->(k:KB_Product)
RETURN k.productName AS product,
       k.productType AS type,
       r.eligibilityScore AS score
ORDER BY r.eligibilityScore DESC
LIMIT 10`

const eligiblePoliciesQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_ELIGIBLE_FOR]->(p:Policy)
RETURN p.policyName AS policy,
       p.supportField AS field,
       r.eligibilityScore AS score
ORDER BY r.eligibilityScore DESC
LIMIT 5`

const similarCompaniesQuery = `MATCH (u:UserCompany {companyName: $companyName})-[s:SIMILAR_TO]->(r:ReferenceCompany)
RETURN r.companyName AS similarCompany,
       r.sector AS sector,
       s.similarityScore AS similarity
ORDER BY s.similarityScore DESC
LIMIT 5`

const deleteCompanyQuery = `MATCH (u:UserCompany {companyName: $companyName})
DETACH DELETE u
RETURN count(*) AS deleted`

// Reporter runs the fixed per-company lookups that back the analysis
// summary. Unlike the free-form ask pipeline these queries are static,
// so a schema change surfaces here first.
type Reporter struct {
	store  graph.Client
	logger *slog.Logger
}

// NewReporter returns a Reporter over the given store.
func NewReporter(store graph.Client, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{store: store, logger: logger}
}

// Report gathers the standing analysis sections for a registered
// company. A company with no matching UserCompany node yields
// COMPANY_NOT_FOUND. Failures in individual sections are logged and
// leave that section empty.
func (r *Reporter) Report(ctx context.Context, companyName string) (AnalysisReport, error) {
	params := map[string]any{"companyName": companyName}

	basic, err := r.store.Query(ctx, basicInfoQuery, params)
	if err != nil {
		return AnalysisReport{}, types.WrapError(types.GRAPH_QUERY_FAILED,
			"basic info lookup failed", err)
	}
	if basic.Empty() {
		return AnalysisReport{}, types.NewError(types.COMPANY_NOT_FOUND,
			"company "+companyName+" is not registered")
	}

	report := AnalysisReport{
		CompanyName: companyName,
		BasicInfo:   basic.Records,
	}

	sections := []struct {
		name  string
		query string
		dest  *[]map[string]any
	}{
		{"macro_exposure", macroExposureQuery, &report.MacroExposure},
		{"kb_products", eligibleProductsQuery, &report.Products},
		{"policies", eligiblePoliciesQuery, &report.Policies},
		{"similar_companies", similarCompaniesQuery, &report.SimilarCompanies},
	}
	for _, section := range sections {
		result, err := r.store.Query(ctx, section.query, params)
		if err != nil {
			r.logger.Warn("analysis section failed",
				"company", companyName,
				"section", section.name,
				"error", err)
			continue
		}
		*section.dest = result.Records
	}

	return report, nil
}

// Delete removes a registered company and all of its relationships.
// It reports whether a node was actually deleted.
func (r *Reporter) Delete(ctx context.Context, companyName string) (bool, error) {
	result, err := r.store.Write(ctx, deleteCompanyQuery, map[string]any{
		"companyName": companyName,
	})
	if err != nil {
		return false, types.WrapError(types.GRAPH_QUERY_FAILED,
			"company deletion failed", err)
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	switch v := result.Records[0]["deleted"].(type) {
	case int64:
		return v > 0, nil
	case int:
		return v > 0, nil
	default:
		return false, nil
	}
}
