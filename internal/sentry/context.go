package sentry

import (
	"context"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const registeredCompaniesQuery = `MATCH (u:UserCompany)
RETURN u.companyName AS companyName
ORDER BY u.companyName`

const companyProfileQuery = `MATCH (u:UserCompany {companyName: $companyName})
RETURN u.companyName AS companyName,
       u.industryDescription AS industry,
       u.location AS location,
       u.revenue AS revenue,
       u.employeeCount AS employees,
       u.variableRateDebt AS variableRateDebt,
       u.exportAmount AS exportAmount`

const companyExposuresQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_EXPOSED_TO]->(m:MacroIndicator)
RETURN m.indicatorName AS indicator,
       m.value AS currentValue,
       m.changeRate AS changeRate,
       r.exposureLevel AS exposureLevel,
       r.riskType AS riskType`

const companyProductsQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_ELIGIBLE_FOR]->(k:KB_Product)
RETURN k.productName AS productName,
       k.productType AS productType,
       k.interestRate AS interestRate,
       r.eligibilityScore AS eligibilityScore,
       r.urgency AS urgency,
       r.expectedBenefit AS expectedBenefit
ORDER BY r.eligibilityScore DESC
LIMIT 3`

const companyPoliciesQuery = `MATCH (u:UserCompany {companyName: $companyName})-[r:IS_ELIGIBLE_FOR]->(p:Policy)
RETURN p.policyName AS policyName,
       p.issuingOrg AS issuingOrg,
       p.supportField AS supportField,
       r.eligibilityScore AS eligibilityScore,
       r.actionRequired AS actionRequired
ORDER BY r.eligibilityScore DESC
LIMIT 2`

// companyContext is everything the assessment needs about one company.
type companyContext struct {
	CompanyName      string
	Industry         string
	Location         string
	Revenue          int64
	VariableRateDebt int64
	ExportAmount     int64
	Exposures        []map[string]any
	Products         []map[string]any
	Policies         []map[string]any
}

func (s *Sentry) listCompanies(ctx context.Context) ([]string, error) {
	result, err := s.store.Query(ctx, registeredCompaniesQuery, nil)
	if err != nil {
		return nil, types.WrapError(types.GRAPH_QUERY_FAILED,
			"registered company listing failed", err)
	}
	names := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		if name, ok := record["companyName"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Sentry) loadContext(ctx context.Context, companyName string) (companyContext, error) {
	params := map[string]any{"companyName": companyName}

	profile, err := s.store.Query(ctx, companyProfileQuery, params)
	if err != nil {
		return companyContext{}, types.WrapError(types.GRAPH_QUERY_FAILED,
			"company profile lookup failed", err)
	}
	if profile.Empty() {
		return companyContext{}, types.NewError(types.COMPANY_NOT_FOUND,
			"company "+companyName+" is not registered")
	}

	record := profile.Records[0]
	cc := companyContext{
		CompanyName:      companyName,
		Industry:         stringProp(record, "industry"),
		Location:         stringProp(record, "location"),
		Revenue:          intProp(record, "revenue"),
		VariableRateDebt: intProp(record, "variableRateDebt"),
		ExportAmount:     intProp(record, "exportAmount"),
	}

	if exposures, err := s.store.Query(ctx, companyExposuresQuery, params); err == nil {
		cc.Exposures = exposures.Records
	} else {
		s.logger.Warn("exposure lookup failed", "company", companyName, "error", err)
	}
	if products, err := s.store.Query(ctx, companyProductsQuery, params); err == nil {
		cc.Products = products.Records
	} else {
		s.logger.Warn("product lookup failed", "company", companyName, "error", err)
	}
	if policies, err := s.store.Query(ctx, companyPoliciesQuery, params); err == nil {
		cc.Policies = policies.Records
	} else {
		s.logger.Warn("policy lookup failed", "company", companyName, "error", err)
	}

	return cc, nil
}

func stringProp(record map[string]any, key string) string {
	v, _ := record[key].(string)
	return v
}

func intProp(record map[string]any, key string) int64 {
	switch v := record[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func floatProp(record map[string]any, key string) float64 {
	switch v := record[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
