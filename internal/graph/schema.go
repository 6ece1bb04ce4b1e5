package graph

import "context"

// Node labels in the knowledge graph.
const (
	LabelUserCompany      = "UserCompany"
	LabelReferenceCompany = "ReferenceCompany"
	LabelKBProduct        = "KB_Product"
	LabelPolicy           = "Policy"
	LabelMacroIndicator   = "MacroIndicator"
	LabelNewsArticle      = "NewsArticle"
)

// Relationship types in the knowledge graph.
const (
	RelIsExposedTo   = "IS_EXPOSED_TO"
	RelIsEligibleFor = "IS_ELIGIBLE_FOR"
	RelSimilarTo     = "SIMILAR_TO"
	RelHasImpactOn   = "HAS_IMPACT_ON"
	RelCompetesWith  = "COMPETES_WITH"
)

// SchemaDescription is the graph schema summary handed to the query
// generation and correction prompts. Property names must stay in sync
// with what the ingest and registration paths actually write.
const SchemaDescription = `Node Labels:
UserCompany {nodeId: STRING, companyName: STRING, industryDescription: STRING, location: STRING, revenue: INTEGER, employeeCount: INTEGER, debtAmount: INTEGER, variableRateDebt: INTEGER, exportAmount: INTEGER, createdAt: DATETIME}
ReferenceCompany {companyName: STRING, sector: STRING, revenue: INTEGER, industryCode: STRING, location: STRING}
KB_Product {productName: STRING, productType: STRING, interestRate: STRING, description: STRING}
Policy {policyName: STRING, issuingOrg: STRING, supportField: STRING, eligibilityText: STRING}
MacroIndicator {indicatorName: STRING, value: FLOAT, changeRate: FLOAT, unit: STRING, lastUpdated: DATETIME}
NewsArticle {title: STRING, publisher: STRING, publishDate: DATETIME, category: STRING, content: STRING}

Relationship Types:
IS_EXPOSED_TO {exposureLevel: STRING, rationale: STRING, riskType: STRING}
IS_ELIGIBLE_FOR {eligibilityScore: FLOAT, urgency: STRING, expectedBenefit: STRING, actionRequired: STRING}
SIMILAR_TO {similarityScore: FLOAT, comparisonBasis: STRING}
HAS_IMPACT_ON {impactScore: FLOAT, impactDirection: STRING, rationale: STRING}
COMPETES_WITH {competitionLevel: STRING, marketOverlap: FLOAT}

Common Patterns:
(:UserCompany)-[:IS_EXPOSED_TO]->(:MacroIndicator)
(:UserCompany)-[:IS_ELIGIBLE_FOR]->(:KB_Product)
(:UserCompany)-[:IS_ELIGIBLE_FOR]->(:Policy)
(:UserCompany)-[:SIMILAR_TO]->(:ReferenceCompany)
(:NewsArticle)-[:HAS_IMPACT_ON]->(:UserCompany)`

// FewShotExamples pairs sample questions with known-good queries for
// the generation prompt.
var FewShotExamples = []string{
	`USER: '대한정밀의 리스크 노출도를 알려주세요' CYPHER: MATCH (u:UserCompany {companyName: '대한정밀'})-[r:IS_EXPOSED_TO]->(m:MacroIndicator) RETURN m.indicatorName, r.exposureLevel, m.value ORDER BY r.exposureLevel DESC`,
	`USER: '대한정밀에게 적합한 KB 상품을 추천해주세요' CYPHER: MATCH (u:UserCompany {companyName: '대한정밀'})-[r:IS_ELIGIBLE_FOR]->(k:KB_Product) RETURN k.productName, k.productType, r.eligibilityScore ORDER BY r.eligibilityScore DESC LIMIT 10`,
	`USER: '자동차부품업계에서 기준금리에 노출된 기업들을 찾아주세요' CYPHER: MATCH (u:UserCompany)-[r:IS_EXPOSED_TO]->(m:MacroIndicator {indicatorName: '기준금리'}) WHERE u.industryDescription CONTAINS '자동차' AND r.exposureLevel = 'HIGH' RETURN u.companyName, u.revenue, r.exposureLevel`,
	`USER: '대한정밀과 유사한 기업들이 사용한 금융솔루션을 보여주세요' CYPHER: MATCH (u:UserCompany {companyName: '대한정밀'})-[:SIMILAR_TO]->(r:ReferenceCompany)-[:IS_ELIGIBLE_FOR]->(k:KB_Product) RETURN r.companyName, k.productName, k.productType LIMIT 5`,
}

// schemaConstraints are applied once at startup; IF NOT EXISTS makes
// them idempotent.
var schemaConstraints = []string{
	"CREATE CONSTRAINT user_company_id IF NOT EXISTS FOR (u:UserCompany) REQUIRE u.nodeId IS UNIQUE",
	"CREATE CONSTRAINT reference_company_id IF NOT EXISTS FOR (c:ReferenceCompany) REQUIRE c.nodeId IS UNIQUE",
	"CREATE CONSTRAINT policy_id IF NOT EXISTS FOR (p:Policy) REQUIRE p.nodeId IS UNIQUE",
	"CREATE CONSTRAINT indicator_id IF NOT EXISTS FOR (m:MacroIndicator) REQUIRE m.nodeId IS UNIQUE",
	"CREATE CONSTRAINT news_id IF NOT EXISTS FOR (n:NewsArticle) REQUIRE n.nodeId IS UNIQUE",
	"CREATE CONSTRAINT product_id IF NOT EXISTS FOR (k:KB_Product) REQUIRE k.nodeId IS UNIQUE",
}

var schemaIndexes = []string{
	"CREATE INDEX user_company_name IF NOT EXISTS FOR (u:UserCompany) ON (u.companyName)",
	"CREATE INDEX reference_company_name IF NOT EXISTS FOR (c:ReferenceCompany) ON (c.companyName)",
	"CREATE INDEX policy_name IF NOT EXISTS FOR (p:Policy) ON (p.policyName)",
	"CREATE INDEX indicator_name IF NOT EXISTS FOR (m:MacroIndicator) ON (m.indicatorName)",
	"CREATE INDEX product_name IF NOT EXISTS FOR (k:KB_Product) ON (k.productName)",
}

// EnsureSchema creates the uniqueness constraints and lookup indexes
// the pipeline relies on.
func EnsureSchema(ctx context.Context, client Client) error {
	for _, stmt := range schemaConstraints {
		if _, err := client.Write(ctx, stmt, nil); err != nil {
			return err
		}
	}
	for _, stmt := range schemaIndexes {
		if _, err := client.Write(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// LabelStats counts nodes per label for the status command.
func LabelStats(ctx context.Context, client Client) (map[string]int64, error) {
	result, err := client.Query(ctx,
		"MATCH (n) UNWIND labels(n) AS label RETURN label, count(*) AS count ORDER BY label",
		nil)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(result.Records))
	for _, rec := range result.Records {
		label, _ := rec["label"].(string)
		count, _ := rec["count"].(int64)
		if label != "" {
			stats[label] = count
		}
	}
	return stats, nil
}
