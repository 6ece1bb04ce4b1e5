package ingest

import (
	"context"
	"log/slog"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

// nodeUpserts maps node type to its MERGE query and the property keys
// the query binds. Missing properties are written as null rather than
// failing the whole batch.
var nodeUpserts = map[string]struct {
	query string
	keys  []string
}{
	"ReferenceCompany": {
		query: `MERGE (c:ReferenceCompany {nodeId: $nodeId})
SET c.companyName = $companyName,
    c.sector = $sector,
    c.industryCode = $industryCode,
    c.revenue = $revenue,
    c.debtRatio = $debtRatio,
    c.variableRateExposure = $variableRateExposure,
    c.exportRatioPct = $exportRatioPct,
    c.createdAt = datetime()`,
		keys: []string{"companyName", "sector", "industryCode", "revenue", "debtRatio", "variableRateExposure", "exportRatioPct"},
	},
	"NewsArticle": {
		query: `MERGE (n:NewsArticle {nodeId: $nodeId})
SET n.title = $title,
    n.publisher = $publisher,
    n.publishDate = $publishDate,
    n.category = $category,
    n.summary = $summary,
    n.createdAt = datetime()`,
		keys: []string{"title", "publisher", "publishDate", "category", "summary"},
	},
	"MacroIndicator": {
		query: `MERGE (m:MacroIndicator {nodeId: $nodeId})
SET m.indicatorName = $indicatorName,
    m.value = $value,
    m.unit = $unit,
    m.changeRate = $changeRate,
    m.createdAt = datetime()`,
		keys: []string{"indicatorName", "value", "unit", "changeRate"},
	},
	"Policy": {
		query: `MERGE (p:Policy {nodeId: $nodeId})
SET p.policyName = $policyName,
    p.issuingOrg = $issuingOrg,
    p.supportField = $supportField,
    p.eligibilityText = $eligibilityText,
    p.createdAt = datetime()`,
		keys: []string{"policyName", "issuingOrg", "supportField", "eligibilityText"},
	},
	"KB_Product": {
		query: `MERGE (k:KB_Product {nodeId: $nodeId})
SET k.productName = $productName,
    k.productType = $productType,
    k.interestRate = $interestRate,
    k.loanLimit = $loanLimit,
    k.createdAt = datetime()`,
		keys: []string{"productName", "productType", "interestRate", "loanLimit"},
	},
}

var relationshipUpserts = map[string]struct {
	query string
	keys  []string
}{
	"IS_EXPOSED_TO": {
		query: `MATCH (c:ReferenceCompany {nodeId: $sourceId})
MATCH (m:MacroIndicator {nodeId: $targetId})
MERGE (c)-[r:IS_EXPOSED_TO]->(m)
SET r.exposureLevel = $exposureLevel,
    r.rationale = $rationale,
    r.riskType = $riskType,
    r.createdAt = datetime()`,
		keys: []string{"exposureLevel", "rationale", "riskType"},
	},
	"HAS_IMPACT_ON": {
		query: `MATCH (n:NewsArticle {nodeId: $sourceId})
MATCH (target {nodeId: $targetId})
MERGE (n)-[r:HAS_IMPACT_ON]->(target)
SET r.impactScore = $impactScore,
    r.impactDirection = $impactDirection,
    r.rationale = $rationale,
    r.createdAt = datetime()`,
		keys: []string{"impactScore", "impactDirection", "rationale"},
	},
	"IS_ELIGIBLE_FOR": {
		query: `MATCH (c:ReferenceCompany {nodeId: $sourceId})
MATCH (target {nodeId: $targetId})
MERGE (c)-[r:IS_ELIGIBLE_FOR]->(target)
SET r.eligibilityScore = $eligibilityScore,
    r.matchingConditions = $matchingConditions,
    r.recommendationReason = $recommendationReason,
    r.createdAt = datetime()`,
		keys: []string{"eligibilityScore", "matchingConditions", "recommendationReason"},
	},
	"COMPETES_WITH": {
		query: `MATCH (c1:ReferenceCompany {nodeId: $sourceId})
MATCH (c2:ReferenceCompany {nodeId: $targetId})
MERGE (c1)-[r:COMPETES_WITH]->(c2)
SET r.similarityScore = $similarityScore,
    r.competitionType = $competitionType,
    r.commonFactors = $commonFactors,
    r.createdAt = datetime()`,
		keys: []string{"similarityScore", "competitionType", "commonFactors"},
	},
}

// Writer persists extracted nodes and relationships. Individual write
// failures are logged and skipped; a bulk build should not lose a
// whole batch to one malformed record.
type Writer struct {
	store  graph.Client
	logger *slog.Logger
}

// NewWriter returns a Writer over the given store.
func NewWriter(store graph.Client, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{store: store, logger: logger}
}

// WriteNodes upserts the nodes and returns per-type counts of
// successful writes.
func (w *Writer) WriteNodes(ctx context.Context, nodes []ExtractedNode) map[string]int {
	counts := make(map[string]int)
	for _, node := range nodes {
		upsert, ok := nodeUpserts[node.Type]
		if !ok {
			w.logger.Warn("unknown node type skipped", "type", node.Type, "id", node.ID)
			continue
		}

		params := map[string]any{"nodeId": node.ID}
		for _, key := range upsert.keys {
			params[key] = node.Properties[key]
		}

		if _, err := w.store.Write(ctx, upsert.query, params); err != nil {
			w.logger.Warn("node write failed", "type", node.Type, "id", node.ID, "error", err)
			continue
		}
		counts[node.Type]++
	}
	return counts
}

// WriteRelationships upserts the relationships and returns per-type
// counts of successful writes.
func (w *Writer) WriteRelationships(ctx context.Context, relationships []ExtractedRelationship) map[string]int {
	counts := make(map[string]int)
	for _, rel := range relationships {
		upsert, ok := relationshipUpserts[rel.Type]
		if !ok {
			w.logger.Warn("unknown relationship type skipped",
				"type", rel.Type, "source", rel.SourceID, "target", rel.TargetID)
			continue
		}

		params := map[string]any{
			"sourceId": rel.SourceID,
			"targetId": rel.TargetID,
		}
		for _, key := range upsert.keys {
			params[key] = rel.Properties[key]
		}

		if _, err := w.store.Write(ctx, upsert.query, params); err != nil {
			w.logger.Warn("relationship write failed",
				"type", rel.Type, "source", rel.SourceID, "target", rel.TargetID, "error", err)
			continue
		}
		counts[rel.Type]++
	}
	return counts
}
