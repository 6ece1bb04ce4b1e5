package ingest

// Document is one source record headed for the knowledge graph: a news
// article, policy notice, KB product sheet, macro indicator reading or
// reference company filing.
type Document struct {
	// Category groups documents for batching, e.g. "뉴스_데이터",
	// "정책데이터", "KB금융상품", "기업정보", "거시경제지표".
	Category string `json:"category"`

	// Fields holds the raw record as key-value pairs.
	Fields map[string]any `json:"fields"`
}

// ExtractedNode is one node the model extracted from a batch.
type ExtractedNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// ExtractedRelationship is one relationship the model extracted.
type ExtractedRelationship struct {
	SourceID   string         `json:"source_id"`
	TargetID   string         `json:"target_id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// ExtractionSummary is the model's own account of a batch extraction.
type ExtractionSummary struct {
	TotalNodes         int      `json:"total_nodes"`
	TotalRelationships int      `json:"total_relationships"`
	KeyInsights        []string `json:"key_insights"`
}

// ExtractionResult is the parsed output of one extraction call.
type ExtractionResult struct {
	Summary       ExtractionSummary       `json:"extraction_summary"`
	Nodes         []ExtractedNode         `json:"nodes"`
	Relationships []ExtractedRelationship `json:"relationships"`
}

// BuildReport summarizes a knowledge-graph build run.
type BuildReport struct {
	// Batches is the number of extraction batches processed.
	Batches int

	// FailedBatches counts batches whose extraction failed and was
	// skipped.
	FailedBatches int

	// NodeCounts maps node type to how many were written.
	NodeCounts map[string]int

	// RelationshipCounts maps relationship type to how many were
	// written.
	RelationshipCounts map[string]int
}

// TotalNodes returns the number of nodes written across all types.
func (r BuildReport) TotalNodes() int {
	total := 0
	for _, n := range r.NodeCounts {
		total += n
	}
	return total
}

// TotalRelationships returns the number of relationships written.
func (r BuildReport) TotalRelationships() int {
	total := 0
	for _, n := range r.RelationshipCounts {
		total += n
	}
	return total
}
