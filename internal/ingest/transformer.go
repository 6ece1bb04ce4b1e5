package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const extractionSystemPrompt = `당신은 KB 금융의 중소기업 AI 분석 전문가입니다.
제공된 금융/경제 데이터를 지식그래프 요소로 정확하게 변환해주세요.

노드 타입: ReferenceCompany, NewsArticle, MacroIndicator, Policy, KB_Product
관계 타입: IS_EXPOSED_TO, HAS_IMPACT_ON, IS_ELIGIBLE_FOR, COMPETES_WITH

추출 지침:
1. 실제 제목, 언론사명, 기업명을 원문 그대로 사용하세요. "뉴스_0", "미지정" 같은 플레이스홀더 금지.
2. ID만 영문_underscore 형식 (예: news_bridge_economy_20250618).
3. 명확한 인과관계나 연관성이 있는 경우만 관계를 생성하세요. 추측 금지.
4. 점수 기준: exposureLevel은 변동금리노출 70% 이상 HIGH, 40% 이상 MEDIUM, 미만 LOW.
   impactScore는 직접언급 0.8 이상, 간접언급 0.3-0.7, 일반영향 0.1-0.3.
   eligibilityScore는 명시적 조건 부합 0.8 이상, 일반적 부합 0.4-0.7.
5. 업종 매칭: "자동차"/"부품" → automotive_parts, "철강" → steel, "화학" → chemicals.

다음 JSON 형식으로만 응답하세요. 코드블럭이나 추가 텍스트 금지:
{
  "extraction_summary": {"total_nodes": 0, "total_relationships": 0, "key_insights": []},
  "nodes": [{"id": "", "type": "", "properties": {}}],
  "relationships": [{"source_id": "", "target_id": "", "type": "", "properties": {}}]
}`

// Transformer extracts graph nodes and relationships from source
// documents with the model. Calls are rate limited so bulk builds stay
// inside provider quotas.
type Transformer struct {
	provider llm.Provider
	model    string
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewTransformer returns a Transformer limited to requestsPerMinute
// extraction calls.
func NewTransformer(provider llm.Provider, model string, requestsPerMinute int, logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 15
	}
	return &Transformer{
		provider: provider,
		model:    model,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		logger:   logger,
	}
}

// Extract runs one extraction call over a batch of documents.
func (t *Transformer) Extract(ctx context.Context, batch []Document) (ExtractionResult, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return ExtractionResult{}, types.WrapError(types.INGEST_EXTRACTION_FAILED,
			"rate limiter wait interrupted", err)
	}

	payload, err := json.MarshalIndent(batchPayload(batch), "", "  ")
	if err != nil {
		return ExtractionResult{}, types.WrapError(types.INGEST_EXTRACTION_FAILED,
			"batch serialization failed", err)
	}

	resp, err := t.provider.Complete(ctx, llm.CompletionRequest{
		Model: t.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(extractionSystemPrompt),
			llm.NewUserMessage(string(payload)),
		},
		Temperature: 0.1,
	})
	if err != nil {
		return ExtractionResult{}, types.WrapError(types.INGEST_EXTRACTION_FAILED,
			"extraction call failed", err)
	}

	result, err := llm.ExtractJSONAs[ExtractionResult](resp.Message.Content)
	if err != nil {
		return ExtractionResult{}, types.WrapError(types.INGEST_EXTRACTION_FAILED,
			"extraction reply unparseable", err)
	}

	t.logger.Debug("batch extracted",
		"documents", len(batch),
		"nodes", len(result.Nodes),
		"relationships", len(result.Relationships))
	return result, nil
}

// batchPayload groups documents by category the way the extraction
// prompt expects its input.
func batchPayload(batch []Document) map[string][]map[string]any {
	grouped := make(map[string][]map[string]any)
	for _, doc := range batch {
		grouped[doc.Category] = append(grouped[doc.Category], doc.Fields)
	}
	return grouped
}
