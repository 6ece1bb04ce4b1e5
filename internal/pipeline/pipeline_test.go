package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm/providers"
)

func connectedMock(t *testing.T) *graph.MockClient {
	t.Helper()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(context.Background()))
	return store
}

func TestRun_SuccessOnFirstAttempt(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		"MATCH (u:UserCompany) RETURN u.companyName LIMIT 5",
		"두 개 기업이 등록되어 있습니다.",
	})
	store := connectedMock(t)
	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{
			{"u.companyName": "대한정밀"},
			{"u.companyName": "한국금속"},
		},
		Columns: []string{"u.companyName"},
	})

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "등록된 기업을 보여주세요"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, 1, answer.AttemptsUsed)
	assert.NotEmpty(t, answer.Text)
	assert.Equal(t, "MATCH (u:UserCompany) RETURN u.companyName LIMIT 5", answer.Query)

	// generate + answer, no correction
	assert.Equal(t, 2, provider.CallCount())
}

func TestRun_EmptyRowsIsSuccessAndSkipsCorrector(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		"MATCH (p:Policy) RETURN p.policyName",
		"현재 조건에 맞는 정책이 없습니다.",
	})
	store := connectedMock(t)
	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{},
		Columns: []string{"p.policyName"},
	})

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "지원 정책을 알려주세요"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, 1, answer.AttemptsUsed)
	assert.NotEmpty(t, answer.Text)

	// The corrector must not run for an empty-but-successful result.
	assert.Equal(t, 2, provider.CallCount())
	assert.Len(t, store.GetCallsByMethod("Query"), 1)
}

func TestRun_AlwaysFailingExecutorTerminatesExactly(t *testing.T) {
	maxAttempts := 2
	provider := providers.NewMockProvider([]string{
		"QUERY_0",
		"QUERY_1",
		"QUERY_2",
		"답변을 드리지 못해 죄송합니다.",
	})
	store := connectedMock(t)
	for i := 0; i <= maxAttempts; i++ {
		store.EnqueueError(errors.New("Invalid input: syntax error"))
	}

	p := New(provider, store, WithMaxAttempts(maxAttempts))
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.False(t, answer.Succeeded)
	assert.Equal(t, maxAttempts+1, answer.AttemptsUsed)
	assert.NotEmpty(t, answer.Text)

	// Exactly maxAttempts+1 executions, not one more.
	assert.Len(t, store.GetCallsByMethod("Query"), maxAttempts+1)

	// generate + maxAttempts corrections + answer
	assert.Equal(t, maxAttempts+2, provider.CallCount())
}

func TestRun_CorrectionScenario(t *testing.T) {
	queryA := "MATCH (c:Company)-[r:IS_EXPOSED_TO]->(m:MacroIndicator) RETURN m.indicatorName, r.exposureLevel"
	queryB := "MATCH (c:UserCompany)-[r:IS_EXPOSED_TO]->(m:MacroIndicator) RETURN m.indicatorName, r.exposureLevel"

	provider := providers.NewMockProvider([]string{
		queryA,
		queryB,
		"기준금리(base_rate)에 대한 노출도가 HIGH로 확인되었습니다.",
	})
	store := connectedMock(t)
	store.EnqueueError(errors.New("unknown label `Company`"))
	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{
			{"m.indicatorName": "base_rate", "r.exposureLevel": "HIGH"},
		},
		Columns: []string{"m.indicatorName", "r.exposureLevel"},
	})

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "대한정밀의 리스크 노출도를 알려주세요", Company: "대한정밀"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, 2, answer.AttemptsUsed)
	assert.Equal(t, queryB, answer.Query)
	assert.Contains(t, answer.Text, "base_rate")
	assert.Contains(t, answer.Text, "HIGH")

	// The correction prompt carries the failed query and the error.
	calls := provider.GetCalls()
	require.Len(t, calls, 3)
	correctionPrompt := calls[1].Request.Messages[1].Content
	assert.Contains(t, correctionPrompt, queryA)
	assert.Contains(t, correctionPrompt, "unknown label")
}

func TestRun_GenerationFailureSkipsToAnswer(t *testing.T) {
	genErr := errors.New("model overloaded")
	provider := providers.NewMockProvider([]string{
		"unused",
		"죄송합니다. 질문을 이해하지 못했습니다.",
	}).FailAt(0, genErr)
	store := connectedMock(t)

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.False(t, answer.Succeeded)
	assert.Equal(t, 0, answer.AttemptsUsed)
	assert.Empty(t, answer.Query)
	assert.NotEmpty(t, answer.Text)

	// No query was ever executed.
	assert.Empty(t, store.GetCallsByMethod("Query"))
}

func TestRun_TotalFailureStillAnswers(t *testing.T) {
	provider := providers.NewMockProvider([]string{"unused"}).
		FailAt(0, errors.New("generation down")).
		FailAt(1, errors.New("answering down"))
	store := connectedMock(t)

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.False(t, answer.Succeeded)
	assert.NotEmpty(t, answer.Text)
}

func TestRun_CorrectorFailureFallsBackToSafeQuery(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		"QUERY_A",
		"unused correction",
		"안내 메시지를 전달드립니다.",
	}).FailAt(1, errors.New("corrector unavailable"))
	store := connectedMock(t)
	store.EnqueueError(errors.New("syntax error"))
	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{{"message": "쿼리 수정에 실패했습니다. 다시 시도해주세요."}},
		Columns: []string{"message"},
	})

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, 2, answer.AttemptsUsed)
	assert.Equal(t, FallbackQuery, answer.Query)

	queries := store.GetCallsByMethod("Query")
	require.Len(t, queries, 2)
	assert.Equal(t, FallbackQuery, queries[1].Args[0])
}

func TestRun_CorrectorSeesOnlyRecentErrors(t *testing.T) {
	maxAttempts := 4
	provider := providers.NewMockProvider([]string{
		"QUERY_0", "QUERY_1", "QUERY_2", "QUERY_3", "QUERY_4",
		"실패 안내",
	})
	store := connectedMock(t)
	for i := 0; i <= maxAttempts; i++ {
		store.EnqueueError(errors.New("error for attempt " + string(rune('0'+i))))
	}

	p := New(provider, store, WithMaxAttempts(maxAttempts))
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.False(t, answer.Succeeded)
	assert.Equal(t, maxAttempts+1, answer.AttemptsUsed)

	calls := provider.GetCalls()
	// calls: generate, 4 corrections, answer
	require.Len(t, calls, maxAttempts+2)

	lastCorrection := calls[maxAttempts].Request.Messages[1].Content
	assert.Contains(t, lastCorrection, "error for attempt 3")
	assert.NotContains(t, lastCorrection, "error for attempt 0")
}

func TestRun_StripsCodeFenceFromGeneratedQuery(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		"```cypher\nMATCH (n) RETURN count(n) AS c\n```",
		"총 3개의 노드가 있습니다.",
	})
	store := connectedMock(t)
	store.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{{"c": int64(3)}},
		Columns: []string{"c"},
	})

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "노드 수를 알려주세요"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, "MATCH (n) RETURN count(n) AS c", answer.Query)

	queries := store.GetCallsByMethod("Query")
	require.Len(t, queries, 1)
	assert.False(t, strings.Contains(queries[0].Args[0].(string), "```"))
}

func TestRun_EmptyRequestRejectedWithoutAttempts(t *testing.T) {
	provider := providers.NewMockProvider([]string{"요청이 비어 있습니다."})
	store := connectedMock(t)

	p := New(provider, store)
	answer := p.Run(context.Background(), Request{Text: "   "})

	assert.False(t, answer.Succeeded)
	assert.Equal(t, 0, answer.AttemptsUsed)
	assert.NotEmpty(t, answer.Text)
	assert.Empty(t, store.GetCallsByMethod("Query"))
}

func TestRun_CancelledContextProducesFailureAnswer(t *testing.T) {
	provider := providers.NewMockProvider([]string{"unused"})
	store := connectedMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(provider, store)
	answer := p.Run(ctx, Request{Text: "질문"})

	assert.False(t, answer.Succeeded)
	assert.NotEmpty(t, answer.Text)
}

// clockAdvancingStore advances a fake clock on every query so elapsed
// time is deterministic in tests.
type clockAdvancingStore struct {
	*graph.MockClient
	clock *clockwork.FakeClock
	step  time.Duration
}

func (s *clockAdvancingStore) Query(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
	s.clock.Advance(s.step)
	return s.MockClient.Query(ctx, cypher, params)
}

func TestRun_ElapsedUsesInjectedClock(t *testing.T) {
	provider := providers.NewMockProvider([]string{
		"QUERY_A",
		"QUERY_B",
		"답변입니다.",
	})
	inner := connectedMock(t)
	inner.EnqueueError(errors.New("boom"))
	inner.EnqueueResult(graph.QueryResult{
		Records: []map[string]any{{"x": int64(1)}},
		Columns: []string{"x"},
	})

	clock := clockwork.NewFakeClock()
	store := &clockAdvancingStore{MockClient: inner, clock: clock, step: 250 * time.Millisecond}

	p := New(provider, store, WithClock(clock))
	answer := p.Run(context.Background(), Request{Text: "질문"})

	assert.True(t, answer.Succeeded)
	assert.Equal(t, 2, answer.AttemptsUsed)
	assert.Equal(t, 500*time.Millisecond, answer.Elapsed)
}
