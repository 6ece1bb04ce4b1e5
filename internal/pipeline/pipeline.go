package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

const (
	defaultMaxAttempts  = 2
	defaultLLMTimeout   = 60 * time.Second
	defaultQueryTimeout = 30 * time.Second
)

// Pipeline runs the generate-execute-correct-answer loop for one
// natural-language question at a time. A single Run is strictly
// sequential; concurrent Runs share no mutable state.
type Pipeline struct {
	store        graph.Client
	maxAttempts  int
	llmTimeout   time.Duration
	queryTimeout time.Duration
	logger       *slog.Logger
	clock        clockwork.Clock

	generator *generator
	corrector *corrector
	answerer  *answerer
}

// Option is a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithMaxAttempts sets the number of correction retries after the
// initial execution. Total executions are bounded by n+1.
// Default: 2
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.maxAttempts = n
		}
	}
}

// WithLLMTimeout bounds each individual LLM call.
func WithLLMTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.llmTimeout = d
		}
	}
}

// WithQueryTimeout bounds each graph query execution.
func WithQueryTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.queryTimeout = d
		}
	}
}

// WithSchema overrides the schema description handed to prompts.
func WithSchema(schema string) Option {
	return func(p *Pipeline) {
		if schema != "" {
			p.generator.schema = schema
			p.corrector.schema = schema
		}
	}
}

// WithExamples overrides the few-shot examples for the generation
// prompt.
func WithExamples(examples []string) Option {
	return func(p *Pipeline) {
		p.generator.examples = examples
	}
}

// WithModel pins a model for all pipeline LLM calls. Empty uses the
// provider default.
func WithModel(model string) Option {
	return func(p *Pipeline) {
		p.generator.model = model
		p.corrector.model = model
		p.answerer.model = model
	}
}

// WithLogger sets the logger for pipeline operations.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock injects a clock, used by tests to control elapsed time.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Pipeline) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// New creates a Pipeline over the given LLM provider and graph client.
func New(provider llm.Provider, store graph.Client, options ...Option) *Pipeline {
	p := &Pipeline{
		store:        store,
		maxAttempts:  defaultMaxAttempts,
		llmTimeout:   defaultLLMTimeout,
		queryTimeout: defaultQueryTimeout,
		logger:       slog.Default(),
		clock:        clockwork.NewRealClock(),
		generator: &generator{
			provider: provider,
			schema:   graph.SchemaDescription,
			examples: graph.FewShotExamples,
		},
		corrector: &corrector{
			provider: provider,
			schema:   graph.SchemaDescription,
		},
		answerer: &answerer{
			provider: provider,
		},
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Run answers one request. It always returns an Answer with non-empty
// text; internal failures surface as Succeeded=false, never as raw
// errors.
func (p *Pipeline) Run(ctx context.Context, req Request) Answer {
	start := p.clock.Now()
	logger := p.logger.With("run_id", uuid.New().String())

	var (
		query     string
		result    *ExecutionResult
		succeeded bool
		attempts  int
		failure   string
	)

	history := NewErrorHistory()

	if err := req.Validate(); err != nil {
		logger.Warn("rejecting request", "state", StateGenerating, "error", err)
		failure = err.Error()
	} else {
		logger.Debug("generating query", "state", StateGenerating, "question", req.Text)

		generated, genErr := p.generate(ctx, req)
		if genErr != nil {
			// Generation failure goes straight to answering and
			// consumes no execution attempt.
			logger.Warn("query generation failed", "state", StateGenerating, "error", genErr)
			failure = "could not translate the request into a graph query"
		} else {
			query = generated
			result, attempts, succeeded = p.executeLoop(ctx, logger, req, &query, history)
			if !succeeded {
				if latest, ok := history.Latest(); ok {
					failure = latest.Error
				} else {
					failure = "query execution was cancelled"
				}
			}
		}
	}

	logger.Debug("synthesizing answer",
		"state", StateAnswering, "succeeded", succeeded, "attempts", attempts)

	answerCtx, cancel := context.WithTimeout(ctx, p.llmTimeout)
	text := p.answerer.Synthesize(answerCtx, req, query, result, failure)
	cancel()

	elapsed := p.clock.Since(start)
	logger.Info("run finished",
		"succeeded", succeeded, "attempts", attempts, "elapsed", elapsed)

	return Answer{
		Text:         text,
		Succeeded:    succeeded,
		AttemptsUsed: attempts,
		Elapsed:      elapsed,
		Query:        query,
	}
}

// executeLoop drives EXECUTING/CORRECTING until success, exhaustion, or
// cancellation. It mutates *query to the latest candidate and returns
// the result, the number of executions, and whether one succeeded.
func (p *Pipeline) executeLoop(ctx context.Context, logger *slog.Logger, req Request, query *string, history *ErrorHistory) (*ExecutionResult, int, bool) {
	attempts := 0

	for i := 0; ; i++ {
		logger.Debug("executing query", "state", StateExecuting, "attempt", i, "query", *query)

		result, err := p.execute(ctx, *query)
		attempts++

		if err == nil {
			// Zero rows is still a successful execution.
			logger.Debug("query succeeded", "state", StateSucceeded, "rows", len(result.Rows))
			return result, attempts, true
		}

		history.Append(*query, err, p.clock.Now())
		logger.Warn("query failed", "attempt", i, "error", err)

		if ctx.Err() != nil {
			return nil, attempts, false
		}

		if i == p.maxAttempts {
			logger.Warn("corrections exhausted", "state", StateExhausted, "attempts", attempts)
			return nil, attempts, false
		}

		logger.Debug("correcting query", "state", StateCorrecting)
		*query = p.correct(ctx, req, *query, history)
	}
}

func (p *Pipeline) generate(ctx context.Context, req Request) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, p.llmTimeout)
	defer cancel()
	return p.generator.Generate(genCtx, req)
}

func (p *Pipeline) correct(ctx context.Context, req Request, failedQuery string, history *ErrorHistory) string {
	corrCtx, cancel := context.WithTimeout(ctx, p.llmTimeout)
	defer cancel()
	return p.corrector.Correct(corrCtx, req, failedQuery, history)
}

func (p *Pipeline) execute(ctx context.Context, query string) (*ExecutionResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	result, err := p.store.Query(queryCtx, query, nil)
	if err != nil {
		return nil, err
	}

	return &ExecutionResult{
		Rows:    result.Records,
		Columns: result.Columns,
	}, nil
}
