package sentry

import (
	"context"
	"log/slog"

	"github.com/alitto/pond/v2"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

const defaultMaxConcurrent = 4

// Sentry watches for macro events and fans each event out over every
// registered company: load the company's graph context, assess the
// risks, recommend countermeasures and render an alert report.
type Sentry struct {
	store         graph.Client
	provider      llm.Provider
	model         string
	maxConcurrent int
	logger        *slog.Logger
}

// Option configures a Sentry.
type Option func(*Sentry)

// WithMaxConcurrent bounds concurrent per-company assessments.
func WithMaxConcurrent(n int) Option {
	return func(s *Sentry) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sentry) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Sentry over the given store and provider.
func New(store graph.Client, provider llm.Provider, model string, options ...Option) *Sentry {
	s := &Sentry{
		store:         store,
		provider:      provider,
		model:         model,
		maxConcurrent: defaultMaxConcurrent,
		logger:        slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ProcessEvent assesses one event for one company.
func (s *Sentry) ProcessEvent(ctx context.Context, event Event, companyName string) (CompanyAlert, error) {
	cc, err := s.loadContext(ctx, companyName)
	if err != nil {
		return CompanyAlert{}, err
	}

	risks, score, stress := s.assessRisks(ctx, event, cc)
	solutions := buildSolutions(cc, risks)

	alert := CompanyAlert{
		CompanyName: companyName,
		Event:       event,
		Risks:       risks,
		Solutions:   solutions,
		Report:      renderReport(event, cc, risks, solutions),
		Confidence:  confidence(risks, solutions),
		StressLevel: stress,
		RiskScore:   score,
	}

	s.logger.Info("company alert generated",
		"company", companyName,
		"event", event.ID,
		"risks", len(risks),
		"solutions", len(solutions),
		"risk_score", score)
	return alert, nil
}

// FanOut runs ProcessEvent for every registered company on a bounded
// worker pool. A failing company is counted and skipped; FanOut fails
// only when the company list itself cannot be read.
func (s *Sentry) FanOut(ctx context.Context, event Event) (FanOutResult, error) {
	companies, err := s.listCompanies(ctx)
	if err != nil {
		return FanOutResult{}, err
	}

	result := FanOutResult{Event: event, Companies: len(companies)}
	if len(companies) == 0 {
		return result, nil
	}

	pool := pond.NewResultPool[*CompanyAlert](s.maxConcurrent)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, companyName := range companies {
		companyName := companyName
		group.SubmitErr(func() (*CompanyAlert, error) {
			alert, err := s.ProcessEvent(ctx, event, companyName)
			if err != nil {
				s.logger.Warn("company assessment failed, skipping",
					"company", companyName, "event", event.ID, "error", err)
				return nil, nil
			}
			return &alert, nil
		})
	}

	alerts, err := group.Wait()
	if err != nil {
		return result, err
	}
	for _, alert := range alerts {
		if alert == nil {
			result.Failed++
			continue
		}
		result.Alerts = append(result.Alerts, *alert)
	}
	return result, nil
}
