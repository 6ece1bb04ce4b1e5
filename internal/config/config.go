package config

import (
	"time"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

// Config is the root configuration for the Fortress service.
type Config struct {
	LLM      llm.Config     `mapstructure:"llm" yaml:"llm"`
	Graph    graph.Config   `mapstructure:"graph" yaml:"graph"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Ingest   IngestConfig   `mapstructure:"ingest" yaml:"ingest"`
	Sentry   SentryConfig   `mapstructure:"sentry" yaml:"sentry"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// PipelineConfig bounds the generate-execute-correct loop.
type PipelineConfig struct {
	// MaxAttempts is the number of correction retries after the initial
	// execution. Total executions are bounded by MaxAttempts+1.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// LLMTimeout bounds each individual LLM call.
	LLMTimeout time.Duration `mapstructure:"llm_timeout" yaml:"llm_timeout"`

	// QueryTimeout bounds each graph query execution.
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
}

// AnalysisConfig holds the business thresholds the risk assessment
// applies. These are data, not control flow, so relationship rules can
// change without code changes.
type AnalysisConfig struct {
	// VariableRateHighRatio marks interest-rate exposure HIGH when
	// variableRateDebt/debtAmount meets or exceeds it.
	VariableRateHighRatio float64 `mapstructure:"variable_rate_high_ratio" yaml:"variable_rate_high_ratio"`

	// VariableRateMediumRatio marks interest-rate exposure MEDIUM at or
	// above this ratio (below VariableRateHighRatio).
	VariableRateMediumRatio float64 `mapstructure:"variable_rate_medium_ratio" yaml:"variable_rate_medium_ratio"`

	// ExportHighRatio marks forex exposure HIGH when
	// exportAmount/revenue meets or exceeds it.
	ExportHighRatio float64 `mapstructure:"export_high_ratio" yaml:"export_high_ratio"`

	// ExportMediumRatio marks forex exposure MEDIUM at or above this
	// ratio.
	ExportMediumRatio float64 `mapstructure:"export_medium_ratio" yaml:"export_medium_ratio"`

	// SimilarityThreshold is the minimum similarityScore for SIMILAR_TO
	// matches surfaced to the user.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
}

// IngestConfig controls batch graph building.
type IngestConfig struct {
	// BatchSize is the number of source documents per LLM extraction
	// call.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RequestsPerMinute rate-limits LLM extraction calls.
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// SentryConfig controls the risk-event fan-out.
type SentryConfig struct {
	// MaxConcurrent bounds concurrent per-company pipeline runs.
	MaxConcurrent int `mapstructure:"max_concurrent" yaml:"max_concurrent"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
