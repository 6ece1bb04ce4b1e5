package config

import (
	"time"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LLM:   llm.DefaultConfig(),
		Graph: graph.DefaultConfig(),
		Pipeline: PipelineConfig{
			MaxAttempts:  2,
			LLMTimeout:   60 * time.Second,
			QueryTimeout: 30 * time.Second,
		},
		Analysis: AnalysisConfig{
			VariableRateHighRatio:   0.7,
			VariableRateMediumRatio: 0.4,
			ExportHighRatio:         0.5,
			ExportMediumRatio:       0.2,
			SimilarityThreshold:     0.6,
		},
		Ingest: IngestConfig{
			BatchSize:         10,
			RequestsPerMinute: 15,
		},
		Sentry: SentryConfig{
			MaxConcurrent: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
