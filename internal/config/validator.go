package config

import (
	"fmt"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Validator checks a loaded configuration for consistency.
type Validator interface {
	Validate(cfg *Config) error
}

type validator struct{}

// NewValidator creates the default configuration validator.
func NewValidator() Validator {
	return &validator{}
}

func (v *validator) Validate(cfg *Config) error {
	if cfg == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "config is nil")
	}

	if err := cfg.LLM.Validate(); err != nil {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "llm", err)
	}
	if err := cfg.Graph.Validate(); err != nil {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "graph", err)
	}

	if cfg.Pipeline.MaxAttempts < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"pipeline.max_attempts must be non-negative")
	}
	if cfg.Pipeline.LLMTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"pipeline.llm_timeout must be positive")
	}
	if cfg.Pipeline.QueryTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"pipeline.query_timeout must be positive")
	}

	ratios := map[string]float64{
		"analysis.variable_rate_high_ratio":   cfg.Analysis.VariableRateHighRatio,
		"analysis.variable_rate_medium_ratio": cfg.Analysis.VariableRateMediumRatio,
		"analysis.export_high_ratio":          cfg.Analysis.ExportHighRatio,
		"analysis.export_medium_ratio":        cfg.Analysis.ExportMediumRatio,
		"analysis.similarity_threshold":       cfg.Analysis.SimilarityThreshold,
	}
	for name, ratio := range ratios {
		if ratio < 0 || ratio > 1 {
			return types.NewError(types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("%s must be within [0, 1], got %v", name, ratio))
		}
	}
	if cfg.Analysis.VariableRateMediumRatio > cfg.Analysis.VariableRateHighRatio {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"analysis.variable_rate_medium_ratio exceeds the high ratio")
	}
	if cfg.Analysis.ExportMediumRatio > cfg.Analysis.ExportHighRatio {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"analysis.export_medium_ratio exceeds the high ratio")
	}

	if cfg.Ingest.BatchSize <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"ingest.batch_size must be positive")
	}
	if cfg.Ingest.RequestsPerMinute <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"ingest.requests_per_minute must be positive")
	}
	if cfg.Sentry.MaxConcurrent <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"sentry.max_concurrent must be positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("logging.level %q is not one of debug/info/warn/error", cfg.Logging.Level))
	}

	return nil
}
