package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/llm/providers"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/pipeline"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fortress",
	Short: "KB Fortress AI - 중소 제조기업 금융 리스크 파수꾼",
	Long: `Fortress answers natural-language questions about Korean SME
manufacturers from a Neo4j knowledge graph, registers companies,
assesses their financial risks and fans macro events out into
per-company alerts.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// setup runs before every command: environment, logging, config.
func setup(cmd *cobra.Command, args []string) error {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	logger = newLogger(verbose)
	slog.SetDefault(logger)

	loader := config.NewLoader(config.NewValidator())
	loaded, err := loader.LoadWithDefaults(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "fortress.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(sentryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore connects to the configured graph database. Callers close
// the client when done.
func openStore(ctx context.Context) (graph.Client, error) {
	client, err := graph.NewNeo4jClient(cfg.Graph)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func newProvider() (llm.Provider, error) {
	return providers.NewProvider(cfg.LLM)
}

func newPipeline(provider llm.Provider, store graph.Client) *pipeline.Pipeline {
	return pipeline.New(provider, store,
		pipeline.WithMaxAttempts(cfg.Pipeline.MaxAttempts),
		pipeline.WithLLMTimeout(cfg.Pipeline.LLMTimeout),
		pipeline.WithQueryTimeout(cfg.Pipeline.QueryTimeout),
		pipeline.WithModel(cfg.LLM.Model),
		pipeline.WithLogger(logger),
	)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
