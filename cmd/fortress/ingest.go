package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <documents.json>",
	Short: "Build the knowledge graph from source documents",
	Long: `Ingest reads a JSON array of categorized source documents (news,
policies, KB products, macro indicators, reference companies), extracts
nodes and relationships with the model in rate-limited batches and
upserts them into the graph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var documents []ingest.Document
		if err := json.Unmarshal(data, &documents); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		provider, err := newProvider()
		if err != nil {
			return err
		}

		builder := ingest.NewBuilder(
			ingest.NewTransformer(provider, cfg.LLM.Model, cfg.Ingest.RequestsPerMinute, logger),
			ingest.NewWriter(store, logger),
			cfg.Ingest.BatchSize,
			logger)

		report, err := builder.Build(ctx, documents)
		if err != nil {
			return err
		}

		printCountTable(cmd, "Nodes", report.NodeCounts)
		printCountTable(cmd, "Relationships", report.RelationshipCounts)
		cmd.Printf("batches=%d failed=%d nodes=%d relationships=%d\n",
			report.Batches, report.FailedBatches,
			report.TotalNodes(), report.TotalRelationships())
		return nil
	},
}

func printCountTable(cmd *cobra.Command, kind string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{kind, "Count"})
	for _, t := range types {
		table.Append([]string{t, fmt.Sprintf("%d", counts[t])})
	}
	table.Render()
}
