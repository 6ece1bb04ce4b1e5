package main

import (
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show graph connectivity and node counts per label",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		health := store.Health(ctx)
		cmd.Printf("graph: %s", health.State)
		if health.Message != "" {
			cmd.Printf(" (%s)", health.Message)
		}
		cmd.Println()

		stats, err := graph.LabelStats(ctx, store)
		if err != nil {
			return err
		}
		labels := make([]string, 0, len(stats))
		for label := range stats {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoFormatHeaders(false)
		table.SetHeader([]string{"Label", "Nodes"})
		for _, label := range labels {
			table.Append([]string{label, fmt.Sprintf("%d", stats[label])})
		}
		table.Render()
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the graph constraints and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		if err := graph.EnsureSchema(ctx, store); err != nil {
			return err
		}
		cmd.Println("schema ensured")
		return nil
	},
}
