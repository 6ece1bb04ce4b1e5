package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/sentry"
)

var (
	sentryCompany   string
	sentryEventFile string
)

var sentryCmd = &cobra.Command{
	Use:   "sentry",
	Short: "Fan a macro event out into per-company risk alerts",
	Long: `Sentry assesses a macro event (by default the standing 0.5%p
rate-hike scenario) for every registered company and prints one alert
report per company. Use --company to target a single company, or
--event to load a custom event from a JSON file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		event := sentry.DefaultEvent(time.Now())
		if sentryEventFile != "" {
			data, err := os.ReadFile(sentryEventFile)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &event); err != nil {
				return fmt.Errorf("parsing %s: %w", sentryEventFile, err)
			}
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

		watcher := sentry.New(store, provider, cfg.LLM.Model,
			sentry.WithMaxConcurrent(cfg.Sentry.MaxConcurrent),
			sentry.WithLogger(logger))

		if sentryCompany != "" {
			alert, err := watcher.ProcessEvent(ctx, event, sentryCompany)
			if err != nil {
				return err
			}
			cmd.Println(alert.Report)
			return nil
		}

		result, err := watcher.FanOut(ctx, event)
		if err != nil {
			return err
		}
		for _, alert := range result.Alerts {
			cmd.Println(alert.Report)
			cmd.Println("---")
		}
		cmd.Printf("companies=%d alerts=%d failed=%d\n",
			result.Companies, len(result.Alerts), result.Failed)
		return nil
	},
}

func init() {
	sentryCmd.Flags().StringVar(&sentryCompany, "company", "", "assess a single company")
	sentryCmd.Flags().StringVar(&sentryEventFile, "event", "", "event JSON file")
}
