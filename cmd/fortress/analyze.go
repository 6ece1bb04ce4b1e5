package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/analysis"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const profileQuery = `
MATCH (u:UserCompany {companyName: $companyName})
RETURN u.companyName AS companyName, u.industry AS industry,
       u.location AS location, u.revenue AS revenue,
       u.employees AS employees, u.debtAmount AS debtAmount,
       u.variableRateDebt AS variableRateDebt,
       u.exportAmount AS exportAmount`

var analyzePaths bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <company-name>",
	Short: "Run the full risk analysis for a registered company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		provider, err := newProvider()
		if err != nil {
			return err
		}

		profile, err := loadProfile(ctx, store, args[0])
		if err != nil {
			return err
		}

		analyzer := analysis.NewAnalyzer(newPipeline(provider, store),
			store, provider, cfg.LLM.Model, cfg.Analysis, logger)
		report, err := analyzer.Analyze(ctx, profile)
		if err != nil {
			return err
		}

		for _, section := range analysis.Sections {
			answer, ok := report.Answers[section]
			if !ok {
				continue
			}
			cmd.Printf("## %s\n%s\n\n", section, answer.Text)
		}
		if err := printJSON(cmd, report.Assessment); err != nil {
			return err
		}

		if analyzePaths {
			assessment, err := analysis.NewPathAnalyzer(store, logger).Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Println(assessment.RenderReport())
		}
		return nil
	},
}

var referenceFile string

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity <company-name>",
	Short: "Estimate macro sensitivity from reference company data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		metrics, err := analysis.LoadReferenceMetrics(referenceFile)
		if err != nil {
			return err
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		profile, err := loadProfile(ctx, store, args[0])
		if err != nil {
			return err
		}

		sensitivity, err := analysis.NewSensitivityAnalyzer(metrics).ForCompany(profile)
		if err != nil {
			return err
		}
		return printJSON(cmd, sensitivity)
	},
}

// loadProfile rebuilds a company profile from its graph node. Stored
// amounts are converted back to the percent ratios the profile carries.
func loadProfile(ctx context.Context, store graph.Client, companyName string) (company.Profile, error) {
	result, err := store.Query(ctx, profileQuery, map[string]any{"companyName": companyName})
	if err != nil {
		return company.Profile{}, err
	}
	if result.Empty() {
		return company.Profile{}, types.NewError(types.COMPANY_NOT_FOUND,
			fmt.Sprintf("company %q is not registered", companyName))
	}

	record := result.Records[0]
	profile := company.Profile{
		CompanyName: recordString(record, "companyName"),
		Industry:    recordString(record, "industry"),
		Location:    recordString(record, "location"),
		Revenue:     recordInt(record, "revenue"),
		Employees:   recordInt(record, "employees"),
		Debt:        recordInt(record, "debtAmount"),
	}
	if profile.Debt > 0 {
		profile.VariableDebtRatio = recordInt(record, "variableRateDebt") * 100 / profile.Debt
	}
	if profile.Revenue > 0 {
		profile.ExportRatio = recordInt(record, "exportAmount") * 100 / profile.Revenue
	}
	return profile, nil
}

func recordString(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

func recordInt(record map[string]any, key string) int {
	switch v := record[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzePaths, "paths", false,
		"include the multi-hop risk path analysis")
	sensitivityCmd.Flags().StringVar(&referenceFile, "reference",
		"data/reference_metrics.json", "reference company metrics file")
}
