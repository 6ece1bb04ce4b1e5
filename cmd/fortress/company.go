package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/company"
)

var registerFile string

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Register, inspect and remove user companies",
}

var registerCmd = &cobra.Command{
	Use:   "register [description]",
	Short: "Register a company from a Korean description",
	Long: `Register extracts a company profile from a Korean description
("회사명: 대한정밀, 업종: 자동차부품, ..."), creates the UserCompany
node and connects it to macro indicators, KB products, policies and
similar reference companies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text := strings.Join(args, " ")
		if registerFile != "" {
			data, err := os.ReadFile(registerFile)
			if err != nil {
				return err
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return cmd.Help()
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

		registrar := company.NewRegistrar(store,
			company.NewExtractor(provider, cfg.LLM.Model),
			cfg.Analysis,
			company.WithRegistrarLogger(logger))

		result, err := registrar.Register(ctx, text)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <company-name>",
	Short: "Show the standing analysis for a registered company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		report, err := company.NewReporter(store, logger).Report(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <company-name>",
	Short: "Delete a registered company and its relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		deleted, err := company.NewReporter(store, logger).Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if !deleted {
			cmd.Printf("%s: not found\n", args[0])
			return nil
		}
		cmd.Printf("%s: deleted\n", args[0])
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerFile, "file", "", "read the description from a file")

	companyCmd.AddCommand(registerCmd)
	companyCmd.AddCommand(reportCmd)
	companyCmd.AddCommand(deleteCmd)
}
