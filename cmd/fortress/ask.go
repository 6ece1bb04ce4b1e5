package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/pipeline"
)

var askCompany string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the knowledge graph a natural-language question",
	Example: `  fortress ask "금리 인상에 가장 취약한 제조기업은?"
  fortress ask --company 대한정밀 "이 회사가 받을 수 있는 KB 상품은?"`,
	Args: cobra.MinimumNArgs(1),
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

		answer := newPipeline(provider, store).Run(ctx, pipeline.Request{
			Text:    strings.Join(args, " "),
			Company: askCompany,
		})

		cmd.Println(answer.Text)
		if verbose {
			cmd.Printf("\n[succeeded=%t attempts=%d elapsed=%s]\n",
				answer.Succeeded, answer.AttemptsUsed, answer.Elapsed)
			if answer.Query != "" {
				cmd.Printf("[query]\n%s\n", answer.Query)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askCompany, "company", "", "company the question is about")
}
