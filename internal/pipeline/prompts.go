package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

const generateSystemPrompt = `You are the Cypher expert for a financial knowledge graph serving
Korean SME manufacturers. Convert the user's question into a single
correct Cypher query.

Rules:
1. Return only the Cypher query, no backticks and no explanation.
2. Follow the graph schema exactly.
3. Use a sensible LIMIT for performance.
4. Use ORDER BY so the results are meaningful.`

const correctSystemPrompt = `You are the Cypher error-correction expert for a financial knowledge
graph. Analyze the failed query and fix it.

Guidelines:
1. Match node labels and property names exactly to the schema.
2. Fix relationship types and directions.
3. Fix syntax errors (quotes, parentheses, keywords).
4. Remove properties or relationships that do not exist.
5. Add sensible filters and a LIMIT for performance.

Return only the corrected Cypher query, with no explanation.`

const answerSystemPrompt = `You are an SME finance specialist at KB Kookmin Bank. Using the graph
query results, give a professional answer that is easy to understand.

Guidelines:
1. Include concrete figures from the data.
2. Give actionable advice.
3. Highlight the practical benefit of KB products or policies.
4. Explain jargon in plain terms.
5. Answer in Korean, in a friendly tone.

Even when the results are empty or an error occurred, offer a helpful
alternative.`

// FallbackQuery is the safe query substituted when correction itself
// fails. It always executes and carries an apology row.
const FallbackQuery = `RETURN "쿼리 수정에 실패했습니다. 다시 시도해주세요." AS message`

// fallbackAnswer is the last-resort answer text when even answer
// synthesis fails. Run never returns an empty answer.
const fallbackAnswer = "죄송합니다. 요청을 처리하는 중 문제가 발생했습니다. 잠시 후 다시 시도해주세요."

func buildGeneratePrompt(schema string, examples []string, req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Graph schema:\n%s\n\n", schema)
	if len(examples) > 0 {
		fmt.Fprintf(&b, "Example questions and queries:\n%s\n\n", strings.Join(examples, "\n"))
	}
	if req.Company != "" {
		fmt.Fprintf(&b, "The question is about the company: %s\n\n", req.Company)
	}
	fmt.Fprintf(&b, "User question: %s\n\nCypher query:", req.Text)
	return b.String()
}

func buildCorrectPrompt(schema string, req Request, failedQuery, latestError string, recent []ErrorEntry) string {
	historyJSON, err := json.MarshalIndent(recent, "", "  ")
	if err != nil {
		historyJSON = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Graph schema:\n%s\n\n", schema)
	fmt.Fprintf(&b, "User intent: %s\n\n", req.Text)
	fmt.Fprintf(&b, "Failed query:\n%s\n\n", failedQuery)
	fmt.Fprintf(&b, "Error message:\n%s\n\n", latestError)
	fmt.Fprintf(&b, "Previous correction history:\n%s\n\n", historyJSON)
	b.WriteString("Corrected Cypher query:")
	return b.String()
}

func buildAnswerPrompt(req Request, query string, result *ExecutionResult, failure string) string {
	var resultText string
	switch {
	case failure != "":
		resultText = fmt.Sprintf("The query could not be executed. Last error: %s", failure)
	case result.Empty():
		resultText = "The query executed successfully but returned no rows."
	default:
		data, err := json.MarshalIndent(result.Rows, "", "  ")
		if err != nil {
			data = []byte(fmt.Sprintf("%v", result.Rows))
		}
		resultText = string(data)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User question: %s\n\n", req.Text)
	if query != "" {
		fmt.Fprintf(&b, "Executed Cypher query:\n%s\n\n", query)
	}
	fmt.Fprintf(&b, "Database results:\n%s\n\n", resultText)
	b.WriteString("Answer the user's question based on the results above.")
	return b.String()
}
