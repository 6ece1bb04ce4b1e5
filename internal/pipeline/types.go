package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// State identifies where a run is in the generate-execute-correct loop.
type State string

const (
	StateGenerating State = "generating"
	StateExecuting  State = "executing"
	StateCorrecting State = "correcting"
	StateSucceeded  State = "succeeded"
	StateExhausted  State = "exhausted"
	StateAnswering  State = "answering"
)

// Request is one natural-language question for the knowledge graph.
// It is immutable for the duration of a run.
type Request struct {
	// Text is the user's question.
	Text string

	// Company optionally names the company the question is about; when
	// set it is surfaced to the generation prompt as context.
	Company string
}

// Validate checks that the request can be processed.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("request text must not be empty")
	}
	return nil
}

// ExecutionResult holds the rows of a successfully executed query.
// A nil ExecutionResult means the query never executed successfully.
type ExecutionResult struct {
	Rows    []map[string]any
	Columns []string
}

// Empty reports whether the query succeeded but matched nothing.
func (r *ExecutionResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// QueryAttempt records one execution of a candidate query.
type QueryAttempt struct {
	// Index is the 0-based execution number within the run.
	Index int

	// Query is the Cypher text that was executed.
	Query string

	// Result is set when execution succeeded.
	Result *ExecutionResult

	// Err is set when execution failed. Result and Err are mutually
	// exclusive.
	Err error
}

// Answer is the terminal output of a run. Text is always non-empty;
// raw internal errors never reach the caller.
type Answer struct {
	// Text is the natural-language answer.
	Text string

	// Succeeded reports whether a query executed successfully.
	Succeeded bool

	// AttemptsUsed is the number of query executions performed.
	AttemptsUsed int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Query is the final Cypher query, successful or not. Empty when
	// generation itself failed.
	Query string
}
