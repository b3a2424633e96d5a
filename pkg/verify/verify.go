// Package verify runs a student query and a reference query against isolated
// copies of the same dataset and compares their results under bag semantics.
package verify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExecutionResult is the outcome of running one query. Immutable once
// produced.
type ExecutionResult struct {
	Success bool
	Error   string
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of result rows.
func (r *ExecutionResult) RowCount() int {
	return len(r.Rows)
}

// Runner executes a query against a fresh, isolated dataset instance. The
// setup script is applied before the query; no state survives between Run
// calls, so one query's side effects cannot leak into another run.
type Runner interface {
	Run(ctx context.Context, setup, query string) (*ExecutionResult, error)
}

// Comparison bundles both execution results and their equality.
type Comparison struct {
	Student   *ExecutionResult
	Reference *ExecutionResult
	Equal     bool
}

// ExecuteAndCompare runs both queries concurrently against isolated sessions
// and compares the results. Runner transport errors are folded into the
// corresponding ExecutionResult; the returned error only reflects context
// cancellation.
func ExecuteAndCompare(ctx context.Context, runner Runner, studentSQL, referenceSQL, setupSQL string) (*Comparison, error) {
	var student, reference *ExecutionResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		student = runQuery(gctx, runner, setupSQL, studentSQL)
		return nil
	})
	g.Go(func() error {
		reference = runQuery(gctx, runner, setupSQL, referenceSQL)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Comparison{
		Student:   student,
		Reference: reference,
		Equal:     ResultsEqual(student, reference),
	}, nil
}

// runQuery invokes the runner and normalizes failures into the result.
func runQuery(ctx context.Context, runner Runner, setup, query string) *ExecutionResult {
	res, err := runner.Run(ctx, setup, query)
	if err != nil {
		return &ExecutionResult{Success: false, Error: err.Error()}
	}
	return res
}
