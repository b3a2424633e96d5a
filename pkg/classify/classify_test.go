package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

func result(cols []string, rows ...[]any) *verify.ExecutionResult {
	return &verify.ExecutionResult{Success: true, Columns: cols, Rows: rows}
}

func TestClassify(t *testing.T) {
	cols := []string{"name", "age"}

	tests := []struct {
		name      string
		student   *verify.ExecutionResult
		reference *verify.ExecutionResult
		want      classify.Signal
		also      []classify.Signal
	}{
		{
			name:      "student failure",
			student:   &verify.ExecutionResult{Success: false, Error: "no such column: nmae"},
			reference: result(cols, []any{"Ada", 36}),
			want:      classify.SignalRuntimeError,
		},
		{
			name:      "reference failure",
			student:   result(cols, []any{"Ada", 36}),
			reference: &verify.ExecutionResult{Success: false, Error: "timeout"},
			want:      classify.SignalReferenceError,
		},
		{
			name:      "equal results",
			student:   result(cols, []any{"Ada", 36}, []any{"Bob", 41}),
			reference: result(cols, []any{"Ada", 36}, []any{"Bob", 41}),
			want:      classify.SignalEqual,
		},
		{
			name:      "row count mismatch",
			student:   result(cols, []any{"Ada", 36}, []any{"Bob", 41}, []any{"Cyd", 19}),
			reference: result(cols, []any{"Ada", 36}),
			want:      classify.SignalRowCount,
		},
		{
			name:      "ordering difference",
			student:   result(cols, []any{"Bob", 41}, []any{"Ada", 36}),
			reference: result(cols, []any{"Ada", 36}, []any{"Bob", 41}),
			want:      classify.SignalOrdering,
		},
		{
			name:      "fewer rows suggests grouping",
			student:   result(cols, []any{"Ada", 36}),
			reference: result(cols, []any{"Ada", 36}, []any{"Bob", 41}, []any{"Cyd", 19}),
			want:      classify.SignalRowCount,
			also:      []classify.Signal{classify.SignalAggregation},
		},
		{
			name:      "null handling",
			student:   result(cols, []any{"Ada", nil}),
			reference: result(cols, []any{"Ada", 36}),
			want:      classify.SignalNullHandling,
		},
		{
			name:      "value mismatch fallback",
			student:   result(cols, []any{"Ada", 36}),
			reference: result(cols, []any{"Ada", 37}),
			want:      classify.SignalValueMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify.Classify(tt.student, tt.reference)
			require.NotEmpty(t, c.Signals)
			assert.True(t, c.Has(tt.want), "expected signal %s, got %v", tt.want, c.Signals)
			for _, s := range tt.also {
				assert.True(t, c.Has(s), "expected secondary signal %s", s)
			}
			assert.NotEmpty(t, c.Summary)
		})
	}
}

func TestClassifySummaryFollowsPrecedence(t *testing.T) {
	cols := []string{"n"}

	// Fewer student rows triggers both row-count and aggregation signals;
	// the summary must come from the row-count signal.
	c := classify.Classify(
		result(cols, []any{1}),
		result(cols, []any{1}, []any{2}),
	)
	assert.True(t, c.Has(classify.SignalRowCount))
	assert.True(t, c.Has(classify.SignalAggregation))
	assert.Contains(t, c.Summary, "number of returned results")
}

func TestClassifyNilResults(t *testing.T) {
	c := classify.Classify(nil, nil)
	assert.True(t, c.Has(classify.SignalRuntimeError))
	assert.NotEmpty(t, c.Summary)
}
