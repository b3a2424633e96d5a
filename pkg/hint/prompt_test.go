package hint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

func TestBuildPrompt(t *testing.T) {
	d := matchedDiagnostic()
	d.StructuralDiffs = []diff.Difference{
		{Dimension: diff.DimTables, Missing: []string{"admissions"}},
		{Dimension: diff.DimSelectColumns, Missing: []string{"diagnosis"}},
	}
	d.Classification = &classify.Classification{
		Signals: map[classify.Signal]bool{classify.SignalRowCount: true},
	}
	d.Comparison = &verify.Comparison{
		Student:   &verify.ExecutionResult{Success: true, Rows: [][]any{{1}}},
		Reference: &verify.ExecutionResult{Success: true, Rows: [][]any{{1}, {2}, {3}}},
	}

	prompt := hint.BuildPrompt(d)

	assert.Contains(t, prompt, "category: missing_table")
	assert.Contains(t, prompt, "differing aspects: tables, select_columns")
	assert.Contains(t, prompt, "semantic signals: row_count_mismatch")
	assert.Contains(t, prompt, "evidence fields: missing_tables")
	assert.Contains(t, prompt, "row count delta (student minus expected): -2")

	// No table or column names, and no query text, may leak into the prompt.
	assert.NotContains(t, prompt, "admissions")
	assert.NotContains(t, prompt, "diagnosis")
	assert.NotContains(t, prompt, "SELECT")
}

func TestBuildPromptEmptyDiagnostic(t *testing.T) {
	prompt := hint.BuildPrompt(&hint.Diagnostic{})
	assert.Contains(t, prompt, "category: none")
	assert.Contains(t, prompt, "differing aspects: none")
	assert.Contains(t, prompt, "row count delta (student minus expected): 0")
}
