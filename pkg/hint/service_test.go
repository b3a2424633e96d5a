package hint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// fakeRunner serves canned results keyed by query text.
type fakeRunner struct {
	results map[string]*verify.ExecutionResult
}

func (f *fakeRunner) Run(_ context.Context, _, query string) (*verify.ExecutionResult, error) {
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return &verify.ExecutionResult{Success: false, Error: "no such query"}, nil
}

func TestServiceCorrectQuery(t *testing.T) {
	rows := &verify.ExecutionResult{
		Success: true,
		Columns: []string{"name"},
		Rows:    [][]any{{"Ada"}, {"Bob"}},
	}
	runner := &fakeRunner{results: map[string]*verify.ExecutionResult{
		"SELECT name FROM patients": rows,
		"select name from patients": rows,
	}}
	svc := hint.NewService(runner, nil, nil)

	h, d, err := svc.HintFor(context.Background(), hint.Request{
		StudentSQL:   "select name from patients",
		ReferenceSQL: "SELECT name FROM patients",
		Dialect:      "ansi",
	}, hint.TierModel)
	require.NoError(t, err)
	assert.True(t, d.Equal)
	assert.Nil(t, d.Matched)
	assert.Equal(t, hint.CorrectText, h.Text)
}

func TestServiceMissingTable(t *testing.T) {
	runner := &fakeRunner{results: map[string]*verify.ExecutionResult{
		"SELECT name FROM patients": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}},
		},
		"SELECT p.name FROM patients p JOIN admissions a ON a.patient_id = p.id": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}, {"Ada"}},
		},
	}}
	svc := hint.NewService(runner, nil, nil)

	h, d, err := svc.HintFor(context.Background(), hint.Request{
		StudentSQL:   "SELECT name FROM patients",
		ReferenceSQL: "SELECT p.name FROM patients p JOIN admissions a ON a.patient_id = p.id",
		Dialect:      "ansi",
	}, hint.TierTargeted)
	require.NoError(t, err)
	assert.False(t, d.Equal)
	require.NotNil(t, d.Matched)
	assert.Equal(t, "missing_table", d.ConstraintName())
	assert.Contains(t, h.Text, "admissions")
	assert.Equal(t, d.ConstraintID(), h.ConstraintID)
}

func TestServiceStudentParseError(t *testing.T) {
	runner := &fakeRunner{results: map[string]*verify.ExecutionResult{
		"SELECT name FROM patients": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}},
		},
	}}
	svc := hint.NewService(runner, nil, nil)

	h, d, err := svc.HintFor(context.Background(), hint.Request{
		StudentSQL:   "SELEC name FROM patients",
		ReferenceSQL: "SELECT name FROM patients",
		Dialect:      "ansi",
	}, hint.TierPointer)
	require.NoError(t, err)
	assert.Equal(t, "parse_error", d.ConstraintName())
	assert.NotEmpty(t, d.StudentParseError)
	assert.NotEmpty(t, h.Text)
}

func TestServiceReferenceParseErrorIsAnError(t *testing.T) {
	svc := hint.NewService(&fakeRunner{}, nil, nil)
	_, err := svc.Diagnose(context.Background(), hint.Request{
		StudentSQL:   "SELECT name FROM patients",
		ReferenceSQL: "SELECT FROM",
		Dialect:      "ansi",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference")
}

func TestServiceReorderedRowsAreCorrect(t *testing.T) {
	// Row order is insignificant under bag semantics, so reordered but
	// otherwise identical outputs short-circuit to the correct hint.
	runner := &fakeRunner{results: map[string]*verify.ExecutionResult{
		"SELECT name FROM patients": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}, {"Bob"}},
		},
		"SELECT name FROM patients ORDER BY name DESC": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Bob"}, {"Ada"}},
		},
	}}
	svc := hint.NewService(runner, nil, nil)

	h, d, err := svc.HintFor(context.Background(), hint.Request{
		StudentSQL:   "SELECT name FROM patients",
		ReferenceSQL: "SELECT name FROM patients ORDER BY name DESC",
		Dialect:      "ansi",
	}, hint.TierPointer)
	require.NoError(t, err)
	assert.True(t, d.Equal)
	assert.Equal(t, hint.CorrectText, h.Text)
}

func TestServiceClassifierFallback(t *testing.T) {
	// Structurally identical queries whose outputs diverge in values only:
	// no constraint applies, so the classifier's summary carries the hint.
	runner := &fakeRunner{results: map[string]*verify.ExecutionResult{
		"SELECT name FROM patients p": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}, {"Bob"}},
		},
		"SELECT name FROM patients": {
			Success: true,
			Columns: []string{"name"},
			Rows:    [][]any{{"Ada"}, {"Cyd"}},
		},
	}}
	svc := hint.NewService(runner, nil, nil)

	h, d, err := svc.HintFor(context.Background(), hint.Request{
		StudentSQL:   "SELECT name FROM patients p",
		ReferenceSQL: "SELECT name FROM patients",
		Dialect:      "ansi",
	}, hint.TierConceptual)
	require.NoError(t, err)
	assert.False(t, d.Equal)
	assert.Nil(t, d.Matched)
	require.NotNil(t, d.Classification)
	assert.True(t, d.Classification.Has(classify.SignalValueMismatch))
	assert.Contains(t, h.Text, "differs from the expected result")
}
