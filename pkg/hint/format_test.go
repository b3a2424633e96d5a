package hint_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/constraint"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
)

type stubCompleter struct {
	text string
	err  error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.text, s.err
}

func matchedDiagnostic() *hint.Diagnostic {
	return &hint.Diagnostic{
		Matched: &constraint.Match{
			Constraint: &constraint.Constraint{
				ID:    5,
				Name:  "missing_table",
				Tier1: "Check the FROM clause.",
				Tier2: "Your query does not reference: {missing_tables}.",
				Tier3: "All required relations must appear in FROM or a join.",
			},
			Evidence: constraint.Evidence{"missing_tables": "admissions"},
		},
	}
}

func TestFormatEqualShortCircuits(t *testing.T) {
	f := hint.NewFormatter(&stubCompleter{text: "should never be used"})
	d := &hint.Diagnostic{Equal: true, Matched: nil}

	for tier := hint.TierPointer; tier <= hint.TierModel; tier++ {
		h, err := f.Format(context.Background(), d, tier)
		require.NoError(t, err)
		assert.Equal(t, hint.CorrectText, h.Text)
		assert.Equal(t, tier, h.Tier)
		assert.Zero(t, h.ConstraintID)
	}
}

func TestFormatTiers(t *testing.T) {
	f := hint.NewFormatter(nil)
	d := matchedDiagnostic()

	tests := []struct {
		tier int
		want string
	}{
		{hint.TierPointer, "Check the FROM clause."},
		{hint.TierTargeted, "Your query does not reference: admissions."},
		{hint.TierConceptual, "All required relations must appear in FROM or a join."},
	}
	for _, tt := range tests {
		h, err := f.Format(context.Background(), d, tt.tier)
		require.NoError(t, err)
		assert.Equal(t, tt.want, h.Text)
		assert.Equal(t, 5, h.ConstraintID)
	}
}

func TestFormatReferenceFailureRendersFully(t *testing.T) {
	catalog := constraint.Catalog()
	var execErr *constraint.Constraint
	for _, c := range catalog {
		if c.Name == "execution_error" {
			execErr = c
		}
	}
	require.NotNil(t, execErr)

	f := hint.NewFormatter(nil)
	d := &hint.Diagnostic{
		Matched: &constraint.Match{
			Constraint: execErr,
			Evidence:   constraint.Evidence{"error": "disk I/O error", "side": "the expected"},
		},
	}
	h, err := f.Format(context.Background(), d, hint.TierTargeted)
	require.NoError(t, err)
	assert.Contains(t, h.Text, "disk I/O error")
	assert.Contains(t, h.Text, "the expected query")
	assert.NotContains(t, h.Text, "{")
}

func TestFormatTierOutOfRange(t *testing.T) {
	f := hint.NewFormatter(nil)
	for _, tier := range []int{0, 5, -1} {
		_, err := f.Format(context.Background(), &hint.Diagnostic{}, tier)
		assert.Error(t, err)
	}
}

func TestFormatNoMatchUsesClassifierSummary(t *testing.T) {
	f := hint.NewFormatter(nil)
	d := &hint.Diagnostic{
		Classification: &classify.Classification{
			Signals: map[classify.Signal]bool{classify.SignalOrdering: true},
			Summary: "The values match the expected output, but their order differs. Check whether explicit ordering is required.",
		},
	}
	h, err := f.Format(context.Background(), d, hint.TierConceptual)
	require.NoError(t, err)
	assert.Contains(t, h.Text, "order differs")
	assert.Zero(t, h.ConstraintID)
}

func TestFormatModelTier(t *testing.T) {
	d := matchedDiagnostic()

	tests := []struct {
		name      string
		completer hint.Completer
		want      string
	}{
		{
			name:      "valid completion",
			completer: &stubCompleter{text: "Think about which relations hold the data you need."},
			want:      "Think about which relations hold the data you need.",
		},
		{
			name:      "nil completer falls back",
			completer: nil,
			want:      hint.FallbackText,
		},
		{
			name:      "completer error falls back",
			completer: &stubCompleter{err: errors.New("timeout")},
			want:      hint.FallbackText,
		},
		{
			name:      "empty output falls back",
			completer: &stubCompleter{text: "   "},
			want:      hint.FallbackText,
		},
		{
			name:      "over the word ceiling falls back",
			completer: &stubCompleter{text: strings.Repeat("word ", 40)},
			want:      hint.FallbackText,
		},
		{
			name:      "trimmed to two sentences",
			completer: &stubCompleter{text: "First thought. Second thought. Third thought."},
			want:      "First thought. Second thought.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := hint.NewFormatter(tt.completer)
			h, err := f.Format(context.Background(), d, hint.TierModel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Text)
			assert.Equal(t, 5, h.ConstraintID)
		})
	}
}
