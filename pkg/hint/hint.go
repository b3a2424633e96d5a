// Package hint renders a diagnosis into a tiered, user-facing hint. Tiers
// escalate in specificity: a terse clause pointer, an evidence-grounded
// statement, a conceptual explanation, and a model-phrased conceptual hint.
// The rendered text never reveals the reference query.
package hint

import (
	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/constraint"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// Tier levels.
const (
	TierPointer    = 1
	TierTargeted   = 2
	TierConceptual = 3
	TierModel      = 4
)

// CorrectText is returned for every tier when both executions succeed and
// the results are equal.
const CorrectText = "Your query is correct. It produces the expected output."

// Diagnostic is the outcome of one full comparison: the winning constraint
// (if any), the structural differences, the execution results, and the
// fallback classification.
type Diagnostic struct {
	Equal               bool
	Matched             *constraint.Match
	StructuralDiffs     []diff.Difference
	Classification      *classify.Classification
	Comparison          *verify.Comparison
	CanonicalStudent    string
	CanonicalReference  string
	StudentParseError   string
	CheckerErrors       map[string]string
}

// ConstraintID returns the matched constraint's id, or 0 when none matched.
func (d *Diagnostic) ConstraintID() int {
	if d.Matched == nil {
		return 0
	}
	return d.Matched.Constraint.ID
}

// ConstraintName returns the matched constraint's name, or "".
func (d *Diagnostic) ConstraintName() string {
	if d.Matched == nil {
		return ""
	}
	return d.Matched.Constraint.Name
}

// Hint is the rendered artifact handed back to the caller.
type Hint struct {
	Tier         int    `json:"tier"`
	Text         string `json:"text"`
	ConstraintID int    `json:"constraint_id,omitempty"`
}
