// Package classify produces a coarse semantic signal when no constraint
// matched but the executed results still differ. It is the pipeline's
// last-resort complement to the rule engine, never a replacement.
package classify

import "github.com/leapstack-labs/sqlmentor/pkg/verify"

// Signal is one coarse classification of an execution-level discrepancy.
type Signal string

// Signals in precedence order: the first applicable one names the summary.
const (
	SignalRuntimeError   Signal = "runtime_error"
	SignalReferenceError Signal = "reference_error"
	SignalEqual          Signal = "equal"
	SignalRowCount       Signal = "row_count_mismatch"
	SignalOrdering       Signal = "ordering_difference"
	SignalAggregation    Signal = "aggregation_or_grouping_issue"
	SignalNullHandling   Signal = "null_handling_difference"
	SignalValueMismatch  Signal = "value_mismatch"
)

// Classification is the set of applicable signals and the summary derived
// from the highest-precedence one.
type Classification struct {
	Signals map[Signal]bool
	Summary string
}

// Has reports whether the signal applies.
func (c *Classification) Has(s Signal) bool {
	return c.Signals[s]
}

var summaries = map[Signal]string{
	SignalRuntimeError:   "Your query failed to execute. Fix the reported error before comparing results.",
	SignalReferenceError: "The reference query failed to execute; the comparison could not be completed.",
	SignalEqual:          "The outputs match.",
	SignalRowCount:       "The number of returned results does not match the expected output. This often indicates missing filters, joins, or grouping logic.",
	SignalOrdering:       "The values match the expected output, but their order differs. Check whether explicit ordering is required.",
	SignalAggregation:    "The output size suggests that rows may be grouped or aggregated incorrectly. Review how records are combined.",
	SignalNullHandling:   "The output differs in how missing values are handled. Check how NULL values are treated in conditions or expressions.",
	SignalValueMismatch:  "The output differs from the expected result. Review the logic that determines which values are produced.",
}

// Classify compares two execution results and derives every applicable
// signal. The summary always reflects the highest-precedence signal. Pure
// and stateless.
func Classify(student, reference *verify.ExecutionResult) *Classification {
	c := &Classification{Signals: make(map[Signal]bool)}

	switch {
	case student == nil || !student.Success:
		c.Signals[SignalRuntimeError] = true
	case reference == nil || !reference.Success:
		c.Signals[SignalReferenceError] = true
	case verify.RowsInOrder(student, reference):
		c.Signals[SignalEqual] = true
	default:
		if student.RowCount() != reference.RowCount() {
			c.Signals[SignalRowCount] = true
		}
		if verify.SameRowMultiset(student, reference) && !verify.RowsInOrder(student, reference) {
			c.Signals[SignalOrdering] = true
		}
		if student.RowCount() < reference.RowCount() && student.RowCount() > 0 {
			c.Signals[SignalAggregation] = true
		}
		if verify.HasNull(student) != verify.HasNull(reference) {
			c.Signals[SignalNullHandling] = true
		}
		if len(c.Signals) == 0 {
			c.Signals[SignalValueMismatch] = true
		}
	}

	c.Summary = summaries[first(c.Signals)]
	return c
}

// precedence is the evaluation order for summary selection.
var precedence = []Signal{
	SignalRuntimeError,
	SignalReferenceError,
	SignalEqual,
	SignalRowCount,
	SignalOrdering,
	SignalAggregation,
	SignalNullHandling,
	SignalValueMismatch,
}

func first(signals map[Signal]bool) Signal {
	for _, s := range precedence {
		if signals[s] {
			return s
		}
	}
	return SignalValueMismatch
}
