package diff

import (
	"fmt"
	"strings"
)

// Difference is one named structural divergence between the student query
// and the reference query. Missing and Extra are relative to the reference:
// missing means present in the reference but not the student.
type Difference struct {
	Dimension Dimension
	Missing   []string
	Extra     []string
}

// Dimension names one compared structural aspect.
type Dimension string

// Compared dimensions, in evaluation order.
const (
	DimSelectColumns Dimension = "select_columns"
	DimAllColumns    Dimension = "all_columns"
	DimTables        Dimension = "tables"
	DimSubqueryCount Dimension = "subquery_count"
	DimWindow        Dimension = "window_functions"
	DimCTE           Dimension = "cte"
	DimGroupByKeys   Dimension = "group_by_keys"
	DimJoins         Dimension = "joins"
)

// String renders the difference for diagnostics and prompt building.
func (d Difference) String() string {
	var parts []string
	if len(d.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(d.Missing, ", "))
	}
	if len(d.Extra) > 0 {
		parts = append(parts, "extra: "+strings.Join(d.Extra, ", "))
	}
	if len(parts) == 0 {
		return string(d.Dimension)
	}
	return fmt.Sprintf("%s (%s)", d.Dimension, strings.Join(parts, "; "))
}

// Compare evaluates every dimension between the student metadata and the
// reference metadata and returns the ordered differences. All dimensions are
// always evaluated; an empty result means structural equality at this
// granularity. Callers must not invoke Compare when the student query failed
// to parse; the parse failure is the only diagnostic for that side.
func Compare(student, reference *Metadata) []Difference {
	var diffs []Difference

	// Projection is compared only when neither side projects *; the sentinel
	// makes column-set comparison meaningless.
	if !student.HasStar() && !reference.HasStar() {
		if missing, extra := missingExtra(student.SelectColumns, reference.SelectColumns); len(missing)+len(extra) > 0 {
			diffs = append(diffs, Difference{DimSelectColumns, missing, extra})
		}
	} else if student.HasStar() != reference.HasStar() {
		d := Difference{Dimension: DimSelectColumns}
		if reference.HasStar() {
			d.Missing = []string{Star}
		} else {
			d.Extra = []string{Star}
		}
		diffs = append(diffs, d)
	}

	if missing, extra := missingExtra(student.AllColumns, reference.AllColumns); len(missing)+len(extra) > 0 {
		diffs = append(diffs, Difference{DimAllColumns, missing, extra})
	}

	if missing, extra := missingExtra(student.Tables, reference.Tables); len(missing)+len(extra) > 0 {
		diffs = append(diffs, Difference{DimTables, missing, extra})
	}

	if student.SubqueryCount != reference.SubqueryCount {
		diffs = append(diffs, Difference{
			Dimension: DimSubqueryCount,
			Missing:   countDelta(reference.SubqueryCount, student.SubqueryCount),
			Extra:     countDelta(student.SubqueryCount, reference.SubqueryCount),
		})
	}

	if student.HasWindow != reference.HasWindow {
		diffs = append(diffs, presenceDiff(DimWindow, student.HasWindow, reference.HasWindow))
	}
	if student.HasCTE != reference.HasCTE {
		diffs = append(diffs, presenceDiff(DimCTE, student.HasCTE, reference.HasCTE))
	}

	if missing, extra := missingExtra(student.GroupByKeys, reference.GroupByKeys); len(missing)+len(extra) > 0 {
		diffs = append(diffs, Difference{DimGroupByKeys, missing, extra})
	}

	if missing, extra := missingExtra(student.JoinClauses, reference.JoinClauses); len(missing)+len(extra) > 0 {
		diffs = append(diffs, Difference{DimJoins, missing, extra})
	}

	return diffs
}

// Strings renders each difference on its own line, in dimension order.
func Strings(diffs []Difference) []string {
	out := make([]string, len(diffs))
	for i, d := range diffs {
		out[i] = d.String()
	}
	return out
}

func countDelta(a, b int) []string {
	if a > b {
		return []string{fmt.Sprintf("%d subquery(ies)", a-b)}
	}
	return nil
}

func presenceDiff(dim Dimension, student, reference bool) Difference {
	d := Difference{Dimension: dim}
	if reference && !student {
		d.Missing = []string{string(dim)}
	} else {
		d.Extra = []string{string(dim)}
	}
	return d
}
