package constraint

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
)

// checkExtraSelectColumn fires when the student projects named columns the
// reference does not ask for. The * sentinel is left to the select_star rule.
func checkExtraSelectColumn(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if d, ok := ctx.diffFor(diff.DimSelectColumns); ok {
		if extra := withoutStar(d.Extra); len(extra) > 0 {
			return match(Evidence{"extra_columns": strings.Join(extra, ", ")})
		}
	}
	return noMatch()
}

// checkMissingSelectColumn fires when required projection columns are absent.
func checkMissingSelectColumn(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if d, ok := ctx.diffFor(diff.DimSelectColumns); ok {
		if missing := withoutStar(d.Missing); len(missing) > 0 {
			return match(Evidence{"missing_columns": strings.Join(missing, ", ")})
		}
	}
	return noMatch()
}

func withoutStar(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != diff.Star {
			out = append(out, c)
		}
	}
	return out
}

// checkAggregateWithoutGroupBy fires when the student mixes aggregates with
// plain columns in the projection but has no GROUP BY clause.
func checkAggregateWithoutGroupBy(ctx *Context) (Result, error) {
	sc := ctx.studentCore()
	if !ctx.Parsed() || sc == nil || len(sc.GroupBy) > 0 {
		return noMatch()
	}

	hasAggregate := false
	var bare []string
	for _, item := range sc.Columns {
		if item.Star || item.TableStar != "" || item.Expr == nil {
			continue
		}
		itemHasAgg := false
		core.Walk(item.Expr, func(n any) bool {
			if fc, ok := n.(*core.FuncCall); ok && fc.IsAggregate() {
				itemHasAgg = true
				return false
			}
			return true
		})
		if itemHasAgg {
			hasAggregate = true
			continue
		}
		if cr, ok := item.Expr.(*core.ColumnRef); ok {
			bare = append(bare, strings.ToLower(cr.Column))
		}
	}

	if hasAggregate && len(bare) > 0 {
		return match(Evidence{"ungrouped_columns": strings.Join(bare, ", ")})
	}
	return noMatch()
}

// checkGroupByMissingColumns fires when the reference groups by keys the
// student does not.
func checkGroupByMissingColumns(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if d, ok := ctx.diffFor(diff.DimGroupByKeys); ok && len(d.Missing) > 0 {
		return match(Evidence{"missing_group_by": strings.Join(d.Missing, ", ")})
	}
	return noMatch()
}

// checkHavingWithoutAggregate fires when HAVING is used although the query
// aggregates nothing.
func checkHavingWithoutAggregate(ctx *Context) (Result, error) {
	sc := ctx.studentCore()
	if !ctx.Parsed() || sc == nil || sc.Having == nil {
		return noMatch()
	}
	for _, fc := range core.CollectFuncCalls(ctx.StudentStmt) {
		if fc.IsAggregate() {
			return noMatch()
		}
	}
	return match(nil)
}

// checkAggregationAliasMissing fires when the reference aliases its
// projection but the student aliases nothing. Lowest-priority style nudge.
func checkAggregationAliasMissing(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}

	var expected []string
	for _, item := range rsc.Columns {
		if item.Alias != "" {
			expected = append(expected, item.Alias)
		}
	}
	if len(expected) == 0 {
		return noMatch()
	}
	for _, item := range ssc.Columns {
		if item.Alias != "" {
			return noMatch()
		}
	}
	return match(Evidence{"expected_aliases": strings.Join(expected, ", ")})
}

// checkSelectStar fires when the student projects * but the reference names
// its columns.
func checkSelectStar(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if ctx.StudentMeta.HasStar() && !ctx.ReferenceMeta.HasStar() {
		return match(nil)
	}
	return noMatch()
}

// checkCaseWhenIncomplete fires when a student CASE expression has no ELSE
// arm while the reference leaves no such gap: unmatched rows silently become
// NULL. A CASE that fails to close with END never gets here; it is a parse
// error.
func checkCaseWhenIncomplete(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if hasIncompleteCase(ctx.StudentStmt) && !hasIncompleteCase(ctx.ReferenceStmt) {
		return match(nil)
	}
	return noMatch()
}

func hasIncompleteCase(stmt *core.SelectStmt) bool {
	incomplete := false
	core.Walk(stmt, func(n any) bool {
		if ce, ok := n.(*core.CaseExpr); ok && ce.Else == nil {
			incomplete = true
			return false
		}
		return true
	})
	return incomplete
}

// checkDistinctMismatch fires when exactly one side deduplicates.
func checkDistinctMismatch(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}
	if ssc.Distinct != rsc.Distinct {
		ev := Evidence{"student_distinct": boolWord(ssc.Distinct)}
		return match(ev)
	}
	return noMatch()
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
