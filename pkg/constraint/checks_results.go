package constraint

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// bothSucceeded reports whether both executions ran without error.
func bothSucceeded(ctx *Context) bool {
	return ctx.Executed() && ctx.StudentResult.Success && ctx.ReferenceResult.Success
}

// checkStudentNoRows fires when the student query runs but returns nothing
// while the reference returns rows. Usually over-filtering.
func checkStudentNoRows(ctx *Context) (Result, error) {
	if !bothSucceeded(ctx) {
		return noMatch()
	}
	if ctx.StudentResult.RowCount() == 0 && ctx.ReferenceResult.RowCount() > 0 {
		return match(Evidence{
			"reference_rows": strconv.Itoa(ctx.ReferenceResult.RowCount()),
		})
	}
	return noMatch()
}

// checkStudentMoreRows fires when the student returns more rows than
// expected. Usually a missing filter or a join fanning out.
func checkStudentMoreRows(ctx *Context) (Result, error) {
	if !bothSucceeded(ctx) {
		return noMatch()
	}
	if ctx.StudentResult.RowCount() > ctx.ReferenceResult.RowCount() {
		return match(Evidence{
			"student_rows":   strconv.Itoa(ctx.StudentResult.RowCount()),
			"reference_rows": strconv.Itoa(ctx.ReferenceResult.RowCount()),
		})
	}
	return noMatch()
}

// checkAggregateValueMismatch fires when both sides reduce to a single row
// that disagrees: the aggregate computed the wrong value.
func checkAggregateValueMismatch(ctx *Context) (Result, error) {
	if !bothSucceeded(ctx) {
		return noMatch()
	}
	s, r := ctx.StudentResult, ctx.ReferenceResult
	if s.RowCount() == 1 && r.RowCount() == 1 &&
		verify.RowKey(s.Rows[0]) != verify.RowKey(r.Rows[0]) {
		return match(nil)
	}
	return noMatch()
}

// checkOrderingDifference fires when both sides return the same multiset of
// rows in a different sequence.
func checkOrderingDifference(ctx *Context) (Result, error) {
	if !bothSucceeded(ctx) {
		return noMatch()
	}
	s, r := ctx.StudentResult, ctx.ReferenceResult
	if verify.SameRowMultiset(s, r) && !verify.RowsInOrder(s, r) {
		return match(nil)
	}
	return noMatch()
}

// checkOrderByMissing fires when the reference sorts and the student does
// not.
func checkOrderByMissing(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}
	if len(rsc.OrderBy) > 0 && len(ssc.OrderBy) == 0 {
		return match(nil)
	}
	return noMatch()
}

// checkLimitMissing fires when the reference truncates its results and the
// student does not.
func checkLimitMissing(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}
	if rsc.Limit != nil && ssc.Limit == nil {
		return match(nil)
	}
	return noMatch()
}

// checkAliasConflict fires when the student reuses one alias for several
// select items or table references.
func checkAliasConflict(ctx *Context) (Result, error) {
	sc := ctx.studentCore()
	if !ctx.Parsed() || sc == nil {
		return noMatch()
	}

	seen := make(map[string]bool)
	record := func(alias string) string {
		if alias == "" {
			return ""
		}
		key := strings.ToLower(alias)
		if seen[key] {
			return key
		}
		seen[key] = true
		return ""
	}

	for _, item := range sc.Columns {
		if dup := record(item.Alias); dup != "" {
			return match(Evidence{"alias": dup})
		}
	}
	for _, tn := range tableAliases(ctx) {
		if dup := record(tn); dup != "" {
			return match(Evidence{"alias": dup})
		}
	}
	return noMatch()
}

func tableAliases(ctx *Context) []string {
	var aliases []string
	sc := ctx.studentCore()
	if sc == nil || sc.From == nil {
		return nil
	}
	aliases = append(aliases, refAlias(sc.From.Source))
	for _, j := range sc.From.Joins {
		aliases = append(aliases, refAlias(j.Right))
	}
	return aliases
}

func refAlias(ref core.TableRef) string {
	switch t := ref.(type) {
	case *core.TableName:
		return t.Alias
	case *core.DerivedTable:
		return t.Alias
	}
	return ""
}
