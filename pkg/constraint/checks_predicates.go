package constraint

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/format"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// checkMissingWhere fires when the reference filters rows but the student
// does not.
func checkMissingWhere(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}
	if rsc.Where != nil && ssc.Where == nil {
		return match(nil)
	}
	return noMatch()
}

// checkExtraWhere fires when the student filters although the reference
// does not.
func checkExtraWhere(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil {
		return noMatch()
	}
	if ssc.Where != nil && rsc.Where == nil {
		return match(Evidence{"where": format.Expr(ssc.Where)})
	}
	return noMatch()
}

// checkWhereDiffers fires when both sides filter but the predicates differ
// textually after canonical serialization.
func checkWhereDiffers(ctx *Context) (Result, error) {
	ssc, rsc := ctx.studentCore(), ctx.referenceCore()
	if !ctx.Parsed() || ssc == nil || rsc == nil || ssc.Where == nil || rsc.Where == nil {
		return noMatch()
	}
	sw := strings.ToLower(format.Expr(ssc.Where))
	rw := strings.ToLower(format.Expr(rsc.Where))
	if sw != rw {
		return match(Evidence{"student_where": sw})
	}
	return noMatch()
}

// checkAggregateInWhere fires when the student's WHERE clause contains an
// aggregate call. Aggregates belong in HAVING.
func checkAggregateInWhere(ctx *Context) (Result, error) {
	sc := ctx.studentCore()
	if !ctx.Parsed() || sc == nil || sc.Where == nil {
		return noMatch()
	}
	var found string
	core.Walk(sc.Where, func(n any) bool {
		if fc, ok := n.(*core.FuncCall); ok && fc.IsAggregate() {
			found = strings.ToUpper(fc.Name)
			return false
		}
		return true
	})
	if found != "" {
		return match(Evidence{"function": found})
	}
	return noMatch()
}

// checkContradictoryPredicate fires on literal comparisons that are always
// false (1 = 0), which silently empty the result.
func checkContradictoryPredicate(ctx *Context) (Result, error) {
	if cond := findLiteralComparison(ctx, false); cond != "" {
		return match(Evidence{"condition": cond})
	}
	return noMatch()
}

// checkTautologyPredicate fires on literal comparisons that are always true
// (1 = 1). Harmless but a smell; lowest priority among predicate rules.
func checkTautologyPredicate(ctx *Context) (Result, error) {
	if cond := findLiteralComparison(ctx, true); cond != "" {
		return match(Evidence{"condition": cond})
	}
	return noMatch()
}

// findLiteralComparison scans the student query for an equality between two
// literals and returns its serialization when its truth value matches want.
func findLiteralComparison(ctx *Context, want bool) string {
	if !ctx.Parsed() {
		return ""
	}
	for _, be := range core.CollectBinaryExprs(ctx.StudentStmt) {
		if be.Op != token.EQ && be.Op != token.NE {
			continue
		}
		left, lok := be.Left.(*core.Literal)
		right, rok := be.Right.(*core.Literal)
		if !lok || !rok {
			continue
		}
		truth := left.Value == right.Value
		if be.Op == token.NE {
			truth = !truth
		}
		if truth == want {
			return format.Expr(be)
		}
	}
	return ""
}

// checkNullComparison fires when NULL is compared with = or !=, which never
// matches anything in SQL's three-valued logic.
func checkNullComparison(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	for _, be := range core.CollectBinaryExprs(ctx.StudentStmt) {
		if be.Op != token.EQ && be.Op != token.NE {
			continue
		}
		if isNullLiteral(be.Left) || isNullLiteral(be.Right) {
			return match(Evidence{"condition": format.Expr(be)})
		}
	}
	return noMatch()
}

// checkLiteralTypeMismatch fires when a numeric value is written as a quoted
// string ('42'), relying on implicit casts.
func checkLiteralTypeMismatch(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	for _, be := range core.CollectBinaryExprs(ctx.StudentStmt) {
		if !isComparisonOp(be.Op) {
			continue
		}
		for _, side := range []core.Expr{be.Left, be.Right} {
			lit, ok := side.(*core.Literal)
			if ok && lit.Type == core.LiteralString && isNumericText(lit.Value) {
				return match(Evidence{"literal": "'" + lit.Value + "'"})
			}
		}
	}
	return noMatch()
}

// checkLikeUsage fires when the student pattern-matches with LIKE but the
// expected solution does not; an exact comparison is usually what was asked.
func checkLikeUsage(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if findLikeExpr(ctx.ReferenceStmt) != nil {
		return noMatch()
	}
	if le := findLikeExpr(ctx.StudentStmt); le != nil {
		return match(Evidence{"pattern": format.Expr(le.Pattern)})
	}
	return noMatch()
}

func findLikeExpr(stmt *core.SelectStmt) *core.LikeExpr {
	var found *core.LikeExpr
	core.Walk(stmt, func(n any) bool {
		if le, ok := n.(*core.LikeExpr); ok {
			found = le
			return false
		}
		return true
	})
	return found
}

func isNullLiteral(e core.Expr) bool {
	lit, ok := e.(*core.Literal)
	return ok && lit.Type == core.LiteralNull
}

func isComparisonOp(op token.TokenType) bool {
	switch op {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return true
	}
	return false
}

func isNumericText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
