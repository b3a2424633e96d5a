package constraint

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
	"github.com/leapstack-labs/sqlmentor/pkg/format"
)

// checkMissingJoinCondition fires when an explicit JOIN carries neither an
// ON condition nor a USING list. CROSS and NATURAL joins legitimately have
// none.
func checkMissingJoinCondition(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	for _, j := range core.CollectJoins(ctx.StudentStmt) {
		if j.Type == core.JoinCross || j.Type == core.JoinComma || j.Natural {
			continue
		}
		if j.Condition == nil && len(j.Using) == 0 {
			return match(Evidence{"join_table": tableRefName(j.Right)})
		}
	}
	return noMatch()
}

// checkCartesianProduct fires on comma-joined tables with no WHERE clause to
// relate them: every row pairs with every row.
func checkCartesianProduct(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	sc := ctx.studentCore()
	if sc == nil || sc.From == nil || sc.Where != nil {
		return noMatch()
	}
	for _, j := range sc.From.Joins {
		if j.Type == core.JoinComma {
			return match(Evidence{"tables": strings.Join(studentTables(ctx), ", ")})
		}
	}
	return noMatch()
}

// checkSelfJoinAlias fires when the same table appears more than once in a
// single FROM clause without distinct aliases to tell the instances apart.
// Each FROM clause is checked on its own: the same table in two set-operation
// arms or in a subquery is not a self-join.
func checkSelfJoinAlias(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	var matched string
	core.Walk(ctx.StudentStmt, func(n any) bool {
		fc, ok := n.(*core.FromClause)
		if !ok || matched != "" {
			return matched == ""
		}
		if name := duplicateUnaliasedTable(fc); name != "" {
			matched = name
			return false
		}
		return true
	})
	if matched != "" {
		return match(Evidence{"table": matched})
	}
	return noMatch()
}

// duplicateUnaliasedTable reports a table named twice in one FROM clause with
// a colliding reference name, or "" when every instance is distinguishable.
func duplicateUnaliasedTable(fc *core.FromClause) string {
	refs := make([]*core.TableName, 0, len(fc.Joins)+1)
	if tn, ok := fc.Source.(*core.TableName); ok {
		refs = append(refs, tn)
	}
	for _, j := range fc.Joins {
		if tn, ok := j.Right.(*core.TableName); ok {
			refs = append(refs, tn)
		}
	}

	byName := make(map[string][]*core.TableName)
	for _, tn := range refs {
		key := strings.ToLower(tn.Name)
		byName[key] = append(byName[key], tn)
	}
	for name, tns := range byName {
		if len(tns) < 2 {
			continue
		}
		seen := make(map[string]bool)
		for _, tn := range tns {
			ref := strings.ToLower(tn.RefName())
			if seen[ref] {
				return name
			}
			seen[ref] = true
		}
	}
	return ""
}

// checkJoinOnConstant fires when a join condition compares two literals
// (e.g. ON 1 = 1), which degenerates to a cross join.
func checkJoinOnConstant(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	for _, j := range core.CollectJoins(ctx.StudentStmt) {
		be, ok := j.Condition.(*core.BinaryExpr)
		if !ok {
			continue
		}
		if isLiteral(be.Left) && isLiteral(be.Right) {
			return match(Evidence{"condition": format.Expr(be)})
		}
	}
	return noMatch()
}

// checkJoinTypeMismatch fires when both sides join the same tables but the
// join clauses differ, typically INNER vs LEFT.
func checkJoinTypeMismatch(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if _, ok := ctx.diffFor(diff.DimTables); ok {
		return noMatch() // table membership differs, not just the join type
	}
	if d, ok := ctx.diffFor(diff.DimJoins); ok && len(d.Missing) > 0 && len(d.Extra) > 0 {
		return match(Evidence{
			"expected": strings.Join(d.Missing, "; "),
			"actual":   strings.Join(d.Extra, "; "),
		})
	}
	return noMatch()
}

func tableRefName(ref core.TableRef) string {
	if tn, ok := ref.(*core.TableName); ok {
		return tn.Name
	}
	return "subquery"
}

func studentTables(ctx *Context) []string {
	var names []string
	for _, tn := range core.CollectTableNames(ctx.StudentStmt) {
		names = append(names, strings.ToLower(tn.Name))
	}
	return names
}

func isLiteral(e core.Expr) bool {
	_, ok := e.(*core.Literal)
	return ok
}
