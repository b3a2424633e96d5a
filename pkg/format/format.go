// Package format serializes parsed SQL statements to a compact, deterministic
// single-line form: uppercase keywords, single spaces, identifiers quoted only
// when necessary. Two statements with the same structure always serialize to
// the same text, which is what the canonicalizer and the structural differ
// compare.
package format

import "github.com/leapstack-labs/sqlmentor/pkg/core"

// Format serializes a statement to its compact canonical text.
func Format(stmt *core.SelectStmt) string {
	p := newPrinter()
	p.formatSelectStmt(stmt)
	return p.String()
}

// Expr serializes a single expression to its compact canonical text.
func Expr(e core.Expr) string {
	p := newPrinter()
	p.formatExpr(e)
	return p.String()
}
