// Package canon produces canonical forms of SQL queries for stable
// comparison. Canonicalization erases author-controlled but semantically
// irrelevant structure (select-list ordering, whitespace, keyword case) so
// that equivalent queries compare equal as strings.
package canon

import (
	"sort"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/format"
	"github.com/leapstack-labs/sqlmentor/pkg/parser"
)

// CanonicalForm is the canonical text of a query together with the AST the
// text was produced from.
type CanonicalForm struct {
	Text string
	Stmt *core.SelectStmt

	// Degraded is set when re-serialization did not reach a fixed point and
	// the original text was kept verbatim.
	Degraded bool
}

// Canonicalize parses the query, reorders the top-level select list into a
// stable order, and re-serializes. The serialization is parsed once more to
// verify it reproduces itself; when it does not, the original text is kept
// verbatim and the form is marked degraded.
//
// A parse failure of the input is returned as-is (a *parser.ParseError);
// formatting problems never surface as errors.
func Canonicalize(sql, dialect string) (*CanonicalForm, error) {
	stmt, err := parser.Parse(sql, dialect)
	if err != nil {
		return nil, err
	}

	sortSelectList(stmt)
	text := format.Format(stmt)

	// Fixed-point check: the canonical text must reproduce itself.
	restmt, err := parser.Parse(text, dialect)
	if err != nil || format.Format(restmt) != text {
		return &CanonicalForm{Text: sql, Stmt: stmt, Degraded: true}, nil
	}

	return &CanonicalForm{Text: text, Stmt: restmt}, nil
}

// sortSelectList orders the outermost select list by each item's serialized
// text. Only the top level is reordered; nested selects keep their order.
func sortSelectList(stmt *core.SelectStmt) {
	if stmt == nil || stmt.Body == nil || stmt.Body.Left == nil {
		return
	}
	cols := stmt.Body.Left.Columns
	sort.SliceStable(cols, func(i, j int) bool {
		return selectItemKey(cols[i]) < selectItemKey(cols[j])
	})
}

// selectItemKey is the total order used for select-list sorting: the compact
// serialized form of the item.
func selectItemKey(item core.SelectItem) string {
	switch {
	case item.Star:
		return "*"
	case item.TableStar != "":
		return item.TableStar + ".*"
	default:
		key := format.Expr(item.Expr)
		if item.Alias != "" {
			key += " AS " + item.Alias
		}
		return key
	}
}
