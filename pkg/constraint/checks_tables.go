package constraint

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/diff"
)

// checkMissingTable fires when the reference reads a table the student never
// references.
func checkMissingTable(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if d, ok := ctx.diffFor(diff.DimTables); ok && len(d.Missing) > 0 {
		return match(Evidence{"missing_tables": strings.Join(d.Missing, ", ")})
	}
	return noMatch()
}

// checkExtraTable fires when the student references tables the reference
// does not need.
func checkExtraTable(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if d, ok := ctx.diffFor(diff.DimTables); ok && len(d.Extra) > 0 {
		return match(Evidence{"extra_tables": strings.Join(d.Extra, ", ")})
	}
	return noMatch()
}
