package constraint

import "github.com/leapstack-labs/sqlmentor/pkg/core"

// checkMissingSubquery fires when the reference nests queries the student
// solves flat.
func checkMissingSubquery(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if ctx.ReferenceMeta.SubqueryCount > ctx.StudentMeta.SubqueryCount {
		return match(nil)
	}
	return noMatch()
}

// checkCTEExpected fires when the reference uses a WITH clause and the
// student does not.
func checkCTEExpected(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if ctx.ReferenceMeta.HasCTE && !ctx.StudentMeta.HasCTE {
		return match(nil)
	}
	return noMatch()
}

// checkWindowExpected fires when the reference computes over windows and the
// student does not.
func checkWindowExpected(ctx *Context) (Result, error) {
	if !ctx.Parsed() {
		return noMatch()
	}
	if ctx.ReferenceMeta.HasWindow && !ctx.StudentMeta.HasWindow {
		return match(nil)
	}
	return noMatch()
}

// checkUnexpectedUnion fires when the student combines result sets although
// the reference does not.
func checkUnexpectedUnion(ctx *Context) (Result, error) {
	if !ctx.Parsed() || ctx.StudentStmt.Body == nil || ctx.ReferenceStmt == nil || ctx.ReferenceStmt.Body == nil {
		return noMatch()
	}
	if ctx.StudentStmt.Body.Op != core.SetOpNone && ctx.ReferenceStmt.Body.Op == core.SetOpNone {
		return match(Evidence{"operator": string(ctx.StudentStmt.Body.Op)})
	}
	return noMatch()
}
