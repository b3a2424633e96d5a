package constraint

// checkParseError fires when the student query could not be parsed. Highest
// priority: nothing structural can be said about an unparseable query.
func checkParseError(ctx *Context) (Result, error) {
	if ctx.StudentParseErr != nil {
		return match(Evidence{"error": ctx.StudentParseErr.Error()})
	}
	return noMatch()
}

// checkExecutionError fires when either side failed at run time. The evidence
// keys are the same for both sides so the hint templates always render; "side"
// tells the reader whose query failed.
func checkExecutionError(ctx *Context) (Result, error) {
	if !ctx.Executed() {
		return noMatch()
	}
	if !ctx.StudentResult.Success {
		return match(Evidence{"error": ctx.StudentResult.Error, "side": "your"})
	}
	if !ctx.ReferenceResult.Success {
		return match(Evidence{"error": ctx.ReferenceResult.Error, "side": "the expected"})
	}
	return noMatch()
}
