// Package constraint holds the prioritized diagnostic rule catalogue and the
// engine that scans it. Each constraint is a pure predicate over a
// DiagnosticContext; the first match in priority order determines the
// pedagogical category of a student query's discrepancy.
package constraint

// Evidence is the structured data captured by a matching checker explaining
// why it matched. Values feed hint template rendering.
type Evidence map[string]string

// Result is one checker's verdict.
type Result struct {
	Matched  bool
	Evidence Evidence
}

// match is shorthand for a positive result.
func match(ev Evidence) (Result, error) {
	return Result{Matched: true, Evidence: ev}, nil
}

// noMatch is shorthand for a negative result.
func noMatch() (Result, error) {
	return Result{}, nil
}

// CheckFunc evaluates one constraint against the shared context. A returned
// error never aborts the scan; the engine records it as evidence and treats
// the constraint as not matched.
type CheckFunc func(ctx *Context) (Result, error)

// Constraint is one named, prioritized diagnostic rule. The catalogue is
// static configuration: constraints are never mutated after construction.
type Constraint struct {
	ID       int
	Name     string
	Priority int // lower evaluates earlier
	Check    CheckFunc

	// Per-tier hint templates. Placeholders of the form {key} are replaced
	// with evidence values at render time.
	Tier1 string // terse pointer to the affected clause category
	Tier2 string // specific, evidence-grounded statement
	Tier3 string // conceptual explanation
}
