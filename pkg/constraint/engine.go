package constraint

import "sort"

// Match is the outcome of a catalogue scan: the winning constraint and the
// evidence its checker produced.
type Match struct {
	Constraint *Constraint
	Evidence   Evidence
}

// Engine scans an ordered constraint catalogue.
type Engine struct {
	ordered []*Constraint
}

// NewEngine builds an engine over the given catalogue. The slice is copied
// and sorted by ascending priority, ties broken by catalogue order, so two
// runs on identical input always select the same constraint.
func NewEngine(catalogue []*Constraint) *Engine {
	ordered := make([]*Constraint, len(catalogue))
	copy(ordered, catalogue)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return &Engine{ordered: ordered}
}

// Evaluate scans the catalogue in priority order and returns the first
// matching constraint, or nil when none matches. A checker error is captured
// in checkerErrs keyed by constraint name and the constraint is treated as a
// non-match; it never aborts the scan.
func (e *Engine) Evaluate(ctx *Context) (m *Match, checkerErrs map[string]string) {
	checkerErrs = make(map[string]string)
	for _, c := range e.ordered {
		res, err := c.Check(ctx)
		if err != nil {
			checkerErrs[c.Name] = err.Error()
			continue
		}
		if res.Matched {
			ev := res.Evidence
			if ev == nil {
				ev = Evidence{}
			}
			return &Match{Constraint: c, Evidence: ev}, checkerErrs
		}
	}
	return nil, checkerErrs
}

// Constraints returns the engine's evaluation order.
func (e *Engine) Constraints() []*Constraint {
	out := make([]*Constraint, len(e.ordered))
	copy(out, e.ordered)
	return out
}
