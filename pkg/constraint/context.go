package constraint

import (
	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// Context is the unit of work every checker sees: both query texts, both
// parsed forms, derived metadata, the structural diff, and both execution
// results. It is constructed once per comparison request and never mutated
// by checkers.
type Context struct {
	StudentSQL   string
	ReferenceSQL string

	// Student parse failure. When set, StudentStmt and StudentMeta describe
	// an empty query and structural checks must not fire.
	StudentParseErr error

	StudentStmt   *core.SelectStmt
	ReferenceStmt *core.SelectStmt

	StudentMeta   *diff.Metadata
	ReferenceMeta *diff.Metadata

	Diffs []diff.Difference

	StudentResult   *verify.ExecutionResult
	ReferenceResult *verify.ExecutionResult
}

// Parsed reports whether the student query has a usable AST.
func (c *Context) Parsed() bool {
	return c.StudentParseErr == nil && c.StudentStmt != nil
}

// Executed reports whether both sides produced execution results.
func (c *Context) Executed() bool {
	return c.StudentResult != nil && c.ReferenceResult != nil
}

// diffFor returns the structural difference for one dimension, if present.
func (c *Context) diffFor(dim diff.Dimension) (diff.Difference, bool) {
	for _, d := range c.Diffs {
		if d.Dimension == dim {
			return d, true
		}
	}
	return diff.Difference{}, false
}

// studentCore returns the outermost select core of the student query.
func (c *Context) studentCore() *core.SelectCore {
	return core.GetSelectCore(c.StudentStmt)
}

// referenceCore returns the outermost select core of the reference query.
func (c *Context) referenceCore() *core.SelectCore {
	return core.GetSelectCore(c.ReferenceStmt)
}
