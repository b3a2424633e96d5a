// Package diff derives per-query metadata and computes ordered structural
// differences between a student query and a reference query.
package diff

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/format"
)

// Star is the sentinel recorded in SelectColumns when the projection is `*`
// or `t.*`. It short-circuits column-set comparison.
const Star = "*"

// Metadata holds derived facts about one query. It is computed once and
// shared across every constraint so rules do not repeat AST walks.
type Metadata struct {
	// Tables referenced in FROM and JOIN clauses, lowercased.
	Tables map[string]bool

	// SelectColumns is the top-level projection, lowercased; contains the
	// Star sentinel when the projection uses * or t.*.
	SelectColumns map[string]bool

	// AllColumns is every column referenced anywhere in the query.
	AllColumns map[string]bool

	// GroupByKeys is the set of serialized top-level GROUP BY expressions.
	GroupByKeys map[string]bool

	// JoinClauses is the set of canonicalized join-clause strings (type plus
	// condition) for top-level joins.
	JoinClauses map[string]bool

	SubqueryCount int
	HasWindow     bool
	HasCTE        bool
}

// Derive computes the metadata for a parsed query.
func Derive(stmt *core.SelectStmt) *Metadata {
	m := &Metadata{
		Tables:        make(map[string]bool),
		SelectColumns: make(map[string]bool),
		AllColumns:    make(map[string]bool),
		GroupByKeys:   make(map[string]bool),
		JoinClauses:   make(map[string]bool),
	}
	if stmt == nil {
		return m
	}

	// CTE names are query-local, not real relations.
	cteNames := make(map[string]bool)
	core.Walk(stmt, func(n any) bool {
		if cte, ok := n.(*core.CTE); ok {
			cteNames[strings.ToLower(cte.Name)] = true
		}
		return true
	})

	for _, tn := range core.CollectTableNames(stmt) {
		if name := strings.ToLower(tn.Name); !cteNames[name] {
			m.Tables[name] = true
		}
	}
	for _, cr := range core.CollectColumnRefs(stmt) {
		m.AllColumns[strings.ToLower(cr.Column)] = true
	}

	if sc := core.GetSelectCore(stmt); sc != nil {
		for _, item := range sc.Columns {
			for _, name := range selectItemColumns(item) {
				m.SelectColumns[name] = true
			}
		}
		for _, g := range sc.GroupBy {
			m.GroupByKeys[strings.ToLower(format.Expr(g))] = true
		}
		if sc.From != nil {
			for _, j := range sc.From.Joins {
				m.JoinClauses[joinKey(j)] = true
			}
		}
	}

	m.SubqueryCount = core.CountSubqueries(stmt)
	m.HasWindow = core.HasWindowFunction(stmt)
	m.HasCTE = core.HasCTE(stmt)
	return m
}

// selectItemColumns maps one projection item to the names it contributes:
// the Star sentinel, the alias when present, or the serialized expression.
// Unaliased window expressions contribute nothing; their absence is a
// windowing question, not a column-list one.
func selectItemColumns(item core.SelectItem) []string {
	if item.Star || item.TableStar != "" {
		return []string{Star}
	}
	if item.Alias != "" {
		return []string{strings.ToLower(item.Alias)}
	}
	if hasWindowCall(item.Expr) {
		return nil
	}
	if cr, ok := item.Expr.(*core.ColumnRef); ok {
		return []string{strings.ToLower(cr.Column)}
	}
	return []string{strings.ToLower(format.Expr(item.Expr))}
}

func hasWindowCall(e core.Expr) bool {
	found := false
	core.Walk(e, func(n any) bool {
		if fc, ok := n.(*core.FuncCall); ok && fc.Window != nil {
			found = true
			return false
		}
		return true
	})
	return found
}

// joinKey canonicalizes one join clause to "TYPE condition" for set
// membership comparison.
func joinKey(j *core.Join) string {
	var sb strings.Builder
	if j.Natural {
		sb.WriteString("NATURAL ")
	}
	sb.WriteString(string(j.Type))
	if j.Condition != nil {
		sb.WriteString(" ON ")
		sb.WriteString(strings.ToLower(format.Expr(j.Condition)))
	}
	if len(j.Using) > 0 {
		cols := make([]string, len(j.Using))
		for i, c := range j.Using {
			cols[i] = strings.ToLower(c)
		}
		sort.Strings(cols)
		sb.WriteString(" USING ")
		sb.WriteString(strings.Join(cols, ","))
	}
	return sb.String()
}

// HasStar reports whether the projection uses the * sentinel.
func (m *Metadata) HasStar() bool {
	return m.SelectColumns[Star]
}

// missingExtra splits two sets into members only in want and only in got.
func missingExtra(got, want map[string]bool) (missing, extra []string) {
	for k := range want {
		if !got[k] {
			missing = append(missing, k)
		}
	}
	for k := range got {
		if !want[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}
