package format

import "github.com/leapstack-labs/sqlmentor/pkg/core"

func (p *printer) formatSelectStmt(stmt *core.SelectStmt) {
	if stmt == nil {
		return
	}
	if stmt.With != nil {
		p.formatWithClause(stmt.With)
	}
	p.formatSelectBody(stmt.Body)
}

func (p *printer) formatWithClause(with *core.WithClause) {
	p.write("WITH")
	if with.Recursive {
		p.write("RECURSIVE")
	}
	for i, cte := range with.CTEs {
		if i > 0 {
			p.writeTight(",")
		}
		p.ident(cte.Name)
		p.write("AS")
		p.writeOpen("(")
		p.formatSelectStmt(cte.Select)
		p.writeTight(")")
	}
}

func (p *printer) formatSelectBody(body *core.SelectBody) {
	if body == nil {
		return
	}
	p.formatSelectCore(body.Left)
	if body.Op != core.SetOpNone {
		p.write(string(body.Op))
		if body.All {
			p.write("ALL")
		}
		p.formatSelectBody(body.Right)
	}
}

func (p *printer) formatSelectCore(sc *core.SelectCore) {
	if sc == nil {
		return
	}
	p.write("SELECT")
	if sc.Distinct {
		p.write("DISTINCT")
	}
	for i := range sc.Columns {
		if i > 0 {
			p.writeTight(",")
		}
		p.formatSelectItem(sc.Columns[i])
	}

	if sc.From != nil {
		p.formatFromClause(sc.From)
	}
	if sc.Where != nil {
		p.write("WHERE")
		p.formatExpr(sc.Where)
	}
	if len(sc.GroupBy) > 0 {
		p.write("GROUP BY")
		p.formatExprList(sc.GroupBy)
	}
	if sc.Having != nil {
		p.write("HAVING")
		p.formatExpr(sc.Having)
	}
	if len(sc.Windows) > 0 {
		p.write("WINDOW")
		for i, w := range sc.Windows {
			if i > 0 {
				p.writeTight(",")
			}
			p.ident(w.Name)
			p.write("AS")
			p.writeOpen("(")
			p.formatWindowSpec(w.Spec)
			p.writeTight(")")
		}
	}
	if len(sc.OrderBy) > 0 {
		p.write("ORDER BY")
		p.formatOrderByList(sc.OrderBy)
	}
	if sc.Limit != nil {
		p.write("LIMIT")
		p.formatExpr(sc.Limit)
		if sc.Offset != nil {
			p.write("OFFSET")
			p.formatExpr(sc.Offset)
		}
	}
}

func (p *printer) formatSelectItem(item core.SelectItem) {
	switch {
	case item.Star:
		p.write("*")
	case item.TableStar != "":
		p.ident(item.TableStar)
		p.writeOpenTight(".")
		p.writeTight("*")
	default:
		p.formatExpr(item.Expr)
		if item.Alias != "" {
			p.write("AS")
			p.ident(item.Alias)
		}
	}
}

func (p *printer) formatFromClause(fc *core.FromClause) {
	p.write("FROM")
	p.formatTableRef(fc.Source)
	for _, j := range fc.Joins {
		p.formatJoin(j)
	}
}

func (p *printer) formatJoin(j *core.Join) {
	if j.Type == core.JoinComma {
		p.writeTight(",")
		p.formatTableRef(j.Right)
		return
	}
	if j.Natural {
		p.write("NATURAL")
	}
	switch j.Type {
	case core.JoinInner:
		// bare JOIN reads as INNER
	default:
		p.write(string(j.Type))
	}
	p.write("JOIN")
	p.formatTableRef(j.Right)

	switch {
	case j.Condition != nil:
		p.write("ON")
		p.formatExpr(j.Condition)
	case len(j.Using) > 0:
		p.write("USING")
		p.writeOpen("(")
		for i, col := range j.Using {
			if i > 0 {
				p.writeOpenTight(", ")
			}
			p.ident(col)
		}
		p.writeTight(")")
	}
}

func (p *printer) formatTableRef(ref core.TableRef) {
	switch t := ref.(type) {
	case *core.TableName:
		if t.Schema != "" {
			p.ident(t.Schema)
			p.writeOpenTight(".")
		}
		p.ident(t.Name)
		if t.Alias != "" {
			p.write("AS")
			p.ident(t.Alias)
		}
	case *core.DerivedTable:
		p.writeOpen("(")
		p.formatSelectStmt(t.Select)
		p.writeTight(")")
		if t.Alias != "" {
			p.write("AS")
			p.ident(t.Alias)
		}
	}
}

func (p *printer) formatOrderByList(items []core.OrderByItem) {
	for i := range items {
		if i > 0 {
			p.writeTight(",")
		}
		p.formatOrderByItem(items[i])
	}
}

func (p *printer) formatOrderByItem(item core.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.write("DESC")
	} else {
		p.write("ASC")
	}
	if item.NullsFirst != nil {
		if *item.NullsFirst {
			p.write("NULLS FIRST")
		} else {
			p.write("NULLS LAST")
		}
	}
}
