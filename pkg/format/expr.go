package format

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

func (p *printer) formatExpr(e core.Expr) {
	switch x := e.(type) {
	case *core.ColumnRef:
		if x.Table != "" {
			p.ident(x.Table)
			p.writeOpenTight(".")
		}
		p.ident(x.Column)
	case *core.Literal:
		p.formatLiteral(x)
	case *core.BinaryExpr:
		p.formatExpr(x.Left)
		p.write(x.Op.String())
		p.formatExpr(x.Right)
	case *core.UnaryExpr:
		if x.Op == token.NOT {
			p.write("NOT")
		} else {
			p.write(x.Op.String())
			p.needSpace = false
		}
		p.formatExpr(x.Expr)
	case *core.FuncCall:
		p.formatFuncCall(x)
	case *core.CaseExpr:
		p.formatCaseExpr(x)
	case *core.CastExpr:
		p.writeOpen("CAST(")
		p.formatExpr(x.Expr)
		p.write("AS")
		p.write(strings.ToUpper(x.TypeName))
		p.writeTight(")")
	case *core.InExpr:
		p.formatExpr(x.Expr)
		if x.Not {
			p.write("NOT")
		}
		p.write("IN")
		p.writeOpen("(")
		if x.Query != nil {
			p.formatSelectStmt(x.Query)
		} else {
			p.formatExprList(x.Values)
		}
		p.writeTight(")")
	case *core.BetweenExpr:
		p.formatExpr(x.Expr)
		if x.Not {
			p.write("NOT")
		}
		p.write("BETWEEN")
		p.formatExpr(x.Low)
		p.write("AND")
		p.formatExpr(x.High)
	case *core.IsNullExpr:
		p.formatExpr(x.Expr)
		if x.Not {
			p.write("IS NOT NULL")
		} else {
			p.write("IS NULL")
		}
	case *core.LikeExpr:
		p.formatExpr(x.Expr)
		if x.Not {
			p.write("NOT")
		}
		p.write("LIKE")
		p.formatExpr(x.Pattern)
	case *core.ParenExpr:
		p.writeOpen("(")
		p.formatExpr(x.Expr)
		p.writeTight(")")
	case *core.StarExpr:
		if x.Table != "" {
			p.ident(x.Table)
			p.writeOpenTight(".")
			p.writeTight("*")
		} else {
			p.write("*")
		}
	case *core.SubqueryExpr:
		p.writeOpen("(")
		p.formatSelectStmt(x.Select)
		p.writeTight(")")
	case *core.ExistsExpr:
		if x.Not {
			p.write("NOT")
		}
		p.write("EXISTS")
		p.writeOpen("(")
		p.formatSelectStmt(x.Select)
		p.writeTight(")")
	}
}

func (p *printer) formatExprList(exprs []core.Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.writeTight(",")
		}
		p.formatExpr(e)
	}
}

func (p *printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write("'" + strings.ReplaceAll(lit.Value, "'", "''") + "'")
	case core.LiteralBool:
		p.write(strings.ToUpper(lit.Value))
	case core.LiteralNull:
		p.write("NULL")
	default:
		p.write(lit.Value)
	}
}

func (p *printer) formatFuncCall(fc *core.FuncCall) {
	p.writeOpen(strings.ToUpper(fc.Name) + "(")
	switch {
	case fc.Star:
		p.writeTight("*")
	default:
		if fc.Distinct {
			p.write("DISTINCT")
		}
		p.formatExprList(fc.Args)
	}
	p.writeTight(")")

	if fc.Filter != nil {
		p.write("FILTER")
		p.writeOpen("(")
		p.write("WHERE")
		p.formatExpr(fc.Filter)
		p.writeTight(")")
	}
	if fc.Window != nil {
		p.write("OVER")
		if fc.Window.Name != "" && fc.Window.PartitionBy == nil &&
			fc.Window.OrderBy == nil && fc.Window.Frame == nil {
			p.ident(fc.Window.Name)
			return
		}
		p.writeOpen("(")
		p.formatWindowSpec(fc.Window)
		p.writeTight(")")
	}
}

func (p *printer) formatCaseExpr(ce *core.CaseExpr) {
	p.write("CASE")
	if ce.Operand != nil {
		p.formatExpr(ce.Operand)
	}
	for _, w := range ce.Whens {
		p.write("WHEN")
		p.formatExpr(w.Condition)
		p.write("THEN")
		p.formatExpr(w.Result)
	}
	if ce.Else != nil {
		p.write("ELSE")
		p.formatExpr(ce.Else)
	}
	p.write("END")
}

func (p *printer) formatWindowSpec(spec *core.WindowSpec) {
	if spec == nil {
		return
	}
	if spec.Name != "" {
		p.ident(spec.Name)
	}
	if len(spec.PartitionBy) > 0 {
		p.write("PARTITION BY")
		p.formatExprList(spec.PartitionBy)
	}
	if len(spec.OrderBy) > 0 {
		p.write("ORDER BY")
		p.formatOrderByList(spec.OrderBy)
	}
	if spec.Frame != nil {
		p.formatFrameSpec(spec.Frame)
	}
}

func (p *printer) formatFrameSpec(fs *core.FrameSpec) {
	p.write(string(fs.Type))
	if fs.End != nil {
		p.write("BETWEEN")
		p.formatFrameBound(fs.Start)
		p.write("AND")
		p.formatFrameBound(fs.End)
		return
	}
	p.formatFrameBound(fs.Start)
}

func (p *printer) formatFrameBound(fb *core.FrameBound) {
	if fb == nil {
		return
	}
	switch fb.Type {
	case core.FrameExprPreceding:
		p.formatExpr(fb.Offset)
		p.write("PRECEDING")
	case core.FrameExprFollowing:
		p.formatExpr(fb.Offset)
		p.write("FOLLOWING")
	default:
		p.write(string(fb.Type))
	}
}
