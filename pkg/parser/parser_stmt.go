package parser

// Statement parsing:
//
//	statement   → [WITH [RECURSIVE] cte ("," cte)*] select_body EOF
//	cte         → ident AS "(" statement ")"
//	select_body → select_core [(UNION [ALL]|INTERSECT|EXCEPT) select_body]

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// parseStatement parses a complete SELECT statement with optional WITH clause.
func (p *Parser) parseStatement() *core.SelectStmt {
	stmt := &core.SelectStmt{NodeInfo: core.NodeInfo{Start: p.token.Pos}}

	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}

	stmt.Body = p.parseSelectBody()

	if !p.check(token.EOF) && len(p.errors) == 0 {
		p.errorf("unexpected token %s after end of statement", p.token.Type)
	}
	return stmt
}

// parseWithClause parses WITH [RECURSIVE] cte1 AS (...), cte2 AS (...).
func (p *Parser) parseWithClause() *core.WithClause {
	with := &core.WithClause{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	p.expect(token.WITH)

	with.Recursive = p.match(token.RECURSIVE)

	for {
		cte := p.parseCTE()
		if cte == nil {
			return with
		}
		with.CTEs = append(with.CTEs, cte)
		if !p.match(token.COMMA) {
			break
		}
	}
	return with
}

// parseCTE parses a single common table expression: name AS (select).
func (p *Parser) parseCTE() *core.CTE {
	cte := &core.CTE{NodeInfo: core.NodeInfo{Start: p.token.Pos}}

	name, ok := p.identLiteral()
	if !ok {
		return nil
	}
	cte.Name = name

	if !p.expect(token.AS) || !p.expect(token.LPAREN) {
		return nil
	}

	cte.Select = &core.SelectStmt{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	if p.check(token.WITH) {
		cte.Select.With = p.parseWithClause()
	}
	cte.Select.Body = p.parseSelectBody()

	p.expect(token.RPAREN)
	return cte
}

// parseSelectBody parses a select core plus any chained set operations.
func (p *Parser) parseSelectBody() *core.SelectBody {
	body := &core.SelectBody{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	body.Left = p.parseSelectCore()

	switch p.token.Type {
	case token.UNION:
		p.nextToken()
		body.Op = core.SetOpUnion
		body.All = p.match(token.ALL)
		body.Right = p.parseSelectBody()
	case token.INTERSECT:
		p.nextToken()
		body.Op = core.SetOpIntersect
		body.Right = p.parseSelectBody()
	case token.EXCEPT:
		p.nextToken()
		body.Op = core.SetOpExcept
		body.Right = p.parseSelectBody()
	}
	return body
}

// parseSelectCore parses SELECT ... through LIMIT/OFFSET.
func (p *Parser) parseSelectCore() *core.SelectCore {
	sc := &core.SelectCore{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	if !p.expect(token.SELECT) {
		return sc
	}

	sc.Distinct = p.match(token.DISTINCT)
	if !sc.Distinct {
		p.match(token.ALL) // SELECT ALL is the implicit default
	}

	sc.Columns = p.parseSelectList()

	if p.check(token.FROM) {
		sc.From = p.parseFromClause()
	}

	if p.match(token.WHERE) {
		sc.Where = p.parseExpression()
	}

	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		sc.GroupBy = p.parseExpressionList()
	}

	if p.match(token.HAVING) {
		sc.Having = p.parseExpression()
	}

	if p.check(token.WINDOW) {
		sc.Windows = p.parseWindowDefs()
	}

	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		sc.OrderBy = p.parseOrderByList()
	}

	if p.match(token.LIMIT) {
		sc.Limit = p.parseExpression()
		if p.match(token.OFFSET) {
			sc.Offset = p.parseExpression()
		}
	}

	return sc
}

// parseSelectList parses the projection list.
func (p *Parser) parseSelectList() []core.SelectItem {
	var items []core.SelectItem
	for {
		items = append(items, p.parseSelectItem())
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseSelectItem parses one projection item: *, t.*, or expr [AS alias].
func (p *Parser) parseSelectItem() core.SelectItem {
	var item core.SelectItem

	if p.check(token.STAR) {
		p.nextToken()
		item.Star = true
		return item
	}

	// t.* needs two tokens of lookahead before committing to an expression
	if p.check(token.IDENT) && p.checkPeek(token.DOT) {
		saveTable := p.token.Literal
		savedLexer := *p.lexer
		savedTok, savedPeek := p.token, p.peek
		p.nextToken() // consume ident
		p.nextToken() // consume dot
		if p.check(token.STAR) {
			p.nextToken()
			item.TableStar = saveTable
			return item
		}
		// Not t.*; rewind and parse as an expression
		*p.lexer = savedLexer
		p.token, p.peek = savedTok, savedPeek
	}

	item.Expr = p.parseExpression()

	if p.match(token.AS) {
		if alias, ok := p.identLiteral(); ok {
			item.Alias = alias
		}
	} else if p.check(token.IDENT) {
		// Implicit alias: SELECT a b
		item.Alias = p.token.Literal
		p.nextToken()
	}
	return item
}

// parseOrderByList parses the ORDER BY item list.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	var items []core.OrderByItem
	for {
		items = append(items, p.parseOrderByItem())
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseOrderByItem parses expr [ASC|DESC] [NULLS FIRST|LAST].
func (p *Parser) parseOrderByItem() core.OrderByItem {
	var item core.OrderByItem
	item.Expr = p.parseExpression()

	if p.match(token.DESC) {
		item.Desc = true
	} else {
		p.match(token.ASC)
	}

	if p.match(token.NULLS) {
		// FIRST/LAST are not reserved in this grammar; accept identifiers
		if p.check(token.IDENT) {
			first := strings.EqualFold(p.token.Literal, "FIRST")
			last := strings.EqualFold(p.token.Literal, "LAST")
			if first || last {
				v := first
				item.NullsFirst = &v
				p.nextToken()
				return item
			}
		}
		p.errorf("expected FIRST or LAST after NULLS")
	}
	return item
}

// parseExpressionList parses a comma-separated expression list.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}

// parseWindowDefs parses WINDOW w AS (spec), w2 AS (spec).
func (p *Parser) parseWindowDefs() []core.WindowDef {
	p.expect(token.WINDOW)
	var defs []core.WindowDef
	for {
		name, ok := p.identLiteral()
		if !ok {
			return defs
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		spec := p.parseWindowSpec()
		p.expect(token.RPAREN)
		defs = append(defs, core.WindowDef{Name: name, Spec: spec})
		if !p.match(token.COMMA) {
			break
		}
	}
	return defs
}
