package parser

import (
	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// parsePrimary parses a primary expression: a literal, column reference,
// function call, CASE, CAST, EXISTS, subquery, or parenthesized expression.
func (p *Parser) parsePrimary() core.Expr {
	pos := p.token.Pos

	switch p.token.Type {
	case token.NUMBER:
		lit := &core.Literal{NodeInfo: core.NodeInfo{Start: pos}, Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit
	case token.STRING:
		lit := &core.Literal{NodeInfo: core.NodeInfo{Start: pos}, Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit
	case token.TRUE, token.FALSE:
		lit := &core.Literal{NodeInfo: core.NodeInfo{Start: pos}, Type: core.LiteralBool, Value: p.token.Literal}
		p.nextToken()
		return lit
	case token.NULL:
		lit := &core.Literal{NodeInfo: core.NodeInfo{Start: pos}, Type: core.LiteralNull, Value: "NULL"}
		p.nextToken()
		return lit
	case token.CASE:
		return p.parseCaseExpr()
	case token.CAST:
		return p.parseCastExpr()
	case token.EXISTS:
		return p.parseExistsExpr(false)
	case token.LPAREN:
		return p.parseParenOrSubquery()
	case token.STAR:
		p.nextToken()
		return &core.StarExpr{NodeInfo: core.NodeInfo{Start: pos}}
	case token.IDENT:
		return p.parseIdentifierExpr()
	case token.LEFT, token.RIGHT:
		// LEFT and RIGHT are keywords but also common string functions
		if p.checkPeek(token.LPAREN) {
			name := p.token.Literal
			p.nextToken()
			return p.parseFuncCall(name, pos)
		}
		p.errorf("unexpected token %s", p.token.Type)
		return nil
	default:
		p.errorf("unexpected token %s, expected expression", p.token.Type)
		return nil
	}
}

// parseIdentifierExpr parses an expression starting with an identifier:
// a function call, a qualified column reference, or a bare column.
func (p *Parser) parseIdentifierExpr() core.Expr {
	pos := p.token.Pos
	name := p.token.Literal
	p.nextToken()

	if p.check(token.LPAREN) {
		return p.parseFuncCall(name, pos)
	}
	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name, pos)
	}
	return &core.ColumnRef{NodeInfo: core.NodeInfo{Start: pos}, Column: name}
}

// parseQualifiedColumnRef parses t.col or t.* with the qualifier consumed.
func (p *Parser) parseQualifiedColumnRef(table string, pos token.Position) core.Expr {
	p.expect(token.DOT)
	if p.check(token.STAR) {
		p.nextToken()
		return &core.StarExpr{NodeInfo: core.NodeInfo{Start: pos}, Table: table}
	}
	col, ok := p.identLiteral()
	if !ok {
		return nil
	}
	return &core.ColumnRef{NodeInfo: core.NodeInfo{Start: pos}, Table: table, Column: col}
}

// parseFuncCall parses the argument list and trailing FILTER/OVER clauses.
// The function name is already consumed and the current token is LPAREN.
func (p *Parser) parseFuncCall(name string, pos token.Position) core.Expr {
	fc := &core.FuncCall{NodeInfo: core.NodeInfo{Start: pos}, Name: name}
	p.expect(token.LPAREN)

	switch {
	case p.check(token.STAR):
		p.nextToken()
		fc.Star = true
	case p.check(token.RPAREN):
		// zero-argument call
	default:
		fc.Distinct = p.match(token.DISTINCT)
		fc.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)

	if p.check(token.FILTER) {
		p.nextToken()
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		fc.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	if p.check(token.OVER) {
		p.nextToken()
		fc.Window = p.parseOverClause()
	}
	return fc
}

// parseCaseExpr parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCaseExpr() core.Expr {
	ce := &core.CaseExpr{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	p.expect(token.CASE)

	if !p.check(token.WHEN) {
		ce.Operand = p.parseExpression()
	}

	for p.match(token.WHEN) {
		var w core.WhenClause
		w.Condition = p.parseExpression()
		if !p.expect(token.THEN) {
			return nil
		}
		w.Result = p.parseExpression()
		ce.Whens = append(ce.Whens, w)
	}
	if len(ce.Whens) == 0 {
		p.errorf("CASE expression requires at least one WHEN clause")
		return nil
	}

	if p.match(token.ELSE) {
		ce.Else = p.parseExpression()
	}
	p.expect(token.END)
	return ce
}

// parseCastExpr parses CAST(expr AS type).
func (p *Parser) parseCastExpr() core.Expr {
	ce := &core.CastExpr{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	p.expect(token.CAST)
	if !p.expect(token.LPAREN) {
		return nil
	}
	ce.Expr = p.parseExpression()
	if !p.expect(token.AS) {
		return nil
	}
	ce.TypeName = p.parseTypeName()
	p.expect(token.RPAREN)
	return ce
}

// parseTypeName reads a type name such as INTEGER, VARCHAR(10), DECIMAL(8, 2).
func (p *Parser) parseTypeName() string {
	if !p.check(token.IDENT) {
		p.errorf("unexpected token %s, expected type name", p.token.Type)
		return ""
	}
	name := p.token.Literal
	p.nextToken()

	// DOUBLE PRECISION and similar two-word types
	if p.check(token.IDENT) {
		name += " " + p.token.Literal
		p.nextToken()
	}

	if p.match(token.LPAREN) {
		name += "("
		for !p.check(token.RPAREN) && !p.check(token.EOF) {
			name += p.token.Literal
			p.nextToken()
			if p.match(token.COMMA) {
				name += ", "
			}
		}
		p.expect(token.RPAREN)
		name += ")"
	}
	return name
}

// parseExistsExpr parses [NOT] EXISTS (subquery); NOT is already consumed.
func (p *Parser) parseExistsExpr(not bool) core.Expr {
	ee := &core.ExistsExpr{NodeInfo: core.NodeInfo{Start: p.token.Pos}, Not: not}
	p.expect(token.EXISTS)
	if !p.expect(token.LPAREN) {
		return nil
	}
	ee.Select = p.parseInnerSelect()
	p.expect(token.RPAREN)
	return ee
}

// parseParenOrSubquery disambiguates a parenthesized scalar subquery from a
// parenthesized expression by the token after the open paren.
func (p *Parser) parseParenOrSubquery() core.Expr {
	pos := p.token.Pos
	p.expect(token.LPAREN)

	if p.check(token.SELECT) || p.check(token.WITH) {
		sq := &core.SubqueryExpr{NodeInfo: core.NodeInfo{Start: pos}}
		sq.Select = p.parseInnerSelect()
		p.expect(token.RPAREN)
		return sq
	}

	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	p.expect(token.RPAREN)
	return &core.ParenExpr{NodeInfo: core.NodeInfo{Start: pos}, Expr: inner}
}

// parseInnerSelect parses a full select statement nested inside parentheses.
func (p *Parser) parseInnerSelect() *core.SelectStmt {
	stmt := &core.SelectStmt{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}
	stmt.Body = p.parseSelectBody()
	return stmt
}
