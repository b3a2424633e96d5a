package parser

import (
	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// Operator precedence levels, lowest binds loosest.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precComparison // = != < > <= >= IS IN BETWEEN LIKE
	precAdditive   // + - ||
	precMultiplicative
	precUnary
)

// parseExpression parses an expression at the lowest precedence.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(precLowest)
}

// parseExpressionWithPrecedence is the Pratt parsing loop: parse a prefix
// expression, then fold in infix operators while they bind tighter than min.
func (p *Parser) parseExpressionWithPrecedence(min int) core.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.getInfixPrecedence()
		if prec <= min {
			return left
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			return nil
		}
	}
}

// parsePrefixExpr parses an expression that starts a new operand: a primary,
// or a prefix operator applied to one.
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		if p.checkPeek(token.EXISTS) {
			p.nextToken()
			return p.parseExistsExpr(true)
		}
		pos := p.token.Pos
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precNot)
		if operand == nil {
			return nil
		}
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Start: pos}, Op: token.NOT, Expr: operand}
	case token.MINUS, token.PLUS:
		op := p.token.Type
		pos := p.token.Pos
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precUnary)
		if operand == nil {
			return nil
		}
		return &core.UnaryExpr{NodeInfo: core.NodeInfo{Start: pos}, Op: op, Expr: operand}
	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the binding power of the current token as an
// infix operator, or precLowest if it is not one.
func (p *Parser) getInfixPrecedence() int {
	switch p.token.Type {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.IS, token.IN, token.BETWEEN, token.LIKE:
		return precComparison
	case token.NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE
		switch p.peek.Type {
		case token.IN, token.BETWEEN, token.LIKE:
			return precComparison
		}
		return precLowest
	case token.PLUS, token.MINUS, token.DPIPE:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiplicative
	default:
		return precLowest
	}
}

// parseInfixExpr parses the infix operator at the current token applied to
// the already-parsed left operand.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	switch p.token.Type {
	case token.IS:
		return p.parseIsExpr(left)
	case token.IN:
		return p.parseInExpr(left, false)
	case token.BETWEEN:
		return p.parseBetweenExpr(left, false)
	case token.LIKE:
		return p.parseLikeExpr(left, false)
	case token.NOT:
		return p.parseNotInfixExpr(left)
	default:
		op := p.token.Type
		pos := p.token.Pos
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec)
		if right == nil {
			return nil
		}
		return &core.BinaryExpr{
			NodeInfo: core.NodeInfo{Start: pos},
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
}

// parseNotInfixExpr handles the negated forms NOT IN, NOT BETWEEN, NOT LIKE.
func (p *Parser) parseNotInfixExpr(left core.Expr) core.Expr {
	p.expect(token.NOT)
	switch p.token.Type {
	case token.IN:
		return p.parseInExpr(left, true)
	case token.BETWEEN:
		return p.parseBetweenExpr(left, true)
	case token.LIKE:
		return p.parseLikeExpr(left, true)
	default:
		p.errorf("unexpected token %s after NOT", p.token.Type)
		return nil
	}
}

// parseIsExpr parses IS [NOT] NULL / IS [NOT] TRUE / IS [NOT] FALSE.
func (p *Parser) parseIsExpr(left core.Expr) core.Expr {
	pos := p.token.Pos
	p.expect(token.IS)
	not := p.match(token.NOT)

	switch p.token.Type {
	case token.NULL:
		p.nextToken()
		return &core.IsNullExpr{NodeInfo: core.NodeInfo{Start: pos}, Expr: left, Not: not}
	case token.TRUE, token.FALSE:
		// IS TRUE / IS FALSE compare against a boolean literal
		lit := &core.Literal{
			NodeInfo: core.NodeInfo{Start: p.token.Pos},
			Type:     core.LiteralBool,
			Value:    p.token.Literal,
		}
		p.nextToken()
		op := token.EQ
		if not {
			op = token.NE
		}
		return &core.BinaryExpr{NodeInfo: core.NodeInfo{Start: pos}, Left: left, Op: op, Right: lit}
	default:
		p.errorf("unexpected token %s after IS", p.token.Type)
		return nil
	}
}

// parseInExpr parses expr [NOT] IN (list) or expr [NOT] IN (subquery).
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	pos := p.token.Pos
	p.expect(token.IN)
	if !p.expect(token.LPAREN) {
		return nil
	}

	in := &core.InExpr{NodeInfo: core.NodeInfo{Start: pos}, Expr: left, Not: not}
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = &core.SelectStmt{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
		if p.check(token.WITH) {
			in.Query.With = p.parseWithClause()
		}
		in.Query.Body = p.parseSelectBody()
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses expr [NOT] BETWEEN low AND high.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	pos := p.token.Pos
	p.expect(token.BETWEEN)

	// Bounds bind tighter than AND so the AND separator is not consumed
	low := p.parseExpressionWithPrecedence(precComparison)
	if low == nil {
		return nil
	}
	if !p.expect(token.AND) {
		return nil
	}
	high := p.parseExpressionWithPrecedence(precComparison)
	if high == nil {
		return nil
	}
	return &core.BetweenExpr{
		NodeInfo: core.NodeInfo{Start: pos},
		Expr:     left,
		Not:      not,
		Low:      low,
		High:     high,
	}
}

// parseLikeExpr parses expr [NOT] LIKE pattern.
func (p *Parser) parseLikeExpr(left core.Expr, not bool) core.Expr {
	pos := p.token.Pos
	p.expect(token.LIKE)
	pattern := p.parseExpressionWithPrecedence(precComparison)
	if pattern == nil {
		return nil
	}
	return &core.LikeExpr{
		NodeInfo: core.NodeInfo{Start: pos},
		Expr:     left,
		Not:      not,
		Pattern:  pattern,
	}
}
