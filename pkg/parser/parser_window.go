package parser

import (
	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// parseOverClause parses what follows OVER: a named window reference or an
// inline parenthesized window specification.
func (p *Parser) parseOverClause() *core.WindowSpec {
	if p.check(token.IDENT) {
		spec := &core.WindowSpec{Name: p.token.Literal}
		p.nextToken()
		return spec
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	spec := p.parseWindowSpec()
	p.expect(token.RPAREN)
	return spec
}

// parseWindowSpec parses the body of a window specification:
// [base_window] [PARTITION BY exprs] [ORDER BY items] [frame].
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	spec := &core.WindowSpec{}

	if p.check(token.IDENT) {
		spec.Name = p.token.Literal
		p.nextToken()
	}

	if p.check(token.PARTITION) {
		p.nextToken()
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	switch p.token.Type {
	case token.ROWS, token.RANGE, token.GROUPS:
		spec.Frame = p.parseFrameSpec()
	}
	return spec
}

// parseFrameSpec parses ROWS|RANGE|GROUPS frame_bound or
// ROWS|RANGE|GROUPS BETWEEN frame_bound AND frame_bound.
func (p *Parser) parseFrameSpec() *core.FrameSpec {
	fs := &core.FrameSpec{}

	switch p.token.Type {
	case token.ROWS:
		fs.Type = core.FrameRows
	case token.RANGE:
		fs.Type = core.FrameRange
	case token.GROUPS:
		fs.Type = core.FrameGroups
	}
	p.nextToken()

	if p.match(token.BETWEEN) {
		fs.Start = p.parseFrameBound()
		p.expect(token.AND)
		fs.End = p.parseFrameBound()
		return fs
	}
	fs.Start = p.parseFrameBound()
	return fs
}

// parseFrameBound parses UNBOUNDED PRECEDING|FOLLOWING, CURRENT ROW, or
// expr PRECEDING|FOLLOWING.
func (p *Parser) parseFrameBound() *core.FrameBound {
	switch p.token.Type {
	case token.UNBOUNDED:
		p.nextToken()
		switch p.token.Type {
		case token.PRECEDING:
			p.nextToken()
			return &core.FrameBound{Type: core.FrameUnboundedPreceding}
		case token.FOLLOWING:
			p.nextToken()
			return &core.FrameBound{Type: core.FrameUnboundedFollowing}
		default:
			p.errorf("expected PRECEDING or FOLLOWING after UNBOUNDED")
			return nil
		}
	case token.CURRENT:
		p.nextToken()
		p.expect(token.ROW)
		return &core.FrameBound{Type: core.FrameCurrentRow}
	default:
		offset := p.parseExpression()
		if offset == nil {
			return nil
		}
		switch p.token.Type {
		case token.PRECEDING:
			p.nextToken()
			return &core.FrameBound{Type: core.FrameExprPreceding, Offset: offset}
		case token.FOLLOWING:
			p.nextToken()
			return &core.FrameBound{Type: core.FrameExprFollowing, Offset: offset}
		default:
			p.errorf("expected PRECEDING or FOLLOWING in frame bound")
			return nil
		}
	}
}
