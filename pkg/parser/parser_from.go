package parser

import (
	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// parseFromClause parses FROM table_ref (join)*.
// Comma-separated table lists become JoinComma joins.
func (p *Parser) parseFromClause() *core.FromClause {
	fc := &core.FromClause{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	p.expect(token.FROM)

	fc.Source = p.parseTableRef()

	for {
		switch p.token.Type {
		case token.COMMA:
			pos := p.token.Pos
			p.nextToken()
			fc.Joins = append(fc.Joins, &core.Join{
				NodeInfo: core.NodeInfo{Start: pos},
				Type:     core.JoinComma,
				Right:    p.parseTableRef(),
			})
		case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL,
			token.CROSS, token.NATURAL:
			j := p.parseJoin()
			if j == nil {
				return fc
			}
			fc.Joins = append(fc.Joins, j)
		default:
			return fc
		}
	}
}

// parseJoin parses one join: [NATURAL] [join type] JOIN table_ref [condition].
func (p *Parser) parseJoin() *core.Join {
	j := &core.Join{NodeInfo: core.NodeInfo{Start: p.token.Pos}}

	j.Natural = p.match(token.NATURAL)

	switch p.token.Type {
	case token.INNER:
		p.nextToken()
		j.Type = core.JoinInner
	case token.LEFT:
		p.nextToken()
		p.match(token.OUTER)
		j.Type = core.JoinLeft
	case token.RIGHT:
		p.nextToken()
		p.match(token.OUTER)
		j.Type = core.JoinRight
	case token.FULL:
		p.nextToken()
		p.match(token.OUTER)
		j.Type = core.JoinFull
	case token.CROSS:
		p.nextToken()
		j.Type = core.JoinCross
	default:
		j.Type = core.JoinInner // bare JOIN
	}

	if !p.expect(token.JOIN) {
		return nil
	}
	j.Right = p.parseTableRef()

	// CROSS and NATURAL joins take no condition
	if j.Type == core.JoinCross || j.Natural {
		return j
	}
	p.parseJoinCondition(j)
	return j
}

// parseJoinCondition parses ON expr or USING (cols). Both are optional in the
// grammar so an accidental bare join still parses (and can be diagnosed).
func (p *Parser) parseJoinCondition(j *core.Join) {
	switch p.token.Type {
	case token.ON:
		p.nextToken()
		j.Condition = p.parseExpression()
	case token.USING:
		p.nextToken()
		j.Using = p.parseUsingColumns()
	}
}

// parseUsingColumns parses (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var cols []string
	for {
		col, ok := p.identLiteral()
		if !ok {
			return cols
		}
		cols = append(cols, col)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}

// parseTableRef parses a table name or derived table.
func (p *Parser) parseTableRef() core.TableRef {
	if p.check(token.LPAREN) {
		return p.parseDerivedTable()
	}
	return p.parseTableName()
}

// parseTableName parses [schema.]name [[AS] alias].
func (p *Parser) parseTableName() *core.TableName {
	tn := &core.TableName{NodeInfo: core.NodeInfo{Start: p.token.Pos}}

	name, ok := p.identLiteral()
	if !ok {
		return tn
	}
	tn.Name = name

	if p.match(token.DOT) {
		tn.Schema = tn.Name
		if name, ok = p.identLiteral(); ok {
			tn.Name = name
		}
	}

	tn.Alias = p.parseTableAlias()
	return tn
}

// parseDerivedTable parses (SELECT ...) [[AS] alias].
func (p *Parser) parseDerivedTable() *core.DerivedTable {
	dt := &core.DerivedTable{NodeInfo: core.NodeInfo{Start: p.token.Pos}}
	p.expect(token.LPAREN)
	dt.Select = p.parseInnerSelect()
	p.expect(token.RPAREN)
	dt.Alias = p.parseTableAlias()
	return dt
}

// parseTableAlias parses an optional [AS] alias after a table reference.
func (p *Parser) parseTableAlias() string {
	if p.match(token.AS) {
		alias, _ := p.identLiteral()
		return alias
	}
	if p.check(token.IDENT) {
		alias := p.token.Literal
		p.nextToken()
		return alias
	}
	return ""
}
