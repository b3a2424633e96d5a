// Package parser provides a recursive descent SQL parser for the subset of
// ANSI SQL the diagnostic pipeline compares: SELECT statements with CTEs,
// joins, grouping, window functions, subqueries, and set operations.
//
// # Grammar Overview
//
//	statement     → [WITH [RECURSIVE] cte_list] select_body
//	select_body   → select_core [(UNION [ALL]|INTERSECT|EXCEPT) select_body]
//	select_core   → SELECT [DISTINCT] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr [OFFSET expr]]
//
// Expressions are parsed with Pratt-style operator precedence; see
// parser_expr.go.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// Dialect names accepted by Parse. The grammar is the shared ANSI core; the
// dialect is carried so callers can validate and report it consistently.
const (
	DialectANSI     = "ansi"
	DialectDuckDB   = "duckdb"
	DialectPostgres = "postgres"
)

// KnownDialect reports whether the dialect name is accepted.
func KnownDialect(name string) bool {
	switch name {
	case DialectANSI, DialectDuckDB, DialectPostgres:
		return true
	}
	return false
}

// Parser parses SQL into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{lexer: NewLexer(sql)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the SQL text and returns the AST.
// The returned error is always a *ParseError when parsing fails.
func Parse(sql, dialect string) (*core.SelectStmt, error) {
	if !KnownDialect(dialect) {
		return nil, &ParseError{Message: fmt.Sprintf("unknown dialect %q", dialect)}
	}
	p := NewParser(sql)
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.errorf("unexpected token %s, expected %s", p.token.Type, t)
	return false
}

// errorf records a parse error at the current token position.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// identLiteral consumes the current token as an identifier and returns its
// text. Keywords are not accepted.
func (p *Parser) identLiteral() (string, bool) {
	if !p.check(token.IDENT) {
		p.errorf("unexpected token %s, expected identifier", p.token.Type)
		return "", false
	}
	lit := p.token.Literal
	p.nextToken()
	return lit, true
}
