// Package core defines the typed AST consumed by the diagnostic pipeline.
//
// The node set is closed: every kind of node the canonicalizer, differ, and
// constraint checkers inspect is a concrete type in this package, and Walk
// handles all of them. Nodes are built once by pkg/parser and never mutated
// afterwards; downstream code queries them through the collector helpers in
// walk.go.
package core

import "github.com/leapstack-labs/sqlmentor/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TableRef is a marker interface for table references in FROM clauses.
type TableRef interface {
	Node
	tableRefNode()
}

// NodeInfo provides the common position field for AST nodes.
// Embed this in node types that track their source location.
type NodeInfo struct {
	Start token.Position
}

// Pos implements Node.
func (n *NodeInfo) Pos() token.Position { return n.Start }
