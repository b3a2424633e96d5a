package core

// Walk traverses an AST depth-first and calls fn for each node.
// If fn returns false, traversal stops below that node.
func Walk(node any, fn func(node any) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkNode(node any, fn func(node any) bool) {
	switch n := node.(type) {
	case *SelectStmt:
		if n == nil {
			return
		}
		Walk(n.With, fn)
		Walk(n.Body, fn)

	case *WithClause:
		if n == nil {
			return
		}
		for _, cte := range n.CTEs {
			Walk(cte, fn)
		}

	case *CTE:
		if n == nil {
			return
		}
		Walk(n.Select, fn)

	case *SelectBody:
		if n == nil {
			return
		}
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *SelectCore:
		if n == nil {
			return
		}
		for _, col := range n.Columns {
			Walk(col.Expr, fn)
		}
		Walk(n.From, fn)
		Walk(n.Where, fn)
		for _, expr := range n.GroupBy {
			Walk(expr, fn)
		}
		Walk(n.Having, fn)
		for _, item := range n.OrderBy {
			Walk(item.Expr, fn)
		}
		Walk(n.Limit, fn)
		Walk(n.Offset, fn)

	case *FromClause:
		if n == nil {
			return
		}
		Walk(n.Source, fn)
		for _, join := range n.Joins {
			Walk(join, fn)
		}

	case *Join:
		if n == nil {
			return
		}
		Walk(n.Right, fn)
		Walk(n.Condition, fn)

	case *TableName:
		// Leaf node

	case *DerivedTable:
		if n == nil {
			return
		}
		Walk(n.Select, fn)

	case *BinaryExpr:
		if n == nil {
			return
		}
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *FuncCall:
		if n == nil {
			return
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
		Walk(n.Filter, fn)
		if n.Window != nil {
			for _, e := range n.Window.PartitionBy {
				Walk(e, fn)
			}
			for _, item := range n.Window.OrderBy {
				Walk(item.Expr, fn)
			}
		}

	case *CaseExpr:
		if n == nil {
			return
		}
		Walk(n.Operand, fn)
		for _, when := range n.Whens {
			Walk(when.Condition, fn)
			Walk(when.Result, fn)
		}
		Walk(n.Else, fn)

	case *CastExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *InExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
		for _, v := range n.Values {
			Walk(v, fn)
		}
		Walk(n.Query, fn)

	case *BetweenExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
		Walk(n.Low, fn)
		Walk(n.High, fn)

	case *IsNullExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *LikeExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
		Walk(n.Pattern, fn)

	case *ParenExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *SubqueryExpr:
		if n == nil {
			return
		}
		Walk(n.Select, fn)

	case *ExistsExpr:
		if n == nil {
			return
		}
		Walk(n.Select, fn)

	// Leaf nodes - no children to walk
	case *ColumnRef, *Literal, *StarExpr:
	}
}

// GetSelectCore extracts the top-level SelectCore from a statement, handling
// nil checks along the way.
func GetSelectCore(stmt *SelectStmt) *SelectCore {
	if stmt == nil || stmt.Body == nil {
		return nil
	}
	return stmt.Body.Left
}

// CollectColumnRefs returns all column references anywhere in a statement.
func CollectColumnRefs(stmt *SelectStmt) []*ColumnRef {
	var refs []*ColumnRef
	Walk(stmt, func(node any) bool {
		if cr, ok := node.(*ColumnRef); ok {
			refs = append(refs, cr)
		}
		return true
	})
	return refs
}

// CollectTableNames returns all table name references in a statement,
// including those inside subqueries and CTEs.
func CollectTableNames(stmt *SelectStmt) []*TableName {
	var tables []*TableName
	Walk(stmt, func(node any) bool {
		if tn, ok := node.(*TableName); ok {
			tables = append(tables, tn)
		}
		return true
	})
	return tables
}

// CollectJoins returns all joins in a statement.
func CollectJoins(stmt *SelectStmt) []*Join {
	var joins []*Join
	Walk(stmt, func(node any) bool {
		if j, ok := node.(*Join); ok {
			joins = append(joins, j)
		}
		return true
	})
	return joins
}

// CollectFuncCalls returns all function calls in a statement.
func CollectFuncCalls(stmt *SelectStmt) []*FuncCall {
	var funcs []*FuncCall
	Walk(stmt, func(node any) bool {
		if fc, ok := node.(*FuncCall); ok {
			funcs = append(funcs, fc)
		}
		return true
	})
	return funcs
}

// CollectBinaryExprs returns all binary expressions in a statement.
func CollectBinaryExprs(stmt *SelectStmt) []*BinaryExpr {
	var exprs []*BinaryExpr
	Walk(stmt, func(node any) bool {
		if be, ok := node.(*BinaryExpr); ok {
			exprs = append(exprs, be)
		}
		return true
	})
	return exprs
}

// CountSubqueries returns the number of nested SELECTs below the top level:
// derived tables, scalar subqueries, IN (SELECT ...), and EXISTS bodies.
func CountSubqueries(stmt *SelectStmt) int {
	count := 0
	Walk(stmt, func(node any) bool {
		switch node.(type) {
		case *DerivedTable, *SubqueryExpr, *ExistsExpr:
			count++
		case *InExpr:
			if node.(*InExpr).Query != nil {
				count++
			}
		}
		return true
	})
	return count
}

// HasWindowFunction reports whether any function call carries an OVER clause.
func HasWindowFunction(stmt *SelectStmt) bool {
	found := false
	Walk(stmt, func(node any) bool {
		if fc, ok := node.(*FuncCall); ok && fc.Window != nil {
			found = true
			return false
		}
		return true
	})
	return found
}

// HasCTE reports whether the statement defines any CTEs.
func HasCTE(stmt *SelectStmt) bool {
	return stmt != nil && stmt.With != nil && len(stmt.With.CTEs) > 0
}
