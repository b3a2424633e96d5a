package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlmentor/pkg/core"
	"github.com/leapstack-labs/sqlmentor/pkg/parser"
	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

func mustParse(t *testing.T, sql string) *core.SelectStmt {
	t.Helper()
	stmt, err := parser.Parse(sql, parser.DialectANSI)
	require.NoError(t, err)
	require.NotNil(t, stmt)
	return stmt
}

func TestParseSimpleSelect(t *testing.T) {
	stmt := mustParse(t, "SELECT id, name FROM patients")
	sc := stmt.Body.Left
	require.Len(t, sc.Columns, 2)

	first, ok := sc.Columns[0].Expr.(*core.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "id", first.Column)

	tn, ok := sc.From.Source.(*core.TableName)
	require.True(t, ok)
	assert.Equal(t, "patients", tn.Name)
}

func TestParseSelectStar(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM patients")
	require.Len(t, stmt.Body.Left.Columns, 1)
	assert.True(t, stmt.Body.Left.Columns[0].Star)
}

func TestParseTableStar(t *testing.T) {
	stmt := mustParse(t, "SELECT p.* FROM patients p")
	require.Len(t, stmt.Body.Left.Columns, 1)
	assert.Equal(t, "p", stmt.Body.Left.Columns[0].TableStar)
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantAlias string
	}{
		{"explicit AS", "SELECT first_name AS fn FROM patients", "fn"},
		{"implicit alias", "SELECT first_name fn FROM patients", "fn"},
		{"no alias", "SELECT first_name FROM patients", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.sql)
			assert.Equal(t, tt.wantAlias, stmt.Body.Left.Columns[0].Alias)
		})
	}
}

func TestParseWherePrecedence(t *testing.T) {
	// a = 1 OR b = 2 AND c = 3 parses as a = 1 OR (b = 2 AND c = 3)
	stmt := mustParse(t, "SELECT x FROM t WHERE a = 1 OR b = 2 AND c = 3")
	where, ok := stmt.Body.Left.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.OR, where.Op)

	right, ok := where.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, right.Op)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// a + b * c parses as a + (b * c)
	stmt := mustParse(t, "SELECT a + b * c FROM t")
	expr, ok := stmt.Body.Left.Columns[0].Expr.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, expr.Op)

	right, ok := expr.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, right.Op)
}

func TestParseComparisonOperators(t *testing.T) {
	tests := []struct {
		sql string
		op  token.TokenType
	}{
		{"SELECT x FROM t WHERE a = 1", token.EQ},
		{"SELECT x FROM t WHERE a != 1", token.NE},
		{"SELECT x FROM t WHERE a <> 1", token.NE},
		{"SELECT x FROM t WHERE a < 1", token.LT},
		{"SELECT x FROM t WHERE a <= 1", token.LE},
		{"SELECT x FROM t WHERE a > 1", token.GT},
		{"SELECT x FROM t WHERE a >= 1", token.GE},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			stmt := mustParse(t, tt.sql)
			where, ok := stmt.Body.Left.Where.(*core.BinaryExpr)
			require.True(t, ok)
			assert.Equal(t, tt.op, where.Op)
		})
	}
}

func TestParseJoins(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantType core.JoinType
	}{
		{"bare join", "SELECT * FROM a JOIN b ON a.id = b.id", core.JoinInner},
		{"inner join", "SELECT * FROM a INNER JOIN b ON a.id = b.id", core.JoinInner},
		{"left join", "SELECT * FROM a LEFT JOIN b ON a.id = b.id", core.JoinLeft},
		{"left outer join", "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", core.JoinLeft},
		{"right join", "SELECT * FROM a RIGHT JOIN b ON a.id = b.id", core.JoinRight},
		{"full outer join", "SELECT * FROM a FULL OUTER JOIN b ON a.id = b.id", core.JoinFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.sql)
			require.Len(t, stmt.Body.Left.From.Joins, 1)
			join := stmt.Body.Left.From.Joins[0]
			assert.Equal(t, tt.wantType, join.Type)
			assert.NotNil(t, join.Condition)
		})
	}
}

func TestParseCrossJoin(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a CROSS JOIN b")
	join := stmt.Body.Left.From.Joins[0]
	assert.Equal(t, core.JoinCross, join.Type)
	assert.Nil(t, join.Condition)
}

func TestParseCommaJoin(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a, b WHERE a.id = b.id")
	require.Len(t, stmt.Body.Left.From.Joins, 1)
	assert.Equal(t, core.JoinComma, stmt.Body.Left.From.Joins[0].Type)
}

func TestParseJoinWithoutCondition(t *testing.T) {
	// Accepted by the grammar so missing join conditions can be diagnosed
	// downstream rather than rejected as syntax errors.
	stmt := mustParse(t, "SELECT * FROM a JOIN b")
	join := stmt.Body.Left.From.Joins[0]
	assert.Nil(t, join.Condition)
	assert.Empty(t, join.Using)
}

func TestParseJoinUsing(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a JOIN b USING (id, code)")
	join := stmt.Body.Left.From.Joins[0]
	assert.Equal(t, []string{"id", "code"}, join.Using)
}

func TestParseNaturalJoin(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a NATURAL LEFT JOIN b")
	join := stmt.Body.Left.From.Joins[0]
	assert.True(t, join.Natural)
	assert.Equal(t, core.JoinLeft, join.Type)
}

func TestParseGroupByHaving(t *testing.T) {
	stmt := mustParse(t, "SELECT city, COUNT(*) FROM patients GROUP BY city HAVING COUNT(*) > 5")
	sc := stmt.Body.Left
	require.Len(t, sc.GroupBy, 1)
	require.NotNil(t, sc.Having)

	having, ok := sc.Having.(*core.BinaryExpr)
	require.True(t, ok)
	fc, ok := having.Left.(*core.FuncCall)
	require.True(t, ok)
	assert.True(t, fc.Star)
}

func TestParseOrderBy(t *testing.T) {
	stmt := mustParse(t, "SELECT x FROM t ORDER BY a DESC, b ASC, c")
	items := stmt.Body.Left.OrderBy
	require.Len(t, items, 3)
	assert.True(t, items[0].Desc)
	assert.False(t, items[1].Desc)
	assert.False(t, items[2].Desc)
}

func TestParseOrderByNulls(t *testing.T) {
	stmt := mustParse(t, "SELECT x FROM t ORDER BY a DESC NULLS LAST")
	item := stmt.Body.Left.OrderBy[0]
	require.NotNil(t, item.NullsFirst)
	assert.False(t, *item.NullsFirst)
}

func TestParseLimitOffset(t *testing.T) {
	stmt := mustParse(t, "SELECT x FROM t LIMIT 10 OFFSET 5")
	sc := stmt.Body.Left
	require.NotNil(t, sc.Limit)
	require.NotNil(t, sc.Offset)

	limit, ok := sc.Limit.(*core.Literal)
	require.True(t, ok)
	assert.Equal(t, "10", limit.Value)
}

func TestParseDistinct(t *testing.T) {
	stmt := mustParse(t, "SELECT DISTINCT city FROM patients")
	assert.True(t, stmt.Body.Left.Distinct)
}

func TestParseCTE(t *testing.T) {
	stmt := mustParse(t, `
		WITH totals AS (
			SELECT city, COUNT(*) AS n FROM patients GROUP BY city
		)
		SELECT city FROM totals WHERE n > 10`)
	require.NotNil(t, stmt.With)
	require.Len(t, stmt.With.CTEs, 1)
	assert.Equal(t, "totals", stmt.With.CTEs[0].Name)
	assert.False(t, stmt.With.Recursive)
}

func TestParseRecursiveCTE(t *testing.T) {
	stmt := mustParse(t, `
		WITH RECURSIVE seq AS (
			SELECT 1 AS n
			UNION ALL
			SELECT n + 1 FROM seq WHERE n < 10
		)
		SELECT n FROM seq`)
	require.NotNil(t, stmt.With)
	assert.True(t, stmt.With.Recursive)

	inner := stmt.With.CTEs[0].Select.Body
	assert.Equal(t, core.SetOpUnion, inner.Op)
	assert.True(t, inner.All)
}

func TestParseSetOperations(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		wantOp core.SetOpType
		all    bool
	}{
		{"union", "SELECT a FROM t1 UNION SELECT a FROM t2", core.SetOpUnion, false},
		{"union all", "SELECT a FROM t1 UNION ALL SELECT a FROM t2", core.SetOpUnion, true},
		{"intersect", "SELECT a FROM t1 INTERSECT SELECT a FROM t2", core.SetOpIntersect, false},
		{"except", "SELECT a FROM t1 EXCEPT SELECT a FROM t2", core.SetOpExcept, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.sql)
			assert.Equal(t, tt.wantOp, stmt.Body.Op)
			assert.Equal(t, tt.all, stmt.Body.All)
			require.NotNil(t, stmt.Body.Right)
		})
	}
}

func TestParseSubqueries(t *testing.T) {
	t.Run("scalar subquery", func(t *testing.T) {
		stmt := mustParse(t, "SELECT (SELECT MAX(x) FROM t2) FROM t1")
		_, ok := stmt.Body.Left.Columns[0].Expr.(*core.SubqueryExpr)
		assert.True(t, ok)
	})

	t.Run("in subquery", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE id IN (SELECT id FROM t2)")
		in, ok := stmt.Body.Left.Where.(*core.InExpr)
		require.True(t, ok)
		assert.NotNil(t, in.Query)
		assert.Empty(t, in.Values)
	})

	t.Run("exists subquery", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE EXISTS (SELECT 1 FROM t2)")
		ex, ok := stmt.Body.Left.Where.(*core.ExistsExpr)
		require.True(t, ok)
		assert.False(t, ex.Not)
	})

	t.Run("not exists subquery", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE NOT EXISTS (SELECT 1 FROM t2)")
		ex, ok := stmt.Body.Left.Where.(*core.ExistsExpr)
		require.True(t, ok)
		assert.True(t, ex.Not)
	})

	t.Run("derived table", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM (SELECT x FROM t) sub")
		dt, ok := stmt.Body.Left.From.Source.(*core.DerivedTable)
		require.True(t, ok)
		assert.Equal(t, "sub", dt.Alias)
	})
}

func TestParsePredicates(t *testing.T) {
	t.Run("between", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a BETWEEN 1 AND 10")
		b, ok := stmt.Body.Left.Where.(*core.BetweenExpr)
		require.True(t, ok)
		assert.False(t, b.Not)
	})

	t.Run("not between", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a NOT BETWEEN 1 AND 10")
		b, ok := stmt.Body.Left.Where.(*core.BetweenExpr)
		require.True(t, ok)
		assert.True(t, b.Not)
	})

	t.Run("like", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE name LIKE 'A%'")
		l, ok := stmt.Body.Left.Where.(*core.LikeExpr)
		require.True(t, ok)
		assert.False(t, l.Not)
	})

	t.Run("is null", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a IS NULL")
		n, ok := stmt.Body.Left.Where.(*core.IsNullExpr)
		require.True(t, ok)
		assert.False(t, n.Not)
	})

	t.Run("is not null", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a IS NOT NULL")
		n, ok := stmt.Body.Left.Where.(*core.IsNullExpr)
		require.True(t, ok)
		assert.True(t, n.Not)
	})

	t.Run("in list", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a IN (1, 2, 3)")
		in, ok := stmt.Body.Left.Where.(*core.InExpr)
		require.True(t, ok)
		assert.Len(t, in.Values, 3)
		assert.Nil(t, in.Query)
	})

	t.Run("not in list", func(t *testing.T) {
		stmt := mustParse(t, "SELECT x FROM t WHERE a NOT IN (1, 2)")
		in, ok := stmt.Body.Left.Where.(*core.InExpr)
		require.True(t, ok)
		assert.True(t, in.Not)
	})
}

func TestParseCaseExpr(t *testing.T) {
	stmt := mustParse(t, `
		SELECT CASE WHEN age >= 65 THEN 'senior' WHEN age >= 18 THEN 'adult' ELSE 'minor' END
		FROM patients`)
	ce, ok := stmt.Body.Left.Columns[0].Expr.(*core.CaseExpr)
	require.True(t, ok)
	assert.Nil(t, ce.Operand)
	assert.Len(t, ce.Whens, 2)
	assert.NotNil(t, ce.Else)
}

func TestParseCastExpr(t *testing.T) {
	stmt := mustParse(t, "SELECT CAST(weight AS DECIMAL(8, 2)) FROM patients")
	ce, ok := stmt.Body.Left.Columns[0].Expr.(*core.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "DECIMAL(8, 2)", ce.TypeName)
}

func TestParseFuncCalls(t *testing.T) {
	t.Run("count star", func(t *testing.T) {
		stmt := mustParse(t, "SELECT COUNT(*) FROM t")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		assert.True(t, fc.Star)
		assert.True(t, fc.IsAggregate())
	})

	t.Run("count distinct", func(t *testing.T) {
		stmt := mustParse(t, "SELECT COUNT(DISTINCT city) FROM t")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		assert.True(t, fc.Distinct)
		assert.Len(t, fc.Args, 1)
	})

	t.Run("zero args", func(t *testing.T) {
		stmt := mustParse(t, "SELECT now() FROM t")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		assert.Empty(t, fc.Args)
		assert.False(t, fc.Star)
	})
}

func TestParseWindowFunctions(t *testing.T) {
	t.Run("over with partition and order", func(t *testing.T) {
		stmt := mustParse(t, "SELECT ROW_NUMBER() OVER (PARTITION BY city ORDER BY age DESC) FROM patients")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.NotNil(t, fc.Window)
		assert.Len(t, fc.Window.PartitionBy, 1)
		assert.Len(t, fc.Window.OrderBy, 1)
		assert.False(t, fc.IsAggregate(), "windowed call is not a grouping aggregate")
	})

	t.Run("frame spec", func(t *testing.T) {
		stmt := mustParse(t, "SELECT SUM(x) OVER (ORDER BY d ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.NotNil(t, fc.Window)
		require.NotNil(t, fc.Window.Frame)
		assert.Equal(t, core.FrameRows, fc.Window.Frame.Type)
		assert.Equal(t, core.FrameUnboundedPreceding, fc.Window.Frame.Start.Type)
		assert.Equal(t, core.FrameCurrentRow, fc.Window.Frame.End.Type)
	})

	t.Run("named window", func(t *testing.T) {
		stmt := mustParse(t, "SELECT SUM(x) OVER w FROM t WINDOW w AS (PARTITION BY city)")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		require.NotNil(t, fc.Window)
		assert.Equal(t, "w", fc.Window.Name)
		require.Len(t, stmt.Body.Left.Windows, 1)
		assert.Equal(t, "w", stmt.Body.Left.Windows[0].Name)
	})

	t.Run("filter clause", func(t *testing.T) {
		stmt := mustParse(t, "SELECT COUNT(*) FILTER (WHERE age > 50) FROM patients")
		fc := stmt.Body.Left.Columns[0].Expr.(*core.FuncCall)
		assert.NotNil(t, fc.Filter)
	})
}

func TestParseSchemaQualifiedTable(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM main.patients p")
	tn := stmt.Body.Left.From.Source.(*core.TableName)
	assert.Equal(t, "main", tn.Schema)
	assert.Equal(t, "patients", tn.Name)
	assert.Equal(t, "p", tn.Alias)
	assert.Equal(t, "p", tn.RefName())
}

func TestParseQuotedIdentifiers(t *testing.T) {
	stmt := mustParse(t, `SELECT "first name" FROM "my table"`)
	cr := stmt.Body.Left.Columns[0].Expr.(*core.ColumnRef)
	assert.Equal(t, "first name", cr.Column)
}

func TestParseComments(t *testing.T) {
	stmt := mustParse(t, `
		-- line comment
		SELECT x /* block
		comment */ FROM t`)
	require.Len(t, stmt.Body.Left.Columns, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty input", ""},
		{"missing select", "FROM patients"},
		{"missing from table", "SELECT x FROM"},
		{"trailing garbage", "SELECT x FROM t extra stuff here"},
		{"unclosed paren", "SELECT (1 + 2 FROM t"},
		{"unclosed string", "SELECT 'abc FROM t"},
		{"case without when", "SELECT CASE END FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.sql, parser.DialectANSI)
			require.Error(t, err)

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseUnknownDialect(t *testing.T) {
	_, err := parser.Parse("SELECT 1", "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("SELECT x\nFROM", parser.DialectANSI)
	require.Error(t, err)

	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}
