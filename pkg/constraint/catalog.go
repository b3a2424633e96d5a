package constraint

// Catalog returns the full diagnostic rule catalogue. The slice is freshly
// built on every call so callers can never mutate shared state; priorities
// are globally unique, making the scan order total and deterministic.
func Catalog() []*Constraint {
	return []*Constraint{
		{
			ID: 1, Name: "parse_error", Priority: 1, Check: checkParseError,
			Tier1: "Your SQL has a syntax error.",
			Tier2: "The query could not be parsed: {error}. Check for missing commas, unmatched parentheses, or misspelled keywords.",
			Tier3: "A query must be syntactically valid before its logic can be evaluated. Read the error position and fix the structure first.",
		},
		{
			ID: 2, Name: "execution_error", Priority: 2, Check: checkExecutionError,
			Tier1: "Query execution failed with an error.",
			Tier2: "The database rejected {side} query: {error}. Check table and column names and verify function usage.",
			Tier3: "Runtime errors point at structural problems such as unknown identifiers or misused functions; fix them before comparing results.",
		},
		{
			ID: 3, Name: "missing_table", Priority: 5, Check: checkMissingTable,
			Tier1: "A required table is missing from your FROM clause.",
			Tier2: "Your query never reads: {missing_tables}. Include every table needed to reach the required columns.",
			Tier3: "Each column lives in a relation; when a relation is absent from FROM, none of its attributes can be selected or filtered.",
		},
		{
			ID: 4, Name: "student_no_rows", Priority: 6, Check: checkStudentNoRows,
			Tier1: "Your query returns zero rows but should return results.",
			Tier2: "The expected output has {reference_rows} row(s) but yours has none. Check WHERE conditions and join types; you may be over-filtering.",
			Tier3: "An empty result usually means a predicate excludes everything or an inner join drops unmatched rows. Loosen one condition at a time to isolate the culprit.",
		},
		{
			ID: 5, Name: "missing_join_condition", Priority: 8, Check: checkMissingJoinCondition,
			Tier1: "A JOIN is missing its join condition.",
			Tier2: "The join with {join_table} has no ON or USING clause. Specify which columns relate the tables.",
			Tier3: "Join keys pair related rows; without them every row combines with every row, inflating the result.",
		},
		{
			ID: 6, Name: "cartesian_product", Priority: 10, Check: checkCartesianProduct,
			Tier1: "Possible Cartesian product detected.",
			Tier2: "Tables {tables} are listed without any condition relating them. Add join predicates to match rows correctly.",
			Tier3: "Comma-separated tables without a linking predicate multiply into all combinations. Relate the tables through their keys.",
		},
		{
			ID: 7, Name: "self_join_alias", Priority: 12, Check: checkSelfJoinAlias,
			Tier1: "Self-join detected without proper aliasing.",
			Tier2: "Table {table} appears more than once without distinct aliases. Alias each instance (e.g. t1, t2) to tell them apart.",
			Tier3: "When one table plays two roles, each role needs its own alias so column references are unambiguous.",
		},
		{
			ID: 8, Name: "join_on_constant", Priority: 14, Check: checkJoinOnConstant,
			Tier1: "A JOIN condition uses constants instead of columns.",
			Tier2: "The condition {condition} is constant and does not relate the tables. Compare actual key columns instead.",
			Tier3: "A constant join condition is either always or never true, so it degenerates into a cross join or an empty join.",
		},
		{
			ID: 9, Name: "extra_select_column", Priority: 16, Check: checkExtraSelectColumn,
			Tier1: "Your SELECT contains columns that are not required.",
			Tier2: "Remove from the projection: {extra_columns}. The expected output is narrower.",
			Tier3: "The projection defines the result's shape; extra columns make otherwise correct rows compare unequal.",
		},
		{
			ID: 33, Name: "select_star", Priority: 17, Check: checkSelectStar,
			Tier1: "Avoid using SELECT * in your query.",
			Tier2: "List the specific columns instead of *; the expected output has a fixed column list.",
			Tier3: "Explicit projections pin down the result shape; * inherits whatever the table happens to contain.",
		},
		{
			ID: 10, Name: "aggregate_without_group_by", Priority: 18, Check: checkAggregateWithoutGroupBy,
			Tier1: "Aggregate functions are used without a GROUP BY clause.",
			Tier2: "Columns {ungrouped_columns} are selected alongside aggregates but nothing groups the rows. Add them to GROUP BY.",
			Tier3: "When aggregating, every non-aggregated select column must appear in GROUP BY so each output row maps to one group.",
		},
		{
			ID: 11, Name: "group_by_missing_columns", Priority: 20, Check: checkGroupByMissingColumns,
			Tier1: "GROUP BY is missing required columns.",
			Tier2: "Add to GROUP BY: {missing_group_by}. The grouping keys define the aggregation buckets.",
			Tier3: "GROUP BY keys decide which rows collapse together; missing keys merge groups that should stay separate.",
		},
		{
			ID: 12, Name: "missing_select_column", Priority: 22, Check: checkMissingSelectColumn,
			Tier1: "Required columns are missing from your SELECT clause.",
			Tier2: "Add to the projection: {missing_columns}, or compute them with appropriate expressions.",
			Tier3: "The expected output names specific attributes; each must be projected or derived in the select list.",
		},
		{
			ID: 13, Name: "missing_where", Priority: 24, Check: checkMissingWhere,
			Tier1: "A WHERE clause is required but missing.",
			Tier2: "The expected solution filters rows before any grouping. Add a WHERE clause with the relevant condition.",
			Tier3: "Without row filtering the query operates on the whole table; identify which subset of rows the question asks about.",
		},
		{
			ID: 14, Name: "aggregate_in_where", Priority: 26, Check: checkAggregateInWhere,
			Tier1: "Aggregate functions appear in the WHERE clause.",
			Tier2: "{function} cannot be evaluated in WHERE. Move the aggregate condition to HAVING, which runs after grouping.",
			Tier3: "WHERE filters individual rows before grouping; aggregates only exist afterwards, which is what HAVING is for.",
		},
		{
			ID: 15, Name: "contradictory_predicate", Priority: 28, Check: checkContradictoryPredicate,
			Tier1: "A predicate in your query is always false.",
			Tier2: "The condition {condition} can never hold, so no rows survive it. Remove or fix it.",
			Tier3: "A contradiction silently empties the result; re-derive the condition from the question instead of from literals.",
		},
		{
			ID: 16, Name: "null_comparison", Priority: 30, Check: checkNullComparison,
			Tier1: "NULL is compared with = or !=.",
			Tier2: "The condition {condition} never matches: NULL compares as unknown. Use IS NULL or IS NOT NULL.",
			Tier3: "In three-valued logic, equality against NULL yields unknown rather than true, so such predicates filter out every row.",
		},
		{
			ID: 17, Name: "literal_type_mismatch", Priority: 32, Check: checkLiteralTypeMismatch,
			Tier1: "A numeric value is written as a quoted string.",
			Tier2: "The literal {literal} is a string compared against a number. Drop the quotes or CAST explicitly.",
			Tier3: "Implicit casts between strings and numbers are dialect-dependent; matching literal types keeps comparisons predictable.",
		},
		{
			ID: 18, Name: "missing_subquery", Priority: 34, Check: checkMissingSubquery,
			Tier1: "This problem requires a subquery or nested query.",
			Tier2: "The expected solution nests a query to compute an intermediate result first. Introduce a subquery or derived table.",
			Tier3: "Some questions need a value computed from the data before the outer query can filter on it; nesting expresses that two-step logic.",
		},
		{
			ID: 19, Name: "having_without_aggregate", Priority: 35, Check: checkHavingWithoutAggregate,
			Tier1: "HAVING is used without any aggregate function.",
			Tier2: "Nothing in the query aggregates, so the HAVING clause filters nothing meaningful. Move the condition to WHERE.",
			Tier3: "HAVING filters groups after aggregation; for plain row filtering WHERE is both correct and cheaper.",
		},
		{
			ID: 20, Name: "cte_expected", Priority: 38, Check: checkCTEExpected,
			Tier1: "Consider using a CTE (Common Table Expression).",
			Tier2: "The expected solution defines a named intermediate query with WITH. Restructure your query the same way.",
			Tier3: "CTEs name intermediate result sets so multi-step logic reads top-down instead of inside-out.",
		},
		{
			ID: 21, Name: "join_type_mismatch", Priority: 40, Check: checkJoinTypeMismatch,
			Tier1: "Your JOIN differs from the expected one.",
			Tier2: "Expected {expected} but found {actual}. Check the join type and its condition.",
			Tier3: "INNER keeps only matched rows while LEFT preserves unmatched ones; the choice decides which rows can appear at all.",
		},
		{
			ID: 22, Name: "window_expected", Priority: 42, Check: checkWindowExpected,
			Tier1: "A window function may be required for this problem.",
			Tier2: "The expected solution computes per-row values over a window (OVER ...). Use functions like ROW_NUMBER or RANK.",
			Tier3: "Window functions compute across related rows without collapsing them, which grouping cannot express.",
		},
		{
			ID: 23, Name: "aggregate_value_mismatch", Priority: 44, Check: checkAggregateValueMismatch,
			Tier1: "Your aggregate calculation result is incorrect.",
			Tier2: "Both queries return a single row but the values differ. Verify which rows feed the aggregate and the GROUP BY logic.",
			Tier3: "An aggregate is only as correct as the row set it sees; filters and joins upstream decide what gets counted or summed.",
		},
		{
			ID: 24, Name: "where_differs", Priority: 45, Check: checkWhereDiffers,
			Tier1: "Your WHERE clause logic differs from expected.",
			Tier2: "Your filter is {student_where}. Review each condition, operator, and logical connector (AND/OR).",
			Tier3: "Small predicate changes select very different row sets; check boundaries (>, >=) and how AND/OR group.",
		},
		{
			ID: 25, Name: "student_more_rows", Priority: 46, Check: checkStudentMoreRows,
			Tier1: "Your query returns too many rows.",
			Tier2: "Yours returns {student_rows} row(s), expected {reference_rows}. Add missing filters or fix join conditions that fan out.",
			Tier3: "Excess rows usually come from an under-constrained join or a missing filter; each joined table should be related by its key.",
		},
		{
			ID: 26, Name: "extra_table", Priority: 50, Check: checkExtraTable,
			Tier1: "Your query references unnecessary tables.",
			Tier2: "Tables {extra_tables} are not needed. Remove them; extra joins can duplicate rows.",
			Tier3: "Every joined table must earn its place by contributing columns or constraints; otherwise it only multiplies rows.",
		},
		{
			ID: 27, Name: "ordering_difference", Priority: 52, Check: checkOrderingDifference,
			Tier1: "Results are correct but their order is wrong.",
			Tier2: "The rows match as a set but not as a sequence. Add ORDER BY with the correct columns and direction.",
			Tier3: "Without ORDER BY, row order is an accident of execution; only an explicit sort guarantees a sequence.",
		},
		{
			ID: 28, Name: "distinct_mismatch", Priority: 55, Check: checkDistinctMismatch,
			Tier1: "DISTINCT usage differs from the expected solution.",
			Tier2: "Your query deduplicates: {student_distinct}. Add or remove DISTINCT depending on whether duplicates should survive.",
			Tier3: "DISTINCT collapses duplicate rows after projection; whether duplicates are meaningful depends on what the question counts.",
		},
		{
			ID: 29, Name: "order_by_missing", Priority: 58, Check: checkOrderByMissing,
			Tier1: "An ORDER BY clause is missing.",
			Tier2: "The expected output is sorted. Add ORDER BY with the appropriate columns and sort direction.",
			Tier3: "Sorted output is part of the result contract; rely on ORDER BY, never on incidental storage order.",
		},
		{
			ID: 30, Name: "limit_missing", Priority: 60, Check: checkLimitMissing,
			Tier1: "A LIMIT clause is missing from your query.",
			Tier2: "The expected solution restricts the result to the top rows. Pair LIMIT with ORDER BY to select them deterministically.",
			Tier3: "Top-N questions need a sort that defines 'top' plus a limit that cuts the list; one without the other is incomplete.",
		},
		{
			ID: 31, Name: "extra_where", Priority: 65, Check: checkExtraWhere,
			Tier1: "Your query has an extra WHERE clause.",
			Tier2: "The filter {where} is not part of the expected solution and may exclude required rows.",
			Tier3: "Filtering that the question never asked for removes rows the expected output still contains.",
		},
		{
			ID: 32, Name: "alias_conflict", Priority: 70, Check: checkAliasConflict,
			Tier1: "Duplicate alias name detected.",
			Tier2: "The alias {alias} is used more than once. Give each column and table a unique alias.",
			Tier3: "Aliases are names in one shared scope; duplicates make references ambiguous or silently shadow each other.",
		},
		{
			ID: 37, Name: "like_usage", Priority: 72, Check: checkLikeUsage,
			Tier1: "LIKE pattern matching differs from expected.",
			Tier2: "Your query filters with LIKE {pattern}; the expected solution does not use pattern matching. An exact comparison may fit better.",
			Tier3: "LIKE with % and _ matches shapes rather than exact values; verify the pattern and watch case sensitivity.",
		},
		{
			ID: 34, Name: "unexpected_union", Priority: 84, Check: checkUnexpectedUnion,
			Tier1: "A set operation is used but may not be needed.",
			Tier2: "Your query combines results with {operator}; the expected solution does not. A join may be the better fit.",
			Tier3: "UNION stacks result sets vertically while joins combine them horizontally; picking the wrong one changes the output's shape.",
		},
		{
			ID: 35, Name: "tautology_predicate", Priority: 90, Check: checkTautologyPredicate,
			Tier1: "A predicate in your query is always true.",
			Tier2: "The condition {condition} filters nothing. Remove it or replace it with a real constraint.",
			Tier3: "Always-true conditions add noise without narrowing the result; every predicate should encode part of the question.",
		},
		{
			ID: 38, Name: "case_when_incomplete", Priority: 95, Check: checkCaseWhenIncomplete,
			Tier1: "Your CASE expression is incomplete.",
			Tier2: "A CASE expression has no ELSE arm, so unmatched rows become NULL. Add ELSE to cover the remaining cases.",
			Tier3: "Each CASE should account for every input: WHEN ... THEN for the known cases and ELSE for everything left over.",
		},
		{
			ID: 36, Name: "aggregation_alias_missing", Priority: 100, Check: checkAggregationAliasMissing,
			Tier1: "Consider aliasing your aggregated expressions.",
			Tier2: "The expected output names its computed columns ({expected_aliases}). Use AS to name yours the same way.",
			Tier3: "Named computed columns make the result self-describing and let the output's column names match what is expected.",
		},
	}
}
