package verify

import (
	"fmt"
	"sort"
	"strings"
)

// ResultsEqual compares two execution results under bag semantics: column
// names must match as an ordered, case-insensitive sequence, and rows must
// form the same multiset of tuples. Row order is irrelevant; duplicate rows
// are significant. Any execution failure makes the results unequal.
func ResultsEqual(a, b *ExecutionResult) bool {
	if a == nil || b == nil || !a.Success || !b.Success {
		return false
	}
	if !columnsEqual(a.Columns, b.Columns) {
		return false
	}
	if len(a.Rows) != len(b.Rows) {
		return false
	}
	return slicesEqual(sortedRowKeys(a.Rows), sortedRowKeys(b.Rows))
}

// SameRowMultiset reports whether both results contain the same rows
// regardless of order, without requiring matching column names.
func SameRowMultiset(a, b *ExecutionResult) bool {
	if a == nil || b == nil || len(a.Rows) != len(b.Rows) {
		return false
	}
	return slicesEqual(sortedRowKeys(a.Rows), sortedRowKeys(b.Rows))
}

// RowsInOrder reports whether both results contain identical rows in
// identical order.
func RowsInOrder(a, b *ExecutionResult) bool {
	if a == nil || b == nil || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Rows {
		if RowKey(a.Rows[i]) != RowKey(b.Rows[i]) {
			return false
		}
	}
	return true
}

// HasNull reports whether any value in the result set is NULL.
func HasNull(r *ExecutionResult) bool {
	if r == nil {
		return false
	}
	for _, row := range r.Rows {
		for _, v := range row {
			if v == nil {
				return true
			}
		}
	}
	return false
}

// RowKey renders one row as a comparable string. Numeric values are
// normalized so 1, 1.0 and int64(1) compare equal across drivers.
func RowKey(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = valueKey(v)
	}
	return strings.Join(parts, "\x1f")
}

func valueKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "\x00NULL"
	case []byte:
		return string(x)
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	case int:
		return formatFloat(float64(x))
	case int32:
		return formatFloat(float64(x))
	case int64:
		return formatFloat(float64(x))
	case uint64:
		return formatFloat(float64(x))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sortedRowKeys(rows [][]any) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = RowKey(row)
	}
	sort.Strings(keys)
	return keys
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
