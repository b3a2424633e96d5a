package hint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/classify"
)

// BuildPrompt assembles the tier-4 prompt. It carries only abstract
// descriptors of the diagnosis: the constraint category, the names of the
// differing structural dimensions, semantic signal names, evidence keys,
// and the row-count delta. Neither query's text, nor table or column
// names, ever enter the prompt.
func BuildPrompt(d *Diagnostic) string {
	category := d.ConstraintName()
	if category == "" {
		category = "none"
	}

	var b strings.Builder
	b.WriteString("Provide one short conceptual hint about a logic difference in a SQL query.\n\n")
	b.WriteString("Information:\n")
	fmt.Fprintf(&b, "- category: %s\n", category)
	fmt.Fprintf(&b, "- differing aspects: %s\n", listOrNone(dimensionNames(d)))
	fmt.Fprintf(&b, "- semantic signals: %s\n", listOrNone(signalNames(d.Classification)))
	fmt.Fprintf(&b, "- evidence fields: %s\n", listOrNone(evidenceKeys(d)))
	fmt.Fprintf(&b, "- row count delta (student minus expected): %d\n", rowDelta(d))
	b.WriteString("\nRules:\n")
	b.WriteString("- at most 35 words\n")
	b.WriteString("- no code and no SQL keywords\n")
	b.WriteString("- high-level concept only\n")
	b.WriteString("- output only the hint text, no prefix\n")
	return b.String()
}

func dimensionNames(d *Diagnostic) []string {
	seen := make(map[string]bool)
	var names []string
	for _, df := range d.StructuralDiffs {
		if name := string(df.Dimension); !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func signalNames(c *classify.Classification) []string {
	if c == nil {
		return nil
	}
	var names []string
	for s := range c.Signals {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

func evidenceKeys(d *Diagnostic) []string {
	if d.Matched == nil {
		return nil
	}
	keys := make([]string, 0, len(d.Matched.Evidence))
	for k := range d.Matched.Evidence {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rowDelta(d *Diagnostic) int {
	if d.Comparison == nil {
		return 0
	}
	var student, reference int
	if r := d.Comparison.Student; r != nil && r.Success {
		student = r.RowCount()
	}
	if r := d.Comparison.Reference; r != nil && r.Success {
		reference = r.RowCount()
	}
	return student - reference
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
