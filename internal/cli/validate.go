package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlmentor/pkg/hint"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <question-id> <sql-or-file>",
		Short: "Check a query against a question's expected output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("question id must be a number: %w", err)
			}
			studentSQL, err := readSQLArg(args[1])
			if err != nil {
				return err
			}

			b, err := loadBank()
			if err != nil {
				return err
			}
			q, err := b.Get(questionID)
			if err != nil {
				return err
			}

			svc, err := buildService(newLogger())
			if err != nil {
				return err
			}

			d, err := svc.Diagnose(cmd.Context(), hint.Request{
				StudentSQL:   studentSQL,
				ReferenceSQL: q.Reference,
				SetupSQL:     b.SetupSQL(),
				Dialect:      cfg.Dialect,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if d.Equal {
				_, _ = fmt.Fprintln(out, "Correct! Your query produces the expected output.")
			} else {
				_, _ = fmt.Fprintln(out, "Not quite. Your query's output differs from the expected output.")
			}
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, "Your output:")
			renderResult(out, d.Comparison.Student)
			return nil
		},
	}
}

func renderResult(w io.Writer, r *verify.ExecutionResult) {
	if r == nil || !r.Success {
		msg := "query did not execute"
		if r != nil && r.Error != "" {
			msg = r.Error
		}
		_, _ = fmt.Fprintf(w, "(error: %s)\n", msg)
		return
	}
	if len(r.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range r.Rows {
		t.AppendRow(table.Row(row))
	}
	t.Render()
}
