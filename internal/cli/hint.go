package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlmentor/pkg/hint"
)

func newHintCommand() *cobra.Command {
	var tier int

	cmd := &cobra.Command{
		Use:   "hint <question-id> <sql-or-file>",
		Short: "Diagnose a query and print a tiered hint",
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

			h, d, err := svc.HintFor(cmd.Context(), hint.Request{
				StudentSQL:   studentSQL,
				ReferenceSQL: q.Reference,
				SetupSQL:     b.SetupSQL(),
				Dialect:      cfg.Dialect,
			}, tier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Hint (tier %d): %s\n", h.Tier, h.Text)
			if name := d.ConstraintName(); name != "" && !d.Equal {
				_, _ = fmt.Fprintf(out, "Category: %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&tier, "tier", "t", 1, "hint tier (1-4)")
	return cmd
}
