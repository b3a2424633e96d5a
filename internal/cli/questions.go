package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newQuestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the questions in the bank",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := loadBank()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Difficulty", "Prompt"})
			for _, q := range b.All() {
				t.AppendRow(table.Row{q.ID, q.Difficulty, q.Prompt})
			}
			t.Render()
			return nil
		},
	}
}
