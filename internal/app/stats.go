package app

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bibliodash/internal/operations"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := svc.Stats(cmd.Context())
			if err != nil {
				return errors.New(operations.Message(err))
			}
			out := cmd.OutOrStdout()
			rows := []struct {
				label string
				value int
			}{
				{"Books", s.Books},
				{"Authors", s.Authors},
				{"Users", s.Users},
				{"Active loans", s.ActiveLoans},
				{"Categories", s.Categories},
				{"Reviews", s.Reviews},
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%-14s %s\n", r.label, color.WhiteString("%d", r.value))
			}
			return nil
		},
	}
}
