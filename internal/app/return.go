package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bibliodash/internal/operations"
)

func newReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "return <loan-id>",
		Short:   "Mark a loan as returned",
		Example: `  bibliodash return 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid loan id %q", args[0])
			}
			out, err := svc.ReturnLoan(cmd.Context(), id)
			if err != nil {
				return errors.New(operations.Message(err))
			}
			ok("%s", out.Message)
			return nil
		},
	}
}
