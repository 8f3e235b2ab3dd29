package app

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/operations"
)

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record",
		Long: `Delete one book, author, user, loan, category or review.

You are asked to confirm unless --yes is given. Anything other than "y"
cancels and nothing is sent to the server.`,
		Example: `  bibliodash delete books 12
  bibliodash delete user 3 --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := catalog.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			if !skipConfirm {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s #%d? (y/N): ", kind.Singular(), id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Cancelled."))
					return nil
				}
			}

			out, err := svc.Delete(cmd.Context(), kind, id)
			if err != nil {
				return errors.New(operations.Message(err))
			}
			ok("%s", out.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
