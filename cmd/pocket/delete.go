package main

import (
	"fmt"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	yes, _ := cmd.Flags().GetBool("yes")

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	tx, ok := a.Store.Get(args[0])
	if !ok {
		return common.NewUserError(fmt.Sprintf("No transaction with id %q", args[0]), common.ErrNotFound)
	}

	if !yes {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		confirmed, err := prompter.Confirm(ctx, "Delete "+cli.DescribeTransaction(tx)+"?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
			return nil
		}
	}

	a.Store.Delete(tx.ID)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+cli.DescribeTransaction(tx)))
	return nil
}
