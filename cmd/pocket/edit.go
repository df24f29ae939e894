package main

import (
	"fmt"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an existing transaction",
		Long: `Change fields of an existing transaction. Only the flags you pass are
changed.

Examples:
  pocket edit 1f0c... --amount 13 --note "oat latte"
  pocket edit 1f0c... --type income --category bonus`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	addTransactionFlags(cmd.Flags())
	cmd.Flags().String("amount", "", "new amount")
	cmd.Flags().StringP("type", "t", "", "new transaction type (expense, income, transfer)")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	tx, ok := a.Store.Get(args[0])
	if !ok {
		return common.NewUserError(fmt.Sprintf("No transaction with id %q", args[0]), common.ErrNotFound)
	}

	if cmd.Flags().Changed("type") {
		typeName, _ := cmd.Flags().GetString("type")
		typ, err := parseType(typeName)
		if err != nil {
			return err
		}
		if typ != tx.Type {
			tx.Type = typ
			if !cmd.Flags().Changed("category") {
				if cats := model.CategoriesFor(typ); len(cats) > 0 {
					tx.CategoryID = cats[0].ID
				}
			}
		}
	}
	if err := applyTransactionFlags(cmd.Flags(), &tx); err != nil {
		return err
	}
	if cmd.Flags().Changed("amount") {
		s, _ := cmd.Flags().GetString("amount")
		amount, err := model.ParseAmount(s)
		if err != nil {
			return saveError(tx.Type, err)
		}
		tx.Amount = amount
	}

	if err := a.Store.Save(tx, true); err != nil {
		return saveError(tx.Type, err)
	}

	saved, _ := a.Store.Get(tx.ID)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+cli.DescribeTransaction(saved)))
	return nil
}
