package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Record a new transaction",
		Long: `Record an expense, income or transfer.

Examples:
  pocket add 12.50 --category coffee --note latte
  pocket add 8000 --type income --category salary
  pocket add 500 --type transfer --account 银行卡 --to 现金`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	addTransactionFlags(cmd.Flags())
	cmd.Flags().StringP("type", "t", string(model.TypeExpense), "transaction type (expense, income, transfer)")

	return cmd
}

// addTransactionFlags registers the fields shared by add and edit.
func addTransactionFlags(flags *pflag.FlagSet) {
	flags.StringP("category", "c", "", "category id (default: first category of the type)")
	flags.StringP("note", "n", "", "free-form note")
	flags.StringP("account", "a", "", "source account")
	flags.String("to", "", "destination account (transfers only)")
	flags.StringP("ledger", "l", "", "ledger name")
	flags.StringP("date", "d", "", "date as YYYY-MM-DD (default: now)")
	flags.Bool("flag", false, "flag the transaction for review")
}

func runAdd(cmd *cobra.Command, args []string) error {
	typeName, _ := cmd.Flags().GetString("type")
	typ, err := parseType(typeName)
	if err != nil {
		return err
	}

	ledgerName, _ := cmd.Flags().GetString("ledger")
	if ledgerName == "" {
		ledgerName = model.DefaultLedger()
	}

	tx := model.NewTransaction(typ, ledgerName, time.Now())
	if err := applyTransactionFlags(cmd.Flags(), &tx); err != nil {
		return err
	}
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return saveError(typ, err)
	}
	tx.Amount = amount

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	if err := a.Store.Save(tx, false); err != nil {
		return saveError(typ, err)
	}

	saved, _ := a.Store.Get(tx.ID)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added "+cli.DescribeTransaction(saved)))
	fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("id "+saved.ID))
	return nil
}

// applyTransactionFlags copies every explicitly set flag onto tx.
func applyTransactionFlags(flags *pflag.FlagSet, tx *model.Transaction) error {
	if flags.Changed("category") {
		tx.CategoryID, _ = flags.GetString("category")
	}
	if flags.Changed("category") || flags.Changed("type") {
		if err := requireCategory(tx.CategoryID, tx.Type); err != nil {
			return err
		}
	}
	if flags.Changed("note") {
		tx.Note, _ = flags.GetString("note")
	}
	if flags.Changed("account") {
		tx.Account, _ = flags.GetString("account")
	}
	if flags.Changed("to") {
		tx.ToAccount, _ = flags.GetString("to")
	}
	if flags.Changed("ledger") {
		tx.Ledger, _ = flags.GetString("ledger")
	}
	if flags.Changed("date") {
		s, _ := flags.GetString("date")
		day, err := parseDay(s)
		if err != nil {
			return err
		}
		tx.Date = day
	}
	if flags.Changed("flag") {
		tx.IsFlagged, _ = flags.GetBool("flag")
	}
	return nil
}
