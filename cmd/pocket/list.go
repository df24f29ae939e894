package main

import (
	"fmt"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Long: `List the transactions of a ledger, most recently added first.

Examples:
  pocket list                       # current month of the default ledger
  pocket list --month 2024-01 --query 咖啡
  pocket list --day 2024-01-05 --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("ledger", "l", "", "ledger name (default: first ledger)")
	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	cmd.Flags().String("day", "", "single day as YYYY-MM-DD (overrides --month)")
	cmd.Flags().StringP("query", "q", "", "keep notes, category names or amounts containing this text")
	cmd.Flags().Bool("all", false, "ignore the month and list every transaction of the ledger")
	cmd.Flags().Bool("json", false, "print the list as JSON")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	ledgerName, _ := flags.GetString("ledger")
	if ledgerName == "" {
		ledgerName = model.DefaultLedger()
	}
	monthFlag, _ := flags.GetString("month")
	dayFlag, _ := flags.GetString("day")
	query, _ := flags.GetString("query")
	all, _ := flags.GetBool("all")
	asJSON, _ := flags.GetBool("json")

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	txs := ledger.FilterByLedger(a.Store.All(), ledgerName)
	title := ledgerName
	switch {
	case dayFlag != "":
		day, err := parseDay(dayFlag)
		if err != nil {
			return err
		}
		txs = ledger.FilterByDay(txs, day)
		title += " · " + day.Format("2006-01-02")
	case !all:
		month, err := parseMonth(monthFlag)
		if err != nil {
			return err
		}
		txs = ledger.FilterByMonth(txs, month)
		title += " · " + month.String()
	}
	txs = ledger.FilterByQuery(txs, query)

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := model.EncodeListIndent(txs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(title))
	fmt.Fprintln(out, cli.RenderTransactionTable(txs))
	return nil
}
