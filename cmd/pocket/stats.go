package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/service"
	"github.com/Veraticus/pocketbook/internal/stats"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show month totals and category breakdown",
		Long: `Show a month's income, expense and balance for a ledger, followed by
the category breakdown and, with --daily, the per-day totals.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().StringP("ledger", "l", "", "ledger name (default: first ledger)")
	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	cmd.Flags().Bool("daily", false, "also list totals for every day with activity")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ledgerName, _ := cmd.Flags().GetString("ledger")
	if ledgerName == "" {
		ledgerName = model.DefaultLedger()
	}
	monthFlag, _ := cmd.Flags().GetString("month")
	daily, _ := cmd.Flags().GetBool("daily")

	month, err := parseMonth(monthFlag)
	if err != nil {
		return err
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	txs := ledger.FilterByLedger(a.Store.All(), ledgerName)
	totals := stats.Monthly(txs, month)

	out := cmd.OutOrStdout()
	summary := strings.Join([]string{
		fmt.Sprintf("Income   %s", cli.SuccessStyle.Render(totals.Income.StringFixed(2))),
		fmt.Sprintf("Expense  %s", cli.ErrorStyle.Render(totals.Expense.StringFixed(2))),
		fmt.Sprintf("Balance  %s", totals.Balance.StringFixed(2)),
	}, "\n")
	fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("%s %s · %s", cli.WalletIcon, ledgerName, month), summary))

	printBreakdown(cmd, "Expense by category", stats.Categories(txs, month, model.TypeExpense))
	printBreakdown(cmd, "Income by category", stats.Categories(txs, month, model.TypeIncome))

	if daily {
		summaryByDay := stats.DailySummary(txs, month)
		fmt.Fprintln(out, cli.FormatTitle("Daily"))
		for _, day := range month.Days() {
			key := model.DayKey(day, day.Location())
			dt, ok := summaryByDay[key]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s  %10s  %10s\n", key, "-"+dt.Expense.StringFixed(2), "+"+dt.Income.StringFixed(2))
		}
	}
	return nil
}

func printBreakdown(cmd *cobra.Command, title string, rows []service.CategorySummary) {
	if len(rows) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(title))
	for _, row := range rows {
		fmt.Fprintf(out, "  %-8s %10s  %5.1f%%  (%d)\n", row.Name, row.Amount.StringFixed(2), row.Percentage, row.Count)
	}
}
