package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/pocketbook/internal/cli"
	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/service"
	"github.com/Veraticus/pocketbook/internal/sheets"
	"github.com/Veraticus/pocketbook/internal/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newReportWriter builds the Sheets writer; tests replace it.
var newReportWriter = func(ctx context.Context, cfg sheets.Config) (service.ReportWriter, error) {
	return sheets.NewWriter(ctx, cfg, slog.Default())
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as JSON or to Google Sheets",
		Long: `Export transactions.

--format json writes the whole list (or one ledger with --ledger) as a
pretty-printed JSON array that 'pocket import' reads back.

--format sheets writes a ledger's month report to Google Sheets. Run
'pocket auth sheets' first.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", "json", "output format (json, sheets)")
	cmd.Flags().StringP("output", "o", "", "output file for json (default: stdout)")
	cmd.Flags().StringP("ledger", "l", "", "ledger to export (json: default all; sheets: default first ledger)")
	cmd.Flags().StringP("month", "m", "", "month for the sheets report as YYYY-MM (default: current month)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	ledgerName, _ := cmd.Flags().GetString("ledger")
	monthFlag, _ := cmd.Flags().GetString("month")

	if format != "json" && format != "sheets" {
		return common.NewUserError(fmt.Sprintf("Unknown format %q, expected json or sheets", format), common.ErrInvalidConfig)
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	if format == "sheets" {
		return exportSheets(cmd, a.Store.All(), ledgerName, monthFlag)
	}
	return exportJSON(cmd, a.Store.All(), ledgerName, output)
}

func exportJSON(cmd *cobra.Command, txs []model.Transaction, ledgerName, output string) error {
	if ledgerName != "" {
		txs = ledger.FilterByLedger(txs, ledgerName)
	}
	data, err := model.EncodeListIndent(txs)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}

	if output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return common.NewUserError(fmt.Sprintf("Could not write %s", output), err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txs), output)))
	return nil
}

func exportSheets(cmd *cobra.Command, txs []model.Transaction, ledgerName, monthFlag string) error {
	ctx := cmd.Context()
	if ledgerName == "" {
		ledgerName = model.DefaultLedger()
	}
	month, err := parseMonth(monthFlag)
	if err != nil {
		return err
	}

	cfg := sheets.DefaultConfig()
	cfg.LoadFromViper(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return common.NewUserError("Google Sheets is not configured; run 'pocket auth sheets' first", fmt.Errorf("%w: %w", common.ErrMissingConfig, err))
	}

	writer, err := newReportWriter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	report := stats.BuildReport(txs, ledgerName, month)
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(fmt.Sprintf("%s Writing %s %s to Google Sheets...", cli.ChartIcon, ledgerName, month)))
	if err := writer.Write(ctx, report); err != nil {
		return fmt.Errorf("failed to export to sheets: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to Google Sheets", len(report.Transactions))))
	return nil
}
